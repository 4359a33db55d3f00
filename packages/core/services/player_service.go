package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"core/models"
	"core/warstats"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

// ListPlayers returns a clan's roster, oldest first, with every war sequence
// normalized to the fixed slot count.
func (s *PlayerService) ListPlayers(clanID uint) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Where("clan_id = ?", clanID).
		Order("created_at ASC").
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range players {
		players[i].Wars = players[i].Wars.Normalized()
	}

	return players, nil
}

// CreatePlayer adds a player to the clan with an empty war sequence. Names
// are unique within the clan, case-insensitively.
func (s *PlayerService) CreatePlayer(clanID uint, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("player name is required: %w", models.ErrValidation)
	}

	var count int64
	err := s.db.Model(&models.Player{}).
		Where("clan_id = ? AND LOWER(name) = LOWER(?)", clanID, name).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("player name: %w", models.ErrConflict)
	}

	player := &models.Player{
		ClanID: clanID,
		Name:   name,
		Wars:   make(models.Wars, models.WarCount),
	}

	if err := s.db.Create(player).Error; err != nil {
		return nil, err
	}

	return player, nil
}

// RenamePlayer updates a player's display name, keeping it unique within
// the clan.
func (s *PlayerService) RenamePlayer(clanID, playerID uint, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("player name is required: %w", models.ErrValidation)
	}

	var count int64
	err := s.db.Model(&models.Player{}).
		Where("clan_id = ? AND id != ? AND LOWER(name) = LOWER(?)", clanID, playerID, name).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("player name: %w", models.ErrConflict)
	}

	player, err := s.getClanPlayer(clanID, playerID)
	if err != nil {
		return nil, err
	}

	player.Name = name
	if err := s.db.Save(player).Error; err != nil {
		return nil, err
	}

	player.Wars = player.Wars.Normalized()
	return player, nil
}

// DeletePlayer removes a player from the clan.
func (s *PlayerService) DeletePlayer(clanID, playerID uint) error {
	result := s.db.Where("clan_id = ?", clanID).Delete(&models.Player{}, playerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("player %d: %w", playerID, models.ErrNotFound)
	}
	return nil
}

// UpdateWarSlot replaces one war slot with the client's full copy. This is
// the strict persistence boundary: the slot is validated again here and
// rejected outright when out of range, never silently clamped. Returns the
// authoritative stored player.
func (s *PlayerService) UpdateWarSlot(clanID, playerID uint, warIndex int, slot models.WarSlot) (*models.Player, error) {
	if warIndex < 0 || warIndex >= models.WarCount {
		return nil, fmt.Errorf("war index %d: %w", warIndex, models.ErrValidation)
	}
	if err := warstats.ValidateSlot(slot); err != nil {
		return nil, err
	}

	player, err := s.getClanPlayer(clanID, playerID)
	if err != nil {
		return nil, err
	}

	wars := player.Wars.Normalized()
	wars[warIndex] = slot
	player.Wars = wars

	if err := s.db.Save(player).Error; err != nil {
		return nil, err
	}

	return player, nil
}

// ResetWarForClan zeroes one war slot for every player in the clan in a
// single bulk statement. Unlike the batch save there is no per-player
// fan-out and no partial success: the database provides the atomicity.
func (s *PlayerService) ResetWarForClan(clanID uint, warIndex int) error {
	if warIndex < 0 || warIndex >= models.WarCount {
		return fmt.Errorf("war index %d: %w", warIndex, models.ErrValidation)
	}

	zero, err := json.Marshal(models.WarSlot{})
	if err != nil {
		return err
	}

	// Players are always created with the full slot array, so jsonb_set
	// replaces in place rather than appending.
	return s.db.Exec(
		`UPDATE players
		 SET wars = jsonb_set(COALESCE(wars, '[]'::jsonb), ?::text[], ?::jsonb),
		     updated_at = NOW()
		 WHERE clan_id = ? AND deleted_at IS NULL`,
		fmt.Sprintf("{%d}", warIndex), string(zero), clanID,
	).Error
}

func (s *PlayerService) getClanPlayer(clanID, playerID uint) (*models.Player, error) {
	var player models.Player

	result := s.db.Where("clan_id = ?", clanID).First(&player, playerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("player %d: %w", playerID, models.ErrNotFound)
		}
		return nil, result.Error
	}

	return &player, nil
}
