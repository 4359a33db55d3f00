package services

import (
	"errors"
	"fmt"
	"strings"

	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// ErrAlreadyOwned distinguishes the one-clan-per-owner conflict from a name
// collision; both satisfy errors.Is against models.ErrConflict.
var ErrAlreadyOwned = fmt.Errorf("owner already has a clan: %w", models.ErrConflict)

type ClanService struct {
	db *gorm.DB
}

func NewClanService(db *gorm.DB) *ClanService {
	return &ClanService{
		db: db,
	}
}

// GetClanByOwner returns the clan owned by a user. Each user owns at most
// one clan.
func (s *ClanService) GetClanByOwner(ownerID uint) (*models.Clan, error) {
	var clan models.Clan

	result := s.db.Where("owner_id = ?", ownerID).First(&clan)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("clan for owner %d: %w", ownerID, models.ErrNotFound)
		}
		return nil, result.Error
	}

	return &clan, nil
}

// CreateClan creates the caller's clan. Names are unique case-insensitively
// across all clans, and so are the slugs derived from them.
func (s *ClanService) CreateClan(ownerID uint, name string) (*models.Clan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("clan name is required: %w", models.ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.Clan{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyOwned
	}

	if err := s.db.Model(&models.Clan{}).Where("LOWER(name) = LOWER(?)", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("clan name: %w", models.ErrConflict)
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("clan name is invalid: %w", models.ErrValidation)
	}

	if err := s.db.Model(&models.Clan{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("clan slug: %w", models.ErrConflict)
	}

	clan := &models.Clan{
		Name:    name,
		Slug:    slug,
		OwnerID: ownerID,
	}

	if err := s.db.Create(clan).Error; err != nil {
		return nil, err
	}

	return clan, nil
}

// ListClans returns the public summaries of all clans, oldest first.
func (s *ClanService) ListClans() ([]models.ClanSummary, error) {
	var clans []models.Clan

	if err := s.db.Order("created_at ASC").Find(&clans).Error; err != nil {
		return nil, err
	}

	summaries := make([]models.ClanSummary, 0, len(clans))
	for _, clan := range clans {
		summaries = append(summaries, clan.Summary())
	}

	return summaries, nil
}

// GetClanBySlug resolves a clan for public, unauthenticated reads.
func (s *ClanService) GetClanBySlug(slug string) (*models.Clan, error) {
	var clan models.Clan

	result := s.db.Where("slug = ?", slug).First(&clan)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("clan %q: %w", slug, models.ErrNotFound)
		}
		return nil, result.Error
	}

	return &clan, nil
}
