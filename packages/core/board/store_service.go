package board

import (
	"context"

	"core/models"
	"core/services"
)

// ServiceStore is the in-process Store implementation, binding the gorm-backed
// player service to one clan. It is the server-side counterpart of Client.
type ServiceStore struct {
	players *services.PlayerService
	clanID  uint
}

func NewServiceStore(players *services.PlayerService, clanID uint) *ServiceStore {
	return &ServiceStore{
		players: players,
		clanID:  clanID,
	}
}

func (s *ServiceStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.players.ListPlayers(s.clanID)
}

func (s *ServiceStore) UpdateWarSlot(ctx context.Context, playerID uint, warIndex int, slot models.WarSlot) (*models.Player, error) {
	return s.players.UpdateWarSlot(s.clanID, playerID, warIndex, slot)
}

func (s *ServiceStore) ResetWar(ctx context.Context, warIndex int) error {
	return s.players.ResetWarForClan(s.clanID, warIndex)
}
