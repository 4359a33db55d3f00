// Package board holds the admin working state: the clan roster with
// in-progress edits, per-war dirty flags, and the batched save that commits
// one war's edits to the store as a concurrent fan-out.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"core/models"
	"core/warstats"

	"golang.org/x/sync/errgroup"
)

// Store is the collaborator the board commits through. The clan scope is
// bound at construction time (server session or bearer token).
type Store interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UpdateWarSlot(ctx context.Context, playerID uint, warIndex int, slot models.WarSlot) (*models.Player, error)
	ResetWar(ctx context.Context, warIndex int) error
}

// ErrSaveInProgress rejects a re-entrant save for a war index that already
// has a fan-out outstanding. Saves for other indices are unaffected.
var ErrSaveInProgress = errors.New("save already in progress for this war")

// savedWindow bounds how long the recently-saved marker is reported before
// it goes stale on its own.
const savedWindow = 3 * time.Second

// SaveResult is the per-player outcome of one batch save. A failed save
// still lists the players whose requests succeeded: those are committed
// server-side and are not rolled back.
type SaveResult struct {
	PlayerID uint
	Err      error
}

// Board is an explicit state value with reducer-style transitions, so the
// save/dirty lifecycle is testable without any UI. All exported methods are
// safe for concurrent use; only the save fan-out itself runs in parallel.
type Board struct {
	mu      sync.Mutex
	store   Store
	players []models.Player
	dirty   map[int]bool
	saving  map[int]bool
	saved   int // war index of the last full save, -1 when none
	savedAt time.Time
}

func New(store Store) *Board {
	return &Board{
		store:  store,
		dirty:  make(map[int]bool),
		saving: make(map[int]bool),
		saved:  -1,
	}
}

// Load replaces the working state with the store's current roster.
func (b *Board) Load(ctx context.Context) error {
	players, err := b.store.ListPlayers(ctx)
	if err != nil {
		return b.checkSession(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.players = players
	b.dirty = make(map[int]bool)
	// The marker described state that was just replaced.
	b.saved = -1
	return nil
}

// Players returns a copy of the working roster, edits included.
func (b *Board) Players() []models.Player {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clonePlayers(b.players)
}

// Edit applies one permissively clamped field change to the local working
// state, marks that war dirty, and invalidates any recently-saved feedback.
// Nothing is persisted until SaveAll.
func (b *Board) Edit(playerID uint, warIndex int, field, raw string) error {
	if warIndex < 0 || warIndex >= models.WarCount {
		return fmt.Errorf("war index %d: %w", warIndex, models.ErrValidation)
	}

	value := warstats.ClampField(field, raw)

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.players {
		if b.players[i].ID != playerID {
			continue
		}

		wars := b.players[i].Wars.Normalized()
		slot := wars[warIndex]
		if !slot.SetField(field, value) {
			return fmt.Errorf("unknown field %q: %w", field, models.ErrValidation)
		}
		wars[warIndex] = slot
		b.players[i].Wars = wars

		b.dirty[warIndex] = true
		// A new edit invalidates prior success feedback for every war,
		// not just this one.
		b.saved = -1
		return nil
	}

	return fmt.Errorf("player %d: %w", playerID, models.ErrNotFound)
}

// Dirty reports whether a war index has unsaved edits.
func (b *Board) Dirty(warIndex int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty[warIndex]
}

// Saving reports whether a save fan-out is outstanding for a war index.
func (b *Board) Saving(warIndex int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saving[warIndex]
}

// RecentlySaved reports the war index of the last fully successful save,
// for transient success feedback. The marker expires after a short window
// and is cleared early by any new edit.
func (b *Board) RecentlySaved() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saved < 0 || time.Since(b.savedAt) > savedWindow {
		return 0, false
	}
	return b.saved, true
}

// SaveAll commits one war index for every player in the working set: one
// independent request per player, issued concurrently, each carrying the
// player's full slot rather than a diff. The user-facing outcome is
// all-or-nothing but the server-side commits are not: on failure the
// returned results say which players persisted, the dirty flag stays set,
// and there is no compensating rollback. Retrying re-sends full state, so
// the operation is idempotent.
func (b *Board) SaveAll(ctx context.Context, warIndex int) ([]SaveResult, error) {
	if warIndex < 0 || warIndex >= models.WarCount {
		return nil, fmt.Errorf("war index %d: %w", warIndex, models.ErrValidation)
	}

	b.mu.Lock()
	if b.saving[warIndex] {
		b.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	b.saving[warIndex] = true
	b.saved = -1
	snapshot := clonePlayers(b.players)
	b.mu.Unlock()

	results := make([]SaveResult, len(snapshot))
	updated := make([]*models.Player, len(snapshot))

	// Plain Group, not WithContext: a failing request must not cancel its
	// siblings, they run to completion regardless.
	var g errgroup.Group
	for i, p := range snapshot {
		i, p := i, p
		g.Go(func() error {
			slot := p.Wars.Normalized()[warIndex]
			player, err := b.store.UpdateWarSlot(ctx, p.ID, warIndex, slot)
			results[i] = SaveResult{PlayerID: p.ID, Err: err}
			updated[i] = player
			return err
		})
	}
	err := g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.saving, warIndex)

	if err != nil {
		if errors.Is(err, models.ErrSessionExpired) {
			b.discardLocked()
		}
		return results, fmt.Errorf("save war %d: %w", warIndex+1, err)
	}

	// Reconcile with the server's authoritative copies and clear the flag.
	for _, srv := range updated {
		if srv == nil {
			continue
		}
		for i := range b.players {
			if b.players[i].ID == srv.ID {
				b.players[i] = *srv
				b.players[i].Wars = b.players[i].Wars.Normalized()
				break
			}
		}
	}
	b.dirty[warIndex] = false
	b.saved = warIndex
	b.savedAt = time.Now()

	return results, nil
}

// ResetWar zeroes one war for the whole clan through the store's bulk
// mutation, then discards the local cache for a fresh fetch. Local state is
// not reconciled piecemeal here, unlike SaveAll.
func (b *Board) ResetWar(ctx context.Context, warIndex int) error {
	if warIndex < 0 || warIndex >= models.WarCount {
		return fmt.Errorf("war index %d: %w", warIndex, models.ErrValidation)
	}

	if err := b.store.ResetWar(ctx, warIndex); err != nil {
		return b.checkSession(err)
	}

	return b.Load(ctx)
}

// DiscardAll drops every unsaved edit and the cached roster. This is the
// deliberate lossy policy on session expiry: no confirmation, no merge.
func (b *Board) DiscardAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.discardLocked()
}

// Leaderboard ranks the current working state, edits included. Recomputed
// on every call; never cached.
func (b *Board) Leaderboard() []models.LeaderboardRow {
	b.mu.Lock()
	players := clonePlayers(b.players)
	b.mu.Unlock()
	return warstats.BuildLeaderboard(players)
}

func (b *Board) discardLocked() {
	b.players = nil
	b.dirty = make(map[int]bool)
	b.saved = -1
}

func (b *Board) checkSession(err error) error {
	if errors.Is(err, models.ErrSessionExpired) {
		b.DiscardAll()
	}
	return err
}

func clonePlayers(players []models.Player) []models.Player {
	out := make([]models.Player, len(players))
	copy(out, players)
	for i := range out {
		out[i].Wars = append(models.Wars(nil), out[i].Wars...)
	}
	return out
}
