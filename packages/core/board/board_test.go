package board

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"core/models"
	"core/warstats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore mimics the collaborator store, including its strict commit-time
// validation. Failures are injected per player id.
type fakeStore struct {
	mu         sync.Mutex
	players    map[uint]models.Player
	failFor    map[uint]error
	resetCalls []int
	block      chan struct{} // when set, UpdateWarSlot waits until closed
}

func newFakeStore(players ...models.Player) *fakeStore {
	s := &fakeStore{
		players: make(map[uint]models.Player),
		failFor: make(map[uint]error),
	}
	for _, p := range players {
		p.Wars = p.Wars.Normalized()
		s.players[p.ID] = p
	}
	return s
}

func (s *fakeStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) UpdateWarSlot(ctx context.Context, playerID uint, warIndex int, slot models.WarSlot) (*models.Player, error) {
	s.mu.Lock()
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failFor[playerID]; err != nil {
		return nil, err
	}
	if err := warstats.ValidateSlot(slot); err != nil {
		return nil, err
	}

	p, ok := s.players[playerID]
	if !ok {
		return nil, fmt.Errorf("player %d: %w", playerID, models.ErrNotFound)
	}

	wars := p.Wars.Normalized()
	wars[warIndex] = slot
	p.Wars = wars
	s.players[playerID] = p

	out := p
	out.Wars = append(models.Wars(nil), p.Wars...)
	return &out, nil
}

func (s *fakeStore) ResetWar(ctx context.Context, warIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetCalls = append(s.resetCalls, warIndex)
	zero := models.WarSlot{}
	for id, p := range s.players {
		wars := p.Wars.Normalized()
		wars[warIndex] = zero
		p.Wars = wars
		s.players[id] = p
	}
	return nil
}

func (s *fakeStore) slot(playerID uint, warIndex int) models.WarSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[playerID].Wars.Slot(warIndex)
}

func loadedBoard(t *testing.T, store Store) *Board {
	t.Helper()
	b := New(store)
	require.NoError(t, b.Load(context.Background()))
	return b
}

func TestEditClampsAndMarksDirty(t *testing.T) {
	store := newFakeStore(models.Player{ID: 1, Name: "A"})
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 0, models.FieldAttackStars, "9"))
	require.NoError(t, b.Edit(1, 0, models.FieldAttackPct, "abc"))

	players := b.Players()
	require.Len(t, players, 1)
	assert.Equal(t, 3, players[0].Wars.Slot(0).AttackStars)
	assert.Equal(t, 0, players[0].Wars.Slot(0).AttackPct)

	assert.True(t, b.Dirty(0))
	assert.False(t, b.Dirty(1))

	// Nothing hit the store yet.
	assert.Equal(t, models.WarSlot{}, store.slot(1, 0))
}

func TestEditRejectsUnknownFieldAndPlayer(t *testing.T) {
	b := loadedBoard(t, newFakeStore(models.Player{ID: 1, Name: "A"}))

	err := b.Edit(1, 0, "sideways", "2")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.False(t, b.Dirty(0))

	err = b.Edit(42, 0, models.FieldAttackStars, "2")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = b.Edit(1, models.WarCount, models.FieldAttackStars, "2")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestEditThenSaveAllRoundTrip(t *testing.T) {
	store := newFakeStore(
		models.Player{ID: 1, Name: "A"},
		models.Player{ID: 2, Name: "B"},
	)
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 0, models.FieldAttackStars, "3"))
	require.True(t, b.Dirty(0))

	results, err := b.SaveAll(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}

	assert.False(t, b.Dirty(0))
	assert.Equal(t, 3, store.slot(1, 0).AttackStars)

	saved, ok := b.RecentlySaved()
	require.True(t, ok)
	assert.Equal(t, 0, saved)
}

func TestEditInvalidatesSavedMarkerGlobally(t *testing.T) {
	store := newFakeStore(models.Player{ID: 1, Name: "A"})
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 2, models.FieldAttackPct, "55"))
	_, err := b.SaveAll(context.Background(), 2)
	require.NoError(t, err)

	_, ok := b.RecentlySaved()
	require.True(t, ok)

	// An edit to a different war still clears the feedback.
	require.NoError(t, b.Edit(1, 5, models.FieldDefensePct, "10"))
	_, ok = b.RecentlySaved()
	assert.False(t, ok)
}

func TestReloadClearsSavedMarker(t *testing.T) {
	store := newFakeStore(models.Player{ID: 1, Name: "A"})
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 0, models.FieldAttackStars, "2"))
	_, err := b.SaveAll(context.Background(), 0)
	require.NoError(t, err)
	_, ok := b.RecentlySaved()
	require.True(t, ok)

	// Reset discards the working state; the success feedback must not
	// outlive the state it described.
	require.NoError(t, b.ResetWar(context.Background(), 0))
	_, ok = b.RecentlySaved()
	assert.False(t, ok)
}

func TestSaveAllPartialFailureKeepsDirty(t *testing.T) {
	store := newFakeStore(
		models.Player{ID: 1, Name: "A"},
		models.Player{ID: 2, Name: "B"},
		models.Player{ID: 3, Name: "C"},
	)
	store.failFor[2] = fmt.Errorf("war values out of range: %w", models.ErrValidation)
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 1, models.FieldAttackStars, "2"))
	require.NoError(t, b.Edit(3, 1, models.FieldAttackStars, "1"))

	results, err := b.SaveAll(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)

	// The failing player is attributed; the others committed server-side
	// and stay committed. No rollback.
	require.Len(t, results, 3)
	byID := map[uint]error{}
	for _, r := range results {
		byID[r.PlayerID] = r.Err
	}
	assert.NoError(t, byID[1])
	assert.Error(t, byID[2])
	assert.NoError(t, byID[3])

	assert.Equal(t, 2, store.slot(1, 1).AttackStars)
	assert.Equal(t, 1, store.slot(3, 1).AttackStars)

	assert.True(t, b.Dirty(1))
	_, ok := b.RecentlySaved()
	assert.False(t, ok)

	// Retrying resends full state and succeeds once the failure clears.
	delete(store.failFor, 2)
	_, err = b.SaveAll(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, b.Dirty(1))
}

func TestSaveAllRejectsReentrantSameIndex(t *testing.T) {
	store := newFakeStore(models.Player{ID: 1, Name: "A"})
	store.block = make(chan struct{})
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 0, models.FieldAttackStars, "1"))

	done := make(chan error, 1)
	go func() {
		_, err := b.SaveAll(context.Background(), 0)
		done <- err
	}()

	// Wait for the fan-out to be in flight.
	require.Eventually(t, func() bool { return b.Saving(0) }, time.Second, time.Millisecond)

	_, err := b.SaveAll(context.Background(), 0)
	assert.ErrorIs(t, err, ErrSaveInProgress)

	// Editing stays enabled while the save is outstanding.
	assert.NoError(t, b.Edit(1, 3, models.FieldDefenseStars, "2"))

	close(store.block)
	require.NoError(t, <-done)
	assert.False(t, b.Saving(0))
}

func TestSaveAllIndependentIndices(t *testing.T) {
	store := newFakeStore(models.Player{ID: 1, Name: "A"})
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 0, models.FieldAttackStars, "1"))
	require.NoError(t, b.Edit(1, 4, models.FieldAttackStars, "2"))

	_, err := b.SaveAll(context.Background(), 0)
	require.NoError(t, err)

	assert.False(t, b.Dirty(0))
	assert.True(t, b.Dirty(4))
}

func TestSaveAllRejectsInvalidIndex(t *testing.T) {
	b := loadedBoard(t, newFakeStore())

	_, err := b.SaveAll(context.Background(), -1)
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = b.SaveAll(context.Background(), models.WarCount)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestResetWarReloadsFromStore(t *testing.T) {
	store := newFakeStore(
		models.Player{ID: 1, Name: "A", Wars: models.Wars{
			{}, {}, {AttackStars: 3, AttackPct: 90, DefenseStars: 2, DefensePct: 40},
		}},
		models.Player{ID: 2, Name: "B", Wars: models.Wars{
			{}, {}, {AttackStars: 1, AttackPct: 10},
		}},
	)
	b := loadedBoard(t, store)

	// A pending local edit on the same war is discarded with the cache.
	require.NoError(t, b.Edit(1, 2, models.FieldAttackPct, "99"))

	require.NoError(t, b.ResetWar(context.Background(), 2))
	assert.Equal(t, []int{2}, store.resetCalls)

	for _, p := range b.Players() {
		assert.Equal(t, models.WarSlot{}, p.Wars.Slot(2))
	}
	assert.False(t, b.Dirty(2))
}

func TestSessionExpiryDiscardsEdits(t *testing.T) {
	store := newFakeStore(models.Player{ID: 1, Name: "A"})
	store.failFor[1] = fmt.Errorf("session expired. Please log in again: %w", models.ErrSessionExpired)
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(1, 0, models.FieldAttackStars, "3"))

	_, err := b.SaveAll(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSessionExpired))

	// Lossy by policy: the working set and its edits are gone.
	assert.Empty(t, b.Players())
	assert.False(t, b.Dirty(0))
}

func TestLeaderboardReflectsLocalEdits(t *testing.T) {
	store := newFakeStore(
		models.Player{ID: 1, Name: "A"},
		models.Player{ID: 2, Name: "B"},
	)
	b := loadedBoard(t, store)

	require.NoError(t, b.Edit(2, 0, models.FieldAttackStars, "3"))

	rows := b.Leaderboard()
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 3, rows[0].NetStars)
}
