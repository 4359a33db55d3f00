package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorServer(t *testing.T, status int, message string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientMapsStatusesToSentinels(t *testing.T) {
	cases := []struct {
		status  int
		message string
		want    error
	}{
		{http.StatusUnauthorized, "Session expired. Please log in again.", models.ErrSessionExpired},
		{http.StatusNotFound, "Player not found.", models.ErrNotFound},
		{http.StatusConflict, "Player name already exists.", models.ErrConflict},
		{http.StatusBadRequest, "War values out of range.", models.ErrValidation},
	}

	for _, tc := range cases {
		srv := errorServer(t, tc.status, tc.message)
		client := NewClient(srv.URL, "token")

		_, err := client.ListPlayers(context.Background())
		require.Error(t, err, "status %d", tc.status)
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		// The server's message survives the wrapping.
		assert.Contains(t, err.Error(), tc.message)
	}
}

func TestClientSessionExpiryPropagatesToBoard(t *testing.T) {
	srv := errorServer(t, http.StatusUnauthorized, "Session expired. Please log in again.")
	b := New(NewClient(srv.URL, "stale"))

	err := b.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSessionExpired)
	assert.Empty(t, b.Players())
}

func TestClientUpdateWarSlot(t *testing.T) {
	slot := models.WarSlot{AttackStars: 3, AttackPct: 80, DefenseStars: 1, DefensePct: 20}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/players/7/war/2", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var got models.WarSlot
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, slot, got)

		wars := make(models.Wars, models.WarCount)
		wars[2] = got
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Player{ID: 7, Name: "A", Wars: wars})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "secret")
	player, err := client.UpdateWarSlot(context.Background(), 7, 2, slot)
	require.NoError(t, err)
	assert.Equal(t, uint(7), player.ID)
	assert.Equal(t, slot, player.Wars.Slot(2))
}

func TestClientListPlayersNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/players", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// Short war arrays from older rows pad out client-side.
		json.NewEncoder(w).Encode([]models.Player{
			{ID: 1, Name: "A", Wars: models.Wars{{AttackStars: 2}}},
		})
	}))
	t.Cleanup(srv.Close)

	players, err := NewClient(srv.URL, "token").ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Len(t, players[0].Wars, models.WarCount)
	assert.Equal(t, 2, players[0].Wars.Slot(0).AttackStars)
}
