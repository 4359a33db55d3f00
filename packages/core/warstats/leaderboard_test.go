package warstats

import (
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func warPlayer(id uint, name string, slots ...models.WarSlot) models.Player {
	return models.Player{ID: id, Name: name, Wars: models.Wars(slots)}
}

func TestBuildLeaderboardNetPctTieBreak(t *testing.T) {
	a := warPlayer(1, "A", models.WarSlot{AttackStars: 3, AttackPct: 80, DefenseStars: 1, DefensePct: 20})
	b := warPlayer(2, "B", models.WarSlot{AttackStars: 2, AttackPct: 90, DefenseStars: 0, DefensePct: 10})

	rows := BuildLeaderboard([]models.Player{a, b})
	require.Len(t, rows, 2)

	// Both net 2 stars; B's net 80% beats A's net 60%.
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[0].NetStars)
	assert.Equal(t, 80, rows[0].NetPct)

	assert.Equal(t, "A", rows[1].Name)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, 2, rows[1].NetStars)
	assert.Equal(t, 60, rows[1].NetPct)
}

func TestBuildLeaderboardNameTieBreak(t *testing.T) {
	slot := models.WarSlot{AttackStars: 2, AttackPct: 50}
	b := warPlayer(1, "Bravo", slot)
	a := warPlayer(2, "alpha", slot)
	c := warPlayer(3, "Alpha", slot)

	rows := BuildLeaderboard([]models.Player{b, a, c})
	require.Len(t, rows, 3)

	// Equal stats fall back to name ascending, case-sensitive.
	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, "Bravo", rows[1].Name)
	assert.Equal(t, "alpha", rows[2].Name)
}

func TestBuildLeaderboardOrderIsInputIndependent(t *testing.T) {
	players := []models.Player{
		warPlayer(1, "A", models.WarSlot{AttackStars: 1, AttackPct: 10}),
		warPlayer(2, "B", models.WarSlot{AttackStars: 3, AttackPct: 99}),
		warPlayer(3, "C", models.WarSlot{AttackStars: 3, AttackPct: 70}),
		warPlayer(4, "D"),
	}
	swapped := []models.Player{players[3], players[1], players[0], players[2]}

	rows := BuildLeaderboard(players)
	rowsSwapped := BuildLeaderboard(swapped)

	assert.Equal(t, rows, rowsSwapped)

	for i, row := range rows {
		assert.Equal(t, i+1, row.Rank)
	}
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, BuildLeaderboard(nil))
}
