package warstats

import (
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsSums(t *testing.T) {
	player := models.Player{
		Name: "A",
		Wars: models.Wars{
			{AttackStars: 3, AttackPct: 80, DefenseStars: 1, DefensePct: 20},
			{AttackStars: 2, AttackPct: 50, DefenseStars: 2, DefensePct: 70},
		},
	}

	totals := ComputeTotals(player)

	assert.Equal(t, 5, totals.AttackStars)
	assert.Equal(t, 130, totals.AttackPct)
	assert.Equal(t, 3, totals.DefenseStars)
	assert.Equal(t, 90, totals.DefensePct)
	assert.Equal(t, 2, totals.NetStars)
	assert.Equal(t, 40, totals.NetPct)
}

func TestComputeTotalsMissingSlotsAreZero(t *testing.T) {
	// A player with no war data at all aggregates to all zeroes.
	totals := ComputeTotals(models.Player{Name: "empty"})
	assert.Equal(t, models.Totals{}, totals)

	// Short sequences are padded, not an error.
	totals = ComputeTotals(models.Player{
		Wars: models.Wars{{AttackStars: 1, DefenseStars: 1}},
	})
	assert.Equal(t, 1, totals.AttackStars)
	assert.Equal(t, 0, totals.NetStars)
}

// Net totals computed per war must equal the difference of the attack and
// defense totals; subtraction distributes over the sum.
func TestComputeTotalsNetLinearity(t *testing.T) {
	player := models.Player{
		Wars: models.Wars{
			{AttackStars: 3, AttackPct: 90, DefenseStars: 0, DefensePct: 5},
			{AttackStars: 1, AttackPct: 40, DefenseStars: 3, DefensePct: 100},
			{AttackStars: 2, AttackPct: 77, DefenseStars: 2, DefensePct: 77},
			{AttackStars: 0, AttackPct: 0, DefenseStars: 1, DefensePct: 33},
		},
	}

	totals := ComputeTotals(player)

	assert.Equal(t, totals.AttackStars-totals.DefenseStars, totals.NetStars)
	assert.Equal(t, totals.AttackPct-totals.DefensePct, totals.NetPct)
}
