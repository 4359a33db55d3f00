package warstats

import (
	"errors"
	"testing"

	"core/models"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5, 0, 100))
	assert.Equal(t, 100, Clamp(150, 0, 100))
	assert.Equal(t, 2, Clamp(2, 0, 3))
	assert.Equal(t, 3, Clamp(3, 0, 3))
	assert.Equal(t, 0, Clamp(0, 0, 3))
}

func TestClampField(t *testing.T) {
	cases := []struct {
		name  string
		field string
		raw   string
		want  int
	}{
		{"non-numeric becomes minimum", models.FieldAttackStars, "abc", 0},
		{"empty becomes minimum", models.FieldAttackPct, "", 0},
		{"negative stars", models.FieldAttackStars, "-5", 0},
		{"stars overflow", models.FieldDefenseStars, "9", 3},
		{"pct overflow", models.FieldAttackPct, "150", 100},
		{"pct negative", models.FieldDefensePct, "-1", 0},
		{"in range stars", models.FieldAttackStars, "2", 2},
		{"in range pct", models.FieldDefensePct, "67", 67},
		{"fractional rounds", models.FieldAttackPct, "66.6", 67},
		{"whitespace tolerated", models.FieldAttackStars, " 3 ", 3},
		{"infinity becomes minimum", models.FieldAttackPct, "+Inf", 0},
		{"nan becomes minimum", models.FieldAttackPct, "NaN", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampField(tc.field, tc.raw))
		})
	}
}

func TestValidateSlotAcceptsBoundaries(t *testing.T) {
	assert.NoError(t, ValidateSlot(models.WarSlot{}))
	assert.NoError(t, ValidateSlot(models.WarSlot{
		AttackStars:  3,
		AttackPct:    100,
		DefenseStars: 3,
		DefensePct:   100,
	}))
}

func TestValidateSlotRejectsOutOfRange(t *testing.T) {
	cases := []models.WarSlot{
		{AttackStars: 4},
		{AttackStars: -1},
		{AttackPct: 101},
		{AttackPct: -10},
		{DefenseStars: 4},
		{DefensePct: 200},
	}

	for _, slot := range cases {
		err := ValidateSlot(slot)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrValidation))
	}
}
