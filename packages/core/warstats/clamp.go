package warstats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"core/models"
)

// Clamp bounds v to the closed range [min, max].
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// FieldMax returns the upper bound for a war slot field: star fields cap at
// 3, percentage fields at 100.
func FieldMax(field string) int {
	if strings.Contains(field, "Stars") {
		return models.MaxStars
	}
	return models.MaxPct
}

// ClampField shapes raw interactive input into a bounded integer. Anything
// that does not parse as a finite number becomes the range minimum; input is
// never rejected here, so editing stays well-formed. The strict counterpart
// at the persistence boundary is ValidateSlot.
func ClampField(field, raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Clamp(int(math.Round(f)), 0, FieldMax(field))
}

// ValidateSlot enforces the field ranges at commit time. Unlike ClampField
// it hard-rejects out-of-range values instead of silently bounding them:
// the store must never mutate a client's intent behind its back.
func ValidateSlot(slot models.WarSlot) error {
	checks := []struct {
		field string
		value int
		max   int
	}{
		{models.FieldAttackStars, slot.AttackStars, models.MaxStars},
		{models.FieldAttackPct, slot.AttackPct, models.MaxPct},
		{models.FieldDefenseStars, slot.DefenseStars, models.MaxStars},
		{models.FieldDefensePct, slot.DefensePct, models.MaxPct},
	}

	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			return fmt.Errorf("%s out of range [0,%d]: %w", c.field, c.max, models.ErrValidation)
		}
	}
	return nil
}
