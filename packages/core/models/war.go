package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// WarCount is the number of wars tracked per league season.
const WarCount = 7

const (
	MaxStars = 3
	MaxPct   = 100
)

// Field names accepted by war slot edits.
const (
	FieldAttackStars  = "attackStars"
	FieldAttackPct    = "attackPct"
	FieldDefenseStars = "defenseStars"
	FieldDefensePct   = "defensePct"
)

type WarSlot struct {
	AttackStars  int `json:"attackStars"`
	AttackPct    int `json:"attackPct"`
	DefenseStars int `json:"defenseStars"`
	DefensePct   int `json:"defensePct"`
}

// SetField assigns one named stat. Returns false for an unknown field name.
func (w *WarSlot) SetField(field string, value int) bool {
	switch field {
	case FieldAttackStars:
		w.AttackStars = value
	case FieldAttackPct:
		w.AttackPct = value
	case FieldDefenseStars:
		w.DefenseStars = value
	case FieldDefensePct:
		w.DefensePct = value
	default:
		return false
	}
	return true
}

// UpdateWarRequest is the commit payload for one war slot. Pointer fields
// distinguish a missing value from an explicit zero; a partial payload must
// never zero the fields it omitted.
type UpdateWarRequest struct {
	AttackStars  *int `json:"attackStars"`
	AttackPct    *int `json:"attackPct"`
	DefenseStars *int `json:"defenseStars"`
	DefensePct   *int `json:"defensePct"`
}

// Slot builds the full slot from the request. Returns false when any field
// is missing.
func (r UpdateWarRequest) Slot() (WarSlot, bool) {
	if r.AttackStars == nil || r.AttackPct == nil || r.DefenseStars == nil || r.DefensePct == nil {
		return WarSlot{}, false
	}
	return WarSlot{
		AttackStars:  *r.AttackStars,
		AttackPct:    *r.AttackPct,
		DefenseStars: *r.DefenseStars,
		DefensePct:   *r.DefensePct,
	}, true
}

// Wars is a player's war slot sequence, stored as a JSONB column.
type Wars []WarSlot

// Implements driver.Valuer for GORM
func (w Wars) Value() (driver.Value, error) {
	if len(w) == 0 {
		return json.Marshal(make([]WarSlot, WarCount))
	}
	return json.Marshal([]WarSlot(w))
}

// Implements sql.Scanner for GORM
func (w *Wars) Scan(value interface{}) error {
	if value == nil {
		*w = make(Wars, WarCount)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, w)
}

// Normalized pads or truncates the sequence to exactly WarCount entries.
// A missing slot reads as the zero record.
func (w Wars) Normalized() Wars {
	out := make(Wars, WarCount)
	copy(out, w)
	return out
}

// Slot returns the slot at idx, or the zero record when idx is out of range.
func (w Wars) Slot(idx int) WarSlot {
	if idx < 0 || idx >= len(w) {
		return WarSlot{}
	}
	return w[idx]
}
