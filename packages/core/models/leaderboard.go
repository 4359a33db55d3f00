package models

// Totals are a player's lifetime sums across all war slots.
type Totals struct {
	AttackStars  int `json:"attackStars"`
	AttackPct    int `json:"attackPct"`
	DefenseStars int `json:"defenseStars"`
	DefensePct   int `json:"defensePct"`
	NetStars     int `json:"netStars"`
	NetPct       int `json:"netPct"`
}

// LeaderboardRow is a derived ranking entry. It is computed fresh from the
// current player set on every read and never persisted.
type LeaderboardRow struct {
	PlayerID uint   `json:"playerId"`
	Name     string `json:"name"`
	Totals
	Rank int `json:"rank"`
}
