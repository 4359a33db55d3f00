package warstats

import (
	"sort"

	"core/models"
)

// BuildLeaderboard projects players through ComputeTotals and orders them:
// total net stars descending, then total net percent descending, then name
// ascending. Player names are unique within a clan, so the order is a total
// order and any incoming order is irrelevant. Ranks are 1-indexed.
func BuildLeaderboard(players []models.Player) []models.LeaderboardRow {
	rows := make([]models.LeaderboardRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, models.LeaderboardRow{
			PlayerID: p.ID,
			Name:     p.Name,
			Totals:   ComputeTotals(p),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].NetStars != rows[j].NetStars {
			return rows[i].NetStars > rows[j].NetStars
		}
		if rows[i].NetPct != rows[j].NetPct {
			return rows[i].NetPct > rows[j].NetPct
		}
		return rows[i].Name < rows[j].Name
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
