package warstats

import (
	"encoding/csv"
	"io"
	"strconv"

	"core/models"
)

// csvHeader is a compatibility contract; downstream spreadsheets key on
// these exact column names.
var csvHeader = []string{"Rank", "Player", "Total Net Stars", "Total Net %"}

// WriteCSV serializes a leaderboard for export.
func WriteCSV(w io.Writer, rows []models.LeaderboardRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Rank),
			row.Name,
			strconv.Itoa(row.NetStars),
			strconv.Itoa(row.NetPct),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
