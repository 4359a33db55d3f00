package warstats

import (
	"bytes"
	"testing"

	"core/models"

	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeaderContract(t *testing.T) {
	players := []models.Player{
		warPlayer(1, "A", models.WarSlot{AttackStars: 3, AttackPct: 80, DefenseStars: 1, DefensePct: 20}),
		warPlayer(2, "B", models.WarSlot{AttackStars: 2, AttackPct: 90, DefenseStars: 0, DefensePct: 10}),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, BuildLeaderboard(players)))

	want := "Rank,Player,Total Net Stars,Total Net %\n" +
		"1,B,2,80\n" +
		"2,A,2,60\n"
	require.Equal(t, want, buf.String())
}
