package warstats

import "core/models"

// ComputeTotals reduces a player's war slots into lifetime totals. Missing
// slots count as zero records. Net values are summed per war; since
// subtraction distributes over the sum this equals the difference of the
// attack and defense totals.
func ComputeTotals(p models.Player) models.Totals {
	var totals models.Totals
	for _, war := range p.Wars.Normalized() {
		totals.AttackStars += war.AttackStars
		totals.AttackPct += war.AttackPct
		totals.DefenseStars += war.DefenseStars
		totals.DefensePct += war.DefensePct
		totals.NetStars += war.AttackStars - war.DefenseStars
		totals.NetPct += war.AttackPct - war.DefensePct
	}
	return totals
}
