package analysis

import (
	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/types"
)

// AnalyzeTier streams tier's flushed records off disk and folds them
// into stats, one Observe call per position (spec.md §4.8 "per solved
// tier"). When g implements game.PositionSymmetric, a position counts
// as canonical only when it is its own CanonicalPosition; otherwise
// every legal stored position counts, since the game exposes no
// narrower notion of canonical.
func AnalyzeTier(g game.Game, disk *database.Disk, stats *Stats, tier types.Tier) error {
	records, err := disk.LoadTier(tier)
	if err != nil {
		return err
	}
	symmetric, hasSymmetry := g.(game.PositionSymmetric)
	for i, rec := range records {
		if rec.Value == types.Undecided {
			continue
		}
		pos := types.Position(i)
		tp := types.TierPosition{Tier: tier, Position: pos}
		canonical := true
		if hasSymmetry {
			canonical = symmetric.CanonicalPosition(tp) == tp
		}
		outDegree := len(g.GenerateMoves(tp))
		stats.Observe(tier, pos, rec, canonical, outDegree)
	}
	return nil
}

// AnalyzeTiers runs AnalyzeTier over every tier in order, merging each
// tier's own Stats into a running total — mirroring the way the tier
// solver itself processes one tier at a time (spec.md §4.8
// "Aggregation across tiers").
func AnalyzeTiers(g game.Game, disk *database.Disk, tiers []types.Tier) (*Stats, error) {
	total := New()
	for _, t := range tiers {
		if !disk.HasTier(t) {
			continue
		}
		tierStats := New()
		if err := AnalyzeTier(g, disk, tierStats, t); err != nil {
			return nil, err
		}
		total.Merge(tierStats)
	}
	return total, nil
}
