package tiersolver

import (
	"sync/atomic"

	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/frontier"
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/reversegraph"
	"github.com/gamesmanone/core/internal/types"
)

// tierContext bundles everything one tier's retrograde solve needs
// across phases A, B, and C (spec §4.7).
type tierContext struct {
	game     game.Game
	tier     types.Tier
	children []types.Tier
	size     int64

	mem *database.MemoryTier

	// undiscovered counts, per position in the current tier, the
	// remaining "undiscovered winning moves" before a Lose can be
	// declared (spec §4.7 Phase B). Kept as its own array rather than
	// reusing the record's remoteness field as scratch space — see
	// DESIGN.md.
	undiscovered []atomic.Int32

	// childRecords[j] holds child tier j's flushed (Value, Remoteness)
	// vector, kept around so Phase C can look up a frontier entry's
	// originating value without re-reading disk.
	childRecords [][]types.Record

	// graph is the fallback reverse graph, built only when the game
	// does not implement game.ParentGenerator (spec §4.5).
	graph *reversegraph.Graph

	fr       *frontier.Frontier
	maxLevel types.Remoteness
}

// numCanonicalChildren counts the distinct positions tp transitions
// into, the quantity the Lose-derivation counter (ctx.undiscovered) must
// be seeded with (spec §4.7 Phase B: "number of undiscovered winning
// moves"). Falling back to len(GenerateMoves(tp)) here would overcount
// whenever two moves transpose into the same child, the same hazard
// reversegraph.Build's edge deduplication guards against on the other
// side of the same fallback path.
func numCanonicalChildren(g game.Game, tp types.TierPosition) int {
	if ccg, ok := g.(game.CanonicalChildGenerator); ok {
		return ccg.NumberOfCanonicalChildPositions(tp)
	}
	moves := g.GenerateMoves(tp)
	seen := make(map[types.TierPosition]struct{}, len(moves))
	for _, m := range moves {
		seen[g.DoMove(tp, m)] = struct{}{}
	}
	return len(seen)
}

// addFrontier records that pos became known at rem, sourced from child
// index idx (len(children) means "from the current tier itself"), and
// extends the level high-water mark phaseC iterates up to.
func addFrontier(ctx *tierContext, pos types.Position, rem types.Remoteness, idx int) {
	ctx.fr.Add(pos, rem, idx)
	if rem > ctx.maxLevel {
		ctx.maxLevel = rem
	}
}

func sourceTierPosition(ctx *tierContext, childIdx int, pos types.Position) types.TierPosition {
	if childIdx < len(ctx.children) {
		return types.TierPosition{Tier: ctx.children[childIdx], Position: pos}
	}
	return types.TierPosition{Tier: ctx.tier, Position: pos}
}

func childValue(ctx *tierContext, childIdx int, pos types.Position) types.Value {
	if childIdx < len(ctx.children) {
		return ctx.childRecords[childIdx][pos].Value
	}
	return ctx.mem.GetValue(pos)
}

// parentsOf returns the current tier's positions that reach child in
// one move, preferring the game's own CanonicalParentPositions over
// the built reverse graph (spec §4.5 "used when").
func parentsOf(ctx *tierContext, child types.TierPosition) []types.Position {
	if pg, ok := ctx.game.(game.ParentGenerator); ok {
		tps := pg.CanonicalParentPositions(child, ctx.tier)
		out := make([]types.Position, len(tps))
		for i, tp := range tps {
			out[i] = tp.Position
		}
		return out
	}
	if ctx.graph == nil {
		return nil
	}
	return ctx.graph.Parents(child)
}

// propagate applies the Win<-Lose / Lose<-AllWin / Tie<-Tie derivation
// rules of spec §4.7 Phase C to parent q, given the child value and
// level that produced it.
func propagate(ctx *tierContext, q types.Position, childVal types.Value, rem types.Remoteness) {
	if ctx.mem.IsLabeled(q) {
		return
	}
	switch childVal {
	case types.Lose:
		if ctx.mem.TrySetValue(q, types.Win, rem+1) {
			addFrontier(ctx, q, rem+1, len(ctx.children))
		}
	case types.Win:
		if ctx.undiscovered[q].Add(-1) == 0 {
			if ctx.mem.TrySetValue(q, types.Lose, rem+1) {
				addFrontier(ctx, q, rem+1, len(ctx.children))
			}
		}
	case types.Tie:
		if ctx.mem.TrySetValue(q, types.Tie, rem+1) {
			addFrontier(ctx, q, rem+1, len(ctx.children))
		}
	}
}

// buildReverseGraph constructs the flat reverse graph over the
// current tier plus its children, used only when the game has no
// ParentGenerator (spec §4.5).
func buildReverseGraph(g game.Game, tier types.Tier, size int64, children []types.Tier) *reversegraph.Graph {
	tiers := make([]types.Tier, 0, len(children)+1)
	tiers = append(tiers, children...)
	tiers = append(tiers, tier)
	sizes := make(map[types.Tier]int64, len(tiers))
	for _, t := range tiers {
		if t == tier {
			sizes[t] = size
		} else {
			sizes[t] = g.TierSize(t)
		}
	}
	rg := reversegraph.New(tiers, sizes)
	reversegraph.Build(rg, tier, size, g.GenerateMoves, g.DoMove, g.IsLegalPosition)
	return rg
}

// newTierContext allocates the scratch state for solving tier, loading
// child records up front (Phase A).
func newTierContext(g game.Game, mem *database.MemoryTier, disk *database.Disk, tier types.Tier, children []types.Tier, size int64) (*tierContext, error) {
	ctx := &tierContext{
		game:         g,
		tier:         tier,
		children:     children,
		size:         size,
		mem:          mem,
		undiscovered: make([]atomic.Int32, size),
		childRecords: make([][]types.Record, len(children)),
		fr:           frontier.New(0, len(children)),
	}

	if _, ok := g.(game.ParentGenerator); !ok {
		ctx.graph = buildReverseGraph(g, tier, size, children)
	}

	for j, c := range children {
		records, err := disk.LoadTier(c)
		if err != nil {
			return nil, err
		}
		ctx.childRecords[j] = records
		for pos, rec := range records {
			if rec.Value == types.Undecided || rec.Value == types.Draw {
				continue
			}
			addFrontier(ctx, types.Position(pos), rec.Remoteness, j)
		}
	}
	return ctx, nil
}

// runPrimitiveScan is Phase B: label every primitive position at
// remoteness 0 and enqueue it; every other legal position gets its
// undiscovered-winning-moves counter initialized.
func runPrimitiveScan(ctx *tierContext) {
	scanPrimitiveRange(ctx, 0, ctx.size)
}

// scanPrimitiveRange runs Phase B over positions [lo, hi) only, so the
// parallel scan can partition the tier across worker goroutines.
func scanPrimitiveRange(ctx *tierContext, lo, hi int64) {
	for pos := types.Position(lo); int64(pos) < hi; pos++ {
		tp := types.TierPosition{Tier: ctx.tier, Position: pos}
		if !ctx.game.IsLegalPosition(tp) {
			continue
		}
		if v := ctx.game.Primitive(tp); v != types.Undecided {
			ctx.mem.SetValue(pos, v, 0)
			addFrontier(ctx, pos, 0, len(ctx.children))
			continue
		}
		ctx.undiscovered[pos].Store(int32(numCanonicalChildren(ctx.game, tp)))
	}
}

// frontierPoolFor returns n shallow copies of ctx, each backed by its
// own cache-line-padded Frontier (frontier.NewPool), so
// scanPrimitiveRange's goroutines neither contend on a shared Frontier
// nor false-share cache lines with each other while appending to their
// own buckets (spec §5 "frontier has one instance per worker").
func frontierPoolFor(n int, ctx *tierContext) []*tierContext {
	padded := frontier.NewPool(n, 0, len(ctx.children))
	pool := make([]*tierContext, n)
	for i := range pool {
		clone := *ctx
		clone.fr = &padded[i].Frontier
		clone.maxLevel = 0
		pool[i] = &clone
	}
	return pool
}

// mergeInto drains local's frontier bucket for rem into ctx's shared
// frontier, the single-coordinator reduction spec §5 calls for.
func mergeInto(ctx *tierContext, local *tierContext, rem types.Remoteness) {
	frontier.Merge(ctx.fr, local.fr, rem)
	if rem > ctx.maxLevel {
		ctx.maxLevel = rem
	}
}

// runPropagation is Phase C: process remoteness levels in ascending
// order, tier-group order within a level, applying the derivation
// rules to every parent of every frontier entry. Within a level, Win
// and Lose derivation (driven by Lose/Win children) is applied in a
// first pass over the whole level before any Tie derivation is
// attempted in a second pass, so a parent with both a Lose child and
// a Tie child at the same remoteness always resolves to Win — the
// "q would prefer Win" precedence spec §4.7 describes, made
// deterministic rather than relying on frontier iteration order.
func runPropagation(ctx *tierContext) {
	for rem := types.Remoteness(0); rem <= ctx.maxLevel; rem++ {
		ctx.fr.AccumulateDividers(rem)
		propagateLevel(ctx, rem, false)
		propagateLevel(ctx, rem, true)
		ctx.fr.FreeRemoteness(rem)
	}
}

func propagateLevel(ctx *tierContext, rem types.Remoteness, tieOnly bool) {
	for j := 0; j <= len(ctx.children); j++ {
		lo := ctx.fr.Divider(rem, j)
		hi := ctx.fr.Divider(rem, j+1)
		for i := lo; i < hi; i++ {
			pos := ctx.fr.Get(rem, int(i))
			val := childValue(ctx, j, pos)
			if (val == types.Tie) != tieOnly {
				continue
			}
			child := sourceTierPosition(ctx, j, pos)
			for _, q := range parentsOf(ctx, child) {
				propagate(ctx, q, val, rem)
			}
		}
	}
}

// sweepDraws is the final step of spec §4.7 Phase C: any legal
// position never reached by propagation is Draw with no finite
// remoteness. Illegal positions are left (Undecided, 0), per Phase B's
// rule for them.
func sweepDraws(ctx *tierContext) {
	for pos := types.Position(0); int64(pos) < ctx.size; pos++ {
		tp := types.TierPosition{Tier: ctx.tier, Position: pos}
		if !ctx.game.IsLegalPosition(tp) {
			continue
		}
		if !ctx.mem.IsLabeled(pos) {
			ctx.mem.SetValue(pos, types.Draw, 0)
		}
	}
}

// solveTier runs the full per-tier retrograde solve of spec §4.7
// against an already-created solving tier (CreateSolvingTier must have
// been called). The loopy and loop-free cases share this one
// algorithm: a loop-free tier simply never produces a "from current
// tier" frontier entry that any parent consumes, so propagation
// degenerates into the single forward pass the spec describes without
// needing a separate code path.
func solveTier(g game.Game, mem *database.MemoryTier, disk *database.Disk, tier types.Tier, children []types.Tier, size int64) error {
	ctx, err := newTierContext(g, mem, disk, tier, children, size)
	if err != nil {
		return err
	}
	runPrimitiveScan(ctx)
	runPropagation(ctx)
	sweepDraws(ctx)
	return nil
}
