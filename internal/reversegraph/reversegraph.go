// Package reversegraph builds the inverted position graph a tier solve
// falls back on when a game does not implement
// game.ParentGenerator (spec §4.5). Concurrency pattern (one lock per
// destination slot, lock-free reads after build) is grounded on the
// teacher's TranspositionTable, whose post-build read path needs no
// locking once entries stop changing shape, combined with the
// per-bucket locking idea in internal/engine/pawnhash.go's pawn hash
// table.
package reversegraph

import (
	"sync"

	"github.com/gamesmanone/core/internal/types"
)

// Graph maps (tier, position) -> the positions within the currently
// solving tier that can reach it in one move. Storage is one flat
// array of parent slices indexed by offsetMap[tier] + position (spec
// §4.5 "Layout").
type Graph struct {
	offsets map[types.Tier]int64
	slots   [][]types.Position
	locks   []sync.Mutex
	built   bool
}

// New allocates a Graph for a solving tier plus its child tiers.
// tierSizes maps each tier (the current tier and every child tier) to
// its N(tier); insertion order of tiers determines slot offsets, each
// tier occupying a contiguous range (spec §8 scenario #6).
func New(tiers []types.Tier, tierSizes map[types.Tier]int64) *Graph {
	g := &Graph{offsets: make(map[types.Tier]int64, len(tiers))}
	var total int64
	for _, t := range tiers {
		g.offsets[t] = total
		total += tierSizes[t]
	}
	g.slots = make([][]types.Position, total)
	g.locks = make([]sync.Mutex, total)
	return g
}

// TotalSlots returns N(current) + sum(N(child_i)), the flat array's
// length.
func (g *Graph) TotalSlots() int64 {
	return int64(len(g.slots))
}

// Offset returns the base index reserved for tier t.
func (g *Graph) Offset(t types.Tier) (int64, bool) {
	off, ok := g.offsets[t]
	return off, ok
}

func (g *Graph) slotIndex(tp types.TierPosition) (int64, bool) {
	off, ok := g.offsets[tp.Tier]
	if !ok {
		return 0, false
	}
	return off + int64(tp.Position), true
}

// AddEdge records that parent (inside the solving tier) can reach
// child in one move. Safe for concurrent callers: each destination
// slot is protected by its own lock, acquired, appended to, and
// released (spec §4.5 "Concurrency").
func (g *Graph) AddEdge(child types.TierPosition, parent types.Position) {
	idx, ok := g.slotIndex(child)
	if !ok {
		return
	}
	g.locks[idx].Lock()
	g.slots[idx] = append(g.slots[idx], parent)
	g.locks[idx].Unlock()
}

// MarkBuilt signals that the build phase is complete; Parents reads
// performed after this point take no lock (spec §5 "readers after the
// build phase do not lock").
func (g *Graph) MarkBuilt() {
	g.built = true
}

// Parents returns the recorded parents of child. Only safe to call
// after MarkBuilt.
func (g *Graph) Parents(child types.TierPosition) []types.Position {
	idx, ok := g.slotIndex(child)
	if !ok {
		return nil
	}
	return g.slots[idx]
}

// Build populates the graph for a solving tier by enumerating every
// legal position in the current tier, applying generateMoves and doMove
// to each, and recording one edge per distinct (parent, child) pair.
// Child-tier positions are not enumerated; they appear only as edge
// targets. It is the fallback path used when
// the game does not implement game.ParentGenerator (spec §4.5 "Used
// when"). Moves are deduplicated by the child they transpose into
// before any edge is recorded: two distinct moves reaching the same
// child must add exactly one parent entry, matching
// tiersolver.numCanonicalChildren's count of distinct children on the
// other side of this same fallback.
func Build(g *Graph, currentTier types.Tier, currentSize int64, generateMoves func(types.TierPosition) []types.Move, doMove func(types.TierPosition, types.Move) types.TierPosition, isLegal func(types.TierPosition) bool) {
	for pos := types.Position(0); int64(pos) < currentSize; pos++ {
		tp := types.TierPosition{Tier: currentTier, Position: pos}
		if !isLegal(tp) {
			continue
		}
		seen := make(map[types.TierPosition]struct{})
		for _, m := range generateMoves(tp) {
			child := doMove(tp, m)
			if _, dup := seen[child]; dup {
				continue
			}
			seen[child] = struct{}{}
			g.AddEdge(child, pos)
		}
	}
	g.MarkBuilt()
}
