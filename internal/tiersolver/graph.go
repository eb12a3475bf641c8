// Package tiersolver implements the tier-graph discovery, scheduling,
// and per-tier retrograde BFS that are the solver's hard part (spec
// §4.7). Concurrency model is grounded directly on the teacher's
// Lazy-SMP worker pool: NewEngine's workers []*Worker plus a shared
// atomic.Bool stop flag (internal/engine/engine.go, worker.go) becomes
// this package's worker pool and cancellation flag, generalized from
// "N workers searching the same position" to "N workers partitioning
// one tier's position range."
package tiersolver

import (
	"github.com/gamesmanone/core/internal/containers"
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/types"
)

// TierGraph is the canonical tier DAG discovered by BFS from the
// game's initial tier (spec §4.7 step 1), plus its reverse-topological
// solve order (step 2).
type TierGraph struct {
	// Order lists canonical tiers children-before-parents.
	Order []types.Tier
	// Children maps a canonical tier to its (already-canonicalized,
	// deduplicated) child tiers.
	Children map[types.Tier][]types.Tier
	// Canonical maps any tier discovered during the BFS to its
	// canonical representative (identity if the game has no tier
	// symmetry, or is itself the canonical tier).
	Canonical map[types.Tier]types.Tier
}

func canonicalOf(g game.Game, t types.Tier) types.Tier {
	if sym, ok := g.(game.TierSymmetric); ok {
		return sym.CanonicalTier(t)
	}
	return t
}

// Discover runs the BFS of spec §4.7 step 1 ("Starting from
// initial_tier(), BFS over child_tiers to enumerate the full tier
// graph. If the game declares tier symmetry, collapse each tier to its
// canonical representative"), then computes in-degrees and a
// reverse-topological order (step 2).
func Discover(g game.Game) *TierGraph {
	start := canonicalOf(g, g.InitialTier())

	children := make(map[types.Tier][]types.Tier)
	canonical := map[types.Tier]types.Tier{start: start}

	queue := containers.NewQueue(1)
	seen := map[types.Tier]bool{start: true}
	queue.Push(int64(start))

	for queue.Len() > 0 {
		v, _ := queue.Pop()
		t := types.Tier(v)
		if _, done := children[t]; done {
			continue
		}
		raw := g.ChildTiers(t)
		if len(raw) > game.MaxChildTiers {
			raw = raw[:game.MaxChildTiers]
		}
		var kids []types.Tier
		dedup := make(map[types.Tier]bool, len(raw))
		for _, c := range raw {
			cc := canonicalOf(g, c)
			canonical[c] = cc
			canonical[cc] = cc
			if dedup[cc] || cc == t {
				continue
			}
			dedup[cc] = true
			kids = append(kids, cc)
		}
		children[t] = kids
		for _, c := range kids {
			if !seen[c] {
				seen[c] = true
				queue.Push(int64(c))
			}
		}
	}

	order := reverseTopological(children)
	return &TierGraph{Order: order, Children: children, Canonical: canonical}
}

// reverseTopological produces a children-before-parents order via
// Kahn's algorithm over the in-degree graph (spec §4.7 step 2:
// "Compute in-degrees in the canonical tier graph; produce a
// reverse-topological order").
func reverseTopological(children map[types.Tier][]types.Tier) []types.Tier {
	inDegree := make(map[types.Tier]int, len(children))
	for t := range children {
		if _, ok := inDegree[t]; !ok {
			inDegree[t] = 0
		}
		for _, c := range children[t] {
			inDegree[c]++
		}
	}

	// Tiers with in-degree 0 in the *parent* direction are the leaves
	// (no children of their own to wait on): solve them first.
	remainingChildren := make(map[types.Tier]int, len(children))
	for t, kids := range children {
		remainingChildren[t] = len(kids)
	}

	var ready []types.Tier
	for t, n := range remainingChildren {
		if n == 0 {
			ready = append(ready, t)
		}
	}

	// parents[c] lists tiers whose child list contains c, so we can
	// decrement their remaining-children count as c finishes.
	parents := make(map[types.Tier][]types.Tier)
	for t, kids := range children {
		for _, c := range kids {
			parents[c] = append(parents[c], t)
		}
	}

	var order []types.Tier
	visited := make(map[types.Tier]bool, len(children))
	for len(ready) > 0 {
		t := ready[0]
		ready = ready[1:]
		if visited[t] {
			continue
		}
		visited[t] = true
		order = append(order, t)
		for _, p := range parents[t] {
			remainingChildren[p]--
			if remainingChildren[p] == 0 {
				ready = append(ready, p)
			}
		}
	}
	return order
}
