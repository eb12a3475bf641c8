package tiersolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesmanone/core/internal/types"
)

// chainGame is a minimal game.Game whose tier graph is a straight chain
// 2 -> 1 -> 0, used to exercise BFS discovery and reverse-topological
// ordering without needing a full reference game.
type chainGame struct {
	children map[types.Tier][]types.Tier
}

func newChainGame() *chainGame {
	return &chainGame{children: map[types.Tier][]types.Tier{
		2: {1},
		1: {0},
		0: nil,
	}}
}

func (c *chainGame) Name() string                     { return "chain" }
func (c *chainGame) InitialTier() types.Tier           { return 2 }
func (c *chainGame) InitialPosition() types.TierPosition {
	return types.TierPosition{Tier: 2, Position: 0}
}
func (c *chainGame) TierSize(t types.Tier) int64 { return 1 }
func (c *chainGame) ChildTiers(t types.Tier) []types.Tier {
	return c.children[t]
}
func (c *chainGame) GenerateMoves(tp types.TierPosition) []types.Move { return nil }
func (c *chainGame) DoMove(tp types.TierPosition, m types.Move) types.TierPosition {
	return tp
}
func (c *chainGame) Primitive(tp types.TierPosition) types.Value { return types.Undecided }
func (c *chainGame) IsLegalPosition(tp types.TierPosition) bool  { return true }

func TestDiscoverOrdersChildrenBeforeParents(t *testing.T) {
	g := Discover(newChainGame())
	require.Len(t, g.Order, 3)

	pos := make(map[types.Tier]int, len(g.Order))
	for i, t := range g.Order {
		pos[t] = i
	}
	assert.Less(t, pos[types.Tier(0)], pos[types.Tier(1)])
	assert.Less(t, pos[types.Tier(1)], pos[types.Tier(2)])
}

func TestDiscoverRecordsChildren(t *testing.T) {
	g := Discover(newChainGame())
	assert.Equal(t, []types.Tier{1}, g.Children[types.Tier(2)])
	assert.Equal(t, []types.Tier{0}, g.Children[types.Tier(1)])
	assert.Empty(t, g.Children[types.Tier(0)])
}

// diamondGame has tier 3 reaching tier 0 via both tier 1 and tier 2, to
// exercise dedup and the diamond-shaped reverse-topological order.
type diamondGame struct{ chainGame }

func newDiamondGame() *diamondGame {
	d := &diamondGame{}
	d.children = map[types.Tier][]types.Tier{
		3: {1, 2},
		1: {0},
		2: {0},
		0: nil,
	}
	return d
}
func (d *diamondGame) InitialTier() types.Tier { return 3 }

func TestDiscoverHandlesDiamondSharedChild(t *testing.T) {
	g := Discover(newDiamondGame())
	require.Len(t, g.Order, 4)

	pos := make(map[types.Tier]int, len(g.Order))
	for i, t := range g.Order {
		pos[t] = i
	}
	assert.Less(t, pos[types.Tier(0)], pos[types.Tier(1)])
	assert.Less(t, pos[types.Tier(0)], pos[types.Tier(2)])
	assert.Less(t, pos[types.Tier(1)], pos[types.Tier(3)])
	assert.Less(t, pos[types.Tier(2)], pos[types.Tier(3)])
}

// symmetricGame collapses tier 5 onto tier 1's canonical representative,
// to exercise the TierSymmetric path.
type symmetricGame struct{ chainGame }

func (s *symmetricGame) CanonicalTier(t types.Tier) types.Tier {
	if t == 5 {
		return 1
	}
	return t
}
func (s *symmetricGame) PositionInSymmetricTier(tp types.TierPosition, target types.Tier) types.TierPosition {
	return types.TierPosition{Tier: target, Position: tp.Position}
}

func newSymmetricGame() *symmetricGame {
	g := &symmetricGame{}
	g.children = map[types.Tier][]types.Tier{
		2: {5}, // 5 collapses onto canonical tier 1
		1: {0},
		0: nil,
	}
	return g
}
func (s *symmetricGame) InitialTier() types.Tier { return 2 }

func TestDiscoverCollapsesSymmetricTiers(t *testing.T) {
	g := Discover(newSymmetricGame())
	assert.Equal(t, []types.Tier{1}, g.Children[types.Tier(2)])
	assert.Equal(t, types.Tier(1), g.Canonical[types.Tier(5)])
}
