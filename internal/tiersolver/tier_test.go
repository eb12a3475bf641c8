package tiersolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/types"
)

// wldGame is a single-tier synthetic game whose every transition is
// spelled out explicitly, used to exercise the Win/Lose/Tie/Draw
// derivation rules of spec §8's "Tier solver correctness" property
// list without needing a full reference game.
type wldGame struct {
	moves      map[int][]int
	primitives map[int]types.Value
	illegal    map[int]bool
	size       int64
}

func (g *wldGame) Name() string           { return "wld" }
func (g *wldGame) InitialTier() types.Tier { return 0 }
func (g *wldGame) InitialPosition() types.TierPosition {
	return types.TierPosition{Tier: 0, Position: 0}
}
func (g *wldGame) TierSize(t types.Tier) int64            { return g.size }
func (g *wldGame) ChildTiers(t types.Tier) []types.Tier    { return nil }
func (g *wldGame) GenerateMoves(tp types.TierPosition) []types.Move {
	targets := g.moves[int(tp.Position)]
	out := make([]types.Move, len(targets))
	for i, t := range targets {
		out[i] = types.Move(t)
	}
	return out
}
func (g *wldGame) DoMove(tp types.TierPosition, m types.Move) types.TierPosition {
	return types.TierPosition{Tier: tp.Tier, Position: types.Position(m)}
}
func (g *wldGame) Primitive(tp types.TierPosition) types.Value {
	if v, ok := g.primitives[int(tp.Position)]; ok {
		return v
	}
	return types.Undecided
}
func (g *wldGame) IsLegalPosition(tp types.TierPosition) bool {
	return !g.illegal[int(tp.Position)]
}

// buildWLDGame wires up the small graph documented inline below:
//
//	5: primitive Lose
//	4: -> 5                       (Win, rem 1)
//	3: -> 4                       (Lose, rem 2: only move leads to Win)
//	2: -> 3, 5                    (Win, rem 1: a move reaches Lose pos 5)
//	1: -> 2                       (Lose, rem 2: only move leads to Win)
//	0: -> 1, 4                    (Win, rem 3: move to Lose pos 1, discovered at level 2)
//	7: primitive Tie
//	6: -> 7                       (Tie, rem 1)
//	8: -> 8                       (never primitive: Draw)
//	9: illegal
func buildWLDGame() *wldGame {
	return &wldGame{
		moves: map[int][]int{
			4: {5},
			3: {4},
			2: {3, 5},
			1: {2},
			0: {1, 4},
			6: {7},
			8: {8},
		},
		primitives: map[int]types.Value{
			5: types.Lose,
			7: types.Tie,
		},
		illegal: map[int]bool{9: true},
		size:    10,
	}
}

func solveWLDGame(t *testing.T) *database.MemoryTier {
	t.Helper()
	disk, err := database.Open(t.TempDir(), "wld", database.NoCompression{})
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	g := buildWLDGame()
	mem := database.NewMemoryTier(types.Tier(0), g.size)
	require.NoError(t, solveTier(g, mem, disk, types.Tier(0), nil, g.size))
	return mem
}

func TestSolveTierPrimitives(t *testing.T) {
	mem := solveWLDGame(t)
	assert.Equal(t, types.Lose, mem.GetValue(5))
	assert.Equal(t, types.Remoteness(0), mem.GetRemoteness(5))
	assert.Equal(t, types.Tie, mem.GetValue(7))
	assert.Equal(t, types.Remoteness(0), mem.GetRemoteness(7))
}

func TestSolveTierWinLoseChain(t *testing.T) {
	mem := solveWLDGame(t)

	assert.Equal(t, types.Win, mem.GetValue(4))
	assert.Equal(t, types.Remoteness(1), mem.GetRemoteness(4))

	assert.Equal(t, types.Lose, mem.GetValue(3))
	assert.Equal(t, types.Remoteness(2), mem.GetRemoteness(3))

	assert.Equal(t, types.Win, mem.GetValue(2))
	assert.Equal(t, types.Remoteness(1), mem.GetRemoteness(2))

	assert.Equal(t, types.Lose, mem.GetValue(1))
	assert.Equal(t, types.Remoteness(2), mem.GetRemoteness(1))
}

func TestSolveTierWinUsesRemotenessOfLosingChild(t *testing.T) {
	mem := solveWLDGame(t)
	assert.Equal(t, types.Win, mem.GetValue(0))
	assert.Equal(t, types.Remoteness(3), mem.GetRemoteness(0))
}

func TestSolveTierTieChain(t *testing.T) {
	mem := solveWLDGame(t)
	assert.Equal(t, types.Tie, mem.GetValue(6))
	assert.Equal(t, types.Remoteness(1), mem.GetRemoteness(6))
}

func TestSolveTierUnreachablePrimitiveIsDraw(t *testing.T) {
	mem := solveWLDGame(t)
	assert.Equal(t, types.Draw, mem.GetValue(8))
	assert.Equal(t, types.Remoteness(0), mem.GetRemoteness(8))
}

func TestSolveTierIllegalPositionLeftUndecided(t *testing.T) {
	mem := solveWLDGame(t)
	assert.Equal(t, types.Undecided, mem.GetValue(9))
	assert.False(t, mem.IsLabeled(9))
}
