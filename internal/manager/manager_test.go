package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesmanone/core/internal/tiersolver"
	"github.com/gamesmanone/core/internal/types"
)

// trivialGame is a one-tier, one-position game: the position is
// immediately primitive Lose, just enough to exercise Init/Solve/
// GetValue/Close without needing a full reference game.
type trivialGame struct{}

func (trivialGame) Name() string                     { return "trivial" }
func (trivialGame) InitialTier() types.Tier           { return 0 }
func (trivialGame) InitialPosition() types.TierPosition {
	return types.TierPosition{Tier: 0, Position: 0}
}
func (trivialGame) TierSize(t types.Tier) int64         { return 1 }
func (trivialGame) ChildTiers(t types.Tier) []types.Tier { return nil }
func (trivialGame) GenerateMoves(tp types.TierPosition) []types.Move { return nil }
func (trivialGame) DoMove(tp types.TierPosition, m types.Move) types.TierPosition {
	return tp
}
func (trivialGame) Primitive(tp types.TierPosition) types.Value { return types.Lose }
func (trivialGame) IsLegalPosition(tp types.TierPosition) bool  { return true }

func TestManagerRejectsUseBeforeInit(t *testing.T) {
	m := New()
	_, err := m.GetValue(types.TierPosition{})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestManagerInitSolveGetValueClose(t *testing.T) {
	m := New()
	dir := t.TempDir()
	require.NoError(t, m.Init(trivialGame{}, dir))
	defer m.Close()

	require.NoError(t, m.Solve(tiersolver.Options{}))

	v, err := m.GetValue(types.TierPosition{Tier: 0, Position: 0})
	require.NoError(t, err)
	assert.Equal(t, types.Lose, v)

	require.NoError(t, m.Close())

	_, err = m.GetValue(types.TierPosition{Tier: 0, Position: 0})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestManagerRejectsDoubleInit(t *testing.T) {
	m := New()
	dir := t.TempDir()
	require.NoError(t, m.Init(trivialGame{}, dir))
	defer m.Close()

	err := m.Init(trivialGame{}, dir)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestManagerAnalyzeAfterSolve(t *testing.T) {
	m := New()
	dir := t.TempDir()
	require.NoError(t, m.Init(trivialGame{}, dir))
	defer m.Close()

	require.NoError(t, m.Solve(tiersolver.Options{}))
	stats, err := m.Analyze()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalLose)
}
