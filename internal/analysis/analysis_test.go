package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/types"
)

func TestObserveAccumulatesTotalsAndHistograms(t *testing.T) {
	s := New()
	s.Observe(0, 0, types.Record{Value: types.Win, Remoteness: 3}, true, 2)
	s.Observe(0, 1, types.Record{Value: types.Win, Remoteness: 5}, true, 4)
	s.Observe(0, 2, types.Record{Value: types.Lose, Remoteness: 2}, true, 1)
	s.Observe(0, 3, types.Record{Value: types.Draw, Remoteness: 0}, false, 0)

	assert.EqualValues(t, 2, s.TotalWin)
	assert.EqualValues(t, 1, s.TotalLose)
	assert.EqualValues(t, 1, s.TotalDraw)
	assert.EqualValues(t, 3, s.CanonicalPositions)
	assert.EqualValues(t, 7, s.TotalMoves)
	assert.EqualValues(t, 1, s.WinRemotenessHistogram[3])
	assert.EqualValues(t, 1, s.WinRemotenessHistogram[5])
}

func TestObserveTracksLongestRemotenessAndMostMoves(t *testing.T) {
	s := New()
	s.Observe(0, 0, types.Record{Value: types.Win, Remoteness: 3}, true, 2)
	s.Observe(0, 1, types.Record{Value: types.Win, Remoteness: 9}, true, 6)
	s.Observe(0, 2, types.Record{Value: types.Win, Remoteness: 1}, true, 1)

	assert.Equal(t, types.Position(1), s.LongestRemoteness[types.Win].Position)
	assert.EqualValues(t, 9, s.LongestRemoteness[types.Win].Remoteness)
	assert.Equal(t, types.Position(1), s.MostMoves.Position)
	assert.Equal(t, 6, s.MostMovesCount)
}

func TestObserveKeepsFirstExamplePerValueRemoteness(t *testing.T) {
	s := New()
	s.Observe(0, 5, types.Record{Value: types.Tie, Remoteness: 2}, true, 1)
	s.Observe(0, 9, types.Record{Value: types.Tie, Remoteness: 2}, true, 1)

	assert.Equal(t, types.Position(5), s.FirstExample[types.Tie][2].Position)
}

func TestRatiosSumToOne(t *testing.T) {
	s := New()
	s.Observe(0, 0, types.Record{Value: types.Win}, true, 1)
	s.Observe(0, 1, types.Record{Value: types.Lose}, true, 1)
	s.Observe(0, 2, types.Record{Value: types.Tie}, true, 1)
	s.Observe(0, 3, types.Record{Value: types.Draw}, true, 1)

	sum := s.WinRatio() + s.LoseRatio() + s.TieRatio() + s.DrawRatio()
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestMergeAddsTotalsAndTakesMaxExamples(t *testing.T) {
	a := New()
	a.Observe(0, 0, types.Record{Value: types.Win, Remoteness: 2}, true, 3)
	b := New()
	b.Observe(1, 0, types.Record{Value: types.Win, Remoteness: 8}, true, 1)
	b.Observe(1, 1, types.Record{Value: types.Lose, Remoteness: 1}, true, 1)

	a.Merge(b)
	assert.EqualValues(t, 2, a.TotalWin)
	assert.EqualValues(t, 1, a.TotalLose)
	assert.EqualValues(t, 8, a.LongestRemoteness[types.Win].Remoteness)
}

func TestSummaryRendersTable(t *testing.T) {
	s := New()
	s.Observe(0, 0, types.Record{Value: types.Win, Remoteness: 1}, true, 2)
	out := s.Summary()
	assert.True(t, strings.Contains(out, "Win"))
	assert.True(t, strings.Contains(out, "Canonical positions"))
}

func TestAnalyzeTiersSkipsMissingTiers(t *testing.T) {
	disk, err := database.Open(t.TempDir(), "probe", database.NoCompression{})
	require.NoError(t, err)
	defer disk.Close()

	records := []types.Record{
		{Value: types.Win, Remoteness: 1},
		{Value: types.Lose, Remoteness: 0},
	}
	require.NoError(t, disk.FlushTier(types.Tier(0), records, false))

	g := &fakeNoMoveGame{}
	stats, err := AnalyzeTiers(g, disk, []types.Tier{0, 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalWin)
	assert.EqualValues(t, 1, stats.TotalLose)
}

type fakeNoMoveGame struct{}

func (g *fakeNoMoveGame) Name() string                                  { return "fake" }
func (g *fakeNoMoveGame) InitialTier() types.Tier                       { return 0 }
func (g *fakeNoMoveGame) InitialPosition() types.TierPosition           { return types.TierPosition{} }
func (g *fakeNoMoveGame) TierSize(t types.Tier) int64                   { return 2 }
func (g *fakeNoMoveGame) ChildTiers(t types.Tier) []types.Tier          { return nil }
func (g *fakeNoMoveGame) GenerateMoves(tp types.TierPosition) []types.Move {
	return nil
}
func (g *fakeNoMoveGame) DoMove(tp types.TierPosition, m types.Move) types.TierPosition {
	return tp
}
func (g *fakeNoMoveGame) Primitive(tp types.TierPosition) types.Value { return types.Undecided }
func (g *fakeNoMoveGame) IsLegalPosition(tp types.TierPosition) bool  { return true }
