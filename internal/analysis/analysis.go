// Package analysis implements the post-solve aggregator of spec.md
// §4.8: per-tier statistics reduced element-wise (addition for
// counters/histograms, max for "most remote"/"most moves" examples)
// into a single process-wide summary.
package analysis

import (
	"github.com/gamesmanone/core/internal/types"
)

// Example records the first-seen position at a given (value,
// remoteness) pair, or the position achieving a "most X" superlative.
type Example struct {
	Tier     types.Tier
	Position types.Position
	Remoteness types.Remoteness
}

// Stats is the running aggregate spec.md §4.8 describes. Histograms
// are keyed by remoteness; a nil map entry reads as zero.
type Stats struct {
	WinRemotenessHistogram  map[types.Remoteness]int64
	LoseRemotenessHistogram map[types.Remoteness]int64
	TieRemotenessHistogram  map[types.Remoteness]int64

	TotalWin  int64
	TotalLose int64
	TotalTie  int64
	TotalDraw int64

	CanonicalPositions int64
	TotalMoves         int64

	// FirstExample[v][r] is the first position seen with value v and
	// remoteness r (draws are keyed at remoteness 0, per spec.md's
	// "no finite remoteness").
	FirstExample map[types.Value]map[types.Remoteness]Example

	// LongestRemoteness[v] is the position with the largest remoteness
	// seen for value v.
	LongestRemoteness map[types.Value]Example

	// MostMoves is the position with the largest out-degree seen.
	MostMoves      Example
	MostMovesCount int
}

// New returns a zeroed Stats ready for accumulation.
func New() *Stats {
	return &Stats{
		WinRemotenessHistogram:  make(map[types.Remoteness]int64),
		LoseRemotenessHistogram: make(map[types.Remoteness]int64),
		TieRemotenessHistogram:  make(map[types.Remoteness]int64),
		FirstExample:            make(map[types.Value]map[types.Remoteness]Example),
		LongestRemoteness:       make(map[types.Value]Example),
	}
}

func (s *Stats) histogramFor(v types.Value) map[types.Remoteness]int64 {
	switch v {
	case types.Win:
		return s.WinRemotenessHistogram
	case types.Lose:
		return s.LoseRemotenessHistogram
	case types.Tie:
		return s.TieRemotenessHistogram
	default:
		return nil
	}
}

func (s *Stats) recordTotal(v types.Value) {
	switch v {
	case types.Win:
		s.TotalWin++
	case types.Lose:
		s.TotalLose++
	case types.Tie:
		s.TotalTie++
	case types.Draw:
		s.TotalDraw++
	}
}

func (s *Stats) recordExample(v types.Value, ex Example) {
	if s.FirstExample[v] == nil {
		s.FirstExample[v] = make(map[types.Remoteness]Example)
	}
	if _, seen := s.FirstExample[v][ex.Remoteness]; !seen {
		s.FirstExample[v][ex.Remoteness] = ex
	}
	if cur, ok := s.LongestRemoteness[v]; !ok || ex.Remoteness > cur.Remoteness {
		s.LongestRemoteness[v] = ex
	}
}

// Observe folds one solved (tier, position) record into the
// aggregate, along with its out-degree (for the move-count total and
// the "most moves" example), per spec.md §4.8.
func (s *Stats) Observe(tier types.Tier, pos types.Position, rec types.Record, canonical bool, outDegree int) {
	s.recordTotal(rec.Value)
	if h := s.histogramFor(rec.Value); h != nil {
		h[rec.Remoteness]++
	}
	if canonical {
		s.CanonicalPositions++
	}
	s.TotalMoves += int64(outDegree)

	ex := Example{Tier: tier, Position: pos, Remoteness: rec.Remoteness}
	s.recordExample(rec.Value, ex)

	if outDegree > s.MostMovesCount {
		s.MostMovesCount = outDegree
		s.MostMoves = ex
	}
}

// WinRatio, LoseRatio, TieRatio, DrawRatio expose the fractions
// spec.md §4.8 calls for ("exposes ratios"). They return 0 if nothing
// has been observed yet.
func (s *Stats) total() int64 {
	return s.TotalWin + s.TotalLose + s.TotalTie + s.TotalDraw
}

func (s *Stats) WinRatio() float64  { return ratio(s.TotalWin, s.total()) }
func (s *Stats) LoseRatio() float64 { return ratio(s.TotalLose, s.total()) }
func (s *Stats) TieRatio() float64  { return ratio(s.TotalTie, s.total()) }
func (s *Stats) DrawRatio() float64 { return ratio(s.TotalDraw, s.total()) }

func ratio(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Merge folds other into s: totals, histograms, and move counts add;
// "most remote"/"most moves" examples take the max (spec.md §4.8
// "Aggregation across tiers is element-wise addition and max").
func (s *Stats) Merge(other *Stats) {
	s.TotalWin += other.TotalWin
	s.TotalLose += other.TotalLose
	s.TotalTie += other.TotalTie
	s.TotalDraw += other.TotalDraw
	s.CanonicalPositions += other.CanonicalPositions
	s.TotalMoves += other.TotalMoves

	addHistogram(s.WinRemotenessHistogram, other.WinRemotenessHistogram)
	addHistogram(s.LoseRemotenessHistogram, other.LoseRemotenessHistogram)
	addHistogram(s.TieRemotenessHistogram, other.TieRemotenessHistogram)

	for v, byRem := range other.FirstExample {
		for r, ex := range byRem {
			s.recordExample(v, ex)
			_ = r
		}
	}
	for v, ex := range other.LongestRemoteness {
		if cur, ok := s.LongestRemoteness[v]; !ok || ex.Remoteness > cur.Remoteness {
			s.LongestRemoteness[v] = ex
		}
	}
	if other.MostMovesCount > s.MostMovesCount {
		s.MostMovesCount = other.MostMovesCount
		s.MostMoves = other.MostMoves
	}
}

func addHistogram(dst, src map[types.Remoteness]int64) {
	for r, n := range src {
		dst[r] += n
	}
}
