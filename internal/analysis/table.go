package analysis

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gamesmanone/core/internal/types"
)

// Summary renders the printable summary table spec.md §4.8 calls for.
func (s *Stats) Summary() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Outcome", "Count", "Ratio", "Longest remoteness example"})
	t.AppendRow(outcomeRow("Win", s.TotalWin, s.WinRatio(), s.LongestRemoteness[types.Win]))
	t.AppendRow(outcomeRow("Lose", s.TotalLose, s.LoseRatio(), s.LongestRemoteness[types.Lose]))
	t.AppendRow(outcomeRow("Tie", s.TotalTie, s.TieRatio(), s.LongestRemoteness[types.Tie]))
	t.AppendRow(outcomeRow("Draw", s.TotalDraw, s.DrawRatio(), Example{}))
	t.AppendSeparator()
	t.AppendRow(table.Row{"Canonical positions", s.CanonicalPositions, "", ""})
	t.AppendRow(table.Row{"Total moves", s.TotalMoves, "", ""})
	t.AppendRow(table.Row{
		"Most moves from one position", s.MostMovesCount, "",
		formatExample(s.MostMoves),
	})
	return t.Render()
}

func outcomeRow(name string, count int64, ratio float64, ex Example) table.Row {
	return table.Row{name, count, fmt.Sprintf("%.4f", ratio), formatExample(ex)}
}

func formatExample(ex Example) string {
	if ex == (Example{}) {
		return "-"
	}
	return fmt.Sprintf("tier=%d pos=%d rem=%d", ex.Tier, ex.Position, ex.Remoteness)
}

// WriteSummary prints the summary table (the text Summary returns) to w.
func (s *Stats) WriteSummary(w *os.File) {
	fmt.Fprintln(w, s.Summary())
}

// Histogram renders one value's remoteness histogram as sorted
// (remoteness, count) rows, for callers that want the raw
// distribution rather than the rolled-up summary.
func (s *Stats) Histogram(v types.Value) [][2]int64 {
	var h map[types.Remoteness]int64
	switch v {
	case types.Win:
		h = s.WinRemotenessHistogram
	case types.Lose:
		h = s.LoseRemotenessHistogram
	case types.Tie:
		h = s.TieRemotenessHistogram
	default:
		return nil
	}
	rems := make([]types.Remoteness, 0, len(h))
	for r := range h {
		rems = append(rems, r)
	}
	sort.Slice(rems, func(i, j int) bool { return rems[i] < rems[j] })
	out := make([][2]int64, len(rems))
	for i, r := range rems {
		out[i] = [2]int64{int64(r), h[r]}
	}
	return out
}
