package main

import (
	"strconv"

	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/types"
)

// moveResult describes one legal move out of a queried position: the
// move itself (spec.md §6 "move"/"autoguiMove"/"from"/"to") and the
// resulting child position's solved value, so a front-end can render
// an outgoing edge without a second query.
type moveResult struct {
	Move            string `json:"move"`
	AutoGUIMove     string `json:"autoguiMove"`
	From            string `json:"from,omitempty"`
	To              string `json:"to,omitempty"`
	Position        string `json:"position"`
	AutoGUIPosition string `json:"autoguiPosition"`
	PositionValue   string `json:"positionValue"`
	Remoteness      int    `json:"remoteness"`
}

// queryResponse is the JSON shape spec.md §6 names for the `query`
// subcommand: "fields position, autoguiPosition, move, autoguiMove,
// from, to, full, positionValue, remoteness, moves, partMoves". The
// per-move fields (move/autoguiMove/from/to) describe an edge, not the
// queried position itself, so they live on each entry of moves rather
// than at the top level; partMoves is reserved for games whose moves
// have sub-parts (none of this build's registered games do, so it is
// always empty) — see DESIGN.md's Open Question note on this reading.
type queryResponse struct {
	Position        string       `json:"position"`
	AutoGUIPosition string       `json:"autoguiPosition"`
	Full            bool         `json:"full"`
	PositionValue   string       `json:"positionValue"`
	Remoteness      int          `json:"remoteness"`
	Moves           []moveResult `json:"moves"`
	PartMoves       []string     `json:"partMoves"`
}

// positionString renders tp the way the CLI accepts it back on the
// command line.
func positionString(tp types.TierPosition) string {
	return tp.String()
}

func autoguiPosition(g game.Game, tp types.TierPosition) string {
	if f, ok := g.(game.AutoGUIFormatter); ok {
		return f.AutoGUIPosition(tp)
	}
	return positionString(tp)
}

func autoguiMove(g game.Game, tp types.TierPosition, m types.Move) (move, from, to string) {
	if f, ok := g.(game.AutoGUIFormatter); ok {
		return f.AutoGUIMove(tp, m)
	}
	return positionString(types.TierPosition{Tier: tp.Tier, Position: types.Position(m)}), "", ""
}

// valueJSON maps types.Value to spec.md §6's positionValue enum, which
// spells the zero value "unsolved" rather than types.Value's own
// "undecided" — the CLI's external vocabulary differs slightly from
// the internal one by design, the same way the source's own AutoGUI
// JSON layer never just serializes its internal enums verbatim.
func valueJSON(v types.Value) string {
	if v == types.Undecided {
		return "unsolved"
	}
	return v.String()
}

// buildQueryResponse answers spec.md §6's `query <game> <variant>
// <position>` by reading tp's own record plus one record per legal
// move out of it.
func buildQueryResponse(g game.Game, probe database.Probe, tp types.TierPosition) queryResponse {
	resp := queryResponse{
		Position:        positionString(tp),
		AutoGUIPosition: autoguiPosition(g, tp),
		Full:            true,
		PositionValue:   valueJSON(probe.Value(tp)),
		Remoteness:      int(probe.Remoteness(tp)),
		PartMoves:       []string{},
	}

	moves := g.GenerateMoves(tp)
	resp.Moves = make([]moveResult, 0, len(moves))
	for _, m := range moves {
		child := g.DoMove(tp, m)
		autoguiMv, from, to := autoguiMove(g, tp, m)
		resp.Moves = append(resp.Moves, moveResult{
			Move:            strconv.FormatInt(int64(m), 10),
			AutoGUIMove:     autoguiMv,
			From:            from,
			To:              to,
			Position:        positionString(child),
			AutoGUIPosition: autoguiPosition(g, child),
			PositionValue:   valueJSON(probe.Value(child)),
			Remoteness:      int(probe.Remoteness(child)),
		})
	}
	return resp
}
