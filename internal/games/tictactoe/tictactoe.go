// Package tictactoe is the reference Game API implementation used by
// spec.md §8's end-to-end scenario #1 and by the generic hash round
// trip of scenario #4 (the exact piece alphabet '-'/O/X those
// scenarios name). It exists to exercise internal/game, internal/hash,
// and internal/tiersolver with a game small enough to reason about by
// hand; it ships no features of its own, in the same spirit as the
// teacher's internal/book fixtures.
package tictactoe

import (
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/hash"
	"github.com/gamesmanone/core/internal/types"
)

const boardSize = 9

// winLines are the eight index triples that win the game.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// symmetries are the eight elements of the dihedral group acting on a
// 3x3 grid (identity, three rotations, and their four reflections),
// used by CanonicalPosition to collapse a board to the image with the
// smallest hash.
var symmetries = [8][9]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8}, // identity
	{6, 3, 0, 7, 4, 1, 8, 5, 2}, // rotate 90
	{8, 7, 6, 5, 4, 3, 2, 1, 0}, // rotate 180
	{2, 5, 8, 1, 4, 7, 0, 3, 6}, // rotate 270
	{2, 1, 0, 5, 4, 3, 8, 7, 6}, // flip horizontal
	{6, 7, 8, 3, 4, 5, 0, 1, 2}, // flip vertical
	{0, 3, 6, 1, 4, 7, 2, 5, 8}, // transpose
	{8, 5, 2, 7, 4, 1, 6, 3, 0}, // anti-transpose
}

// Game implements game.Game and game.PositionSymmetric for
// tic-tac-toe, hashed with internal/hash.Context over the exact
// {'-', 'O', 'X'} alphabet spec.md §8 scenario #4 specifies.
type Game struct {
	ctx *hash.Context
}

// New builds the tic-tac-toe Game, initializing its hash context.
// Initialization failure here is a programmer error (the piece
// configuration is a compile-time constant), so it panics rather than
// threading an error through every caller — the same posture the
// source takes for its own fixed, compile-time game tables.
func New() *Game {
	ctx := hash.NewContext()
	pieces := []hash.PieceSpec{
		{Char: '-', Min: 0, Max: 9},
		{Char: 'O', Min: 0, Max: 4},
		{Char: 'X', Min: 0, Max: 5},
	}
	err := ctx.Init(boardSize, hash.TwoPlayer, pieces, nil, func(counts []int) bool {
		os, xs := counts[1], counts[2]
		return xs == os || xs == os+1
	})
	if err != nil {
		panic(err)
	}
	return &Game{ctx: ctx}
}

func (g *Game) Name() string { return "tictactoe" }

func (g *Game) InitialTier() types.Tier { return 0 }

func (g *Game) InitialPosition() types.TierPosition {
	empty := []byte("---------")
	h, err := g.ctx.Hash(empty, 1)
	if err != nil {
		panic(err)
	}
	return types.TierPosition{Tier: 0, Position: types.Position(h)}
}

func (g *Game) TierSize(t types.Tier) int64 { return g.ctx.NumPositions() }

func (g *Game) ChildTiers(t types.Tier) []types.Tier { return nil }

func countMarks(board []byte) (os, xs int) {
	for _, c := range board {
		switch c {
		case 'O':
			os++
		case 'X':
			xs++
		}
	}
	return
}

// turnFor returns 1 (X to move) when the counts are level, 2 (O to
// move) when X leads by one — the only two states the context's
// validity function admits.
func turnFor(os, xs int) int {
	if xs == os {
		return 1
	}
	return 2
}

func (g *Game) unhash(tp types.TierPosition) ([]byte, int) {
	board, turn, err := g.ctx.Unhash(int64(tp.Position))
	if err != nil {
		panic(err)
	}
	return board, turn
}

func hasThree(board []byte, mark byte) bool {
	for _, line := range winLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}
	return false
}

func isFull(board []byte) bool {
	for _, c := range board {
		if c == '-' {
			return false
		}
	}
	return true
}

// IsLegalPosition rejects board+count combinations the context's
// piece-validity check admits but that no sequence of legal moves
// produces: both marks simultaneously completing a line, or a
// completed line with more marks placed after the game should have
// already ended.
func (g *Game) IsLegalPosition(tp types.TierPosition) bool {
	board, _ := g.unhash(tp)
	os, xs := countMarks(board)
	xWin, oWin := hasThree(board, 'X'), hasThree(board, 'O')
	if xWin && oWin {
		return false
	}
	if xWin && xs != os+1 {
		return false
	}
	if oWin && xs != os {
		return false
	}
	return true
}

// Primitive returns Lose whenever the player to move has already lost
// (the opponent's winning line was completed on the previous move —
// tic-tac-toe has no position where the side to move has already
// won), Tie on a full, undecided board, and Undecided otherwise.
func (g *Game) Primitive(tp types.TierPosition) types.Value {
	board, _ := g.unhash(tp)
	if hasThree(board, 'X') || hasThree(board, 'O') {
		return types.Lose
	}
	if isFull(board) {
		return types.Tie
	}
	return types.Undecided
}

// GenerateMoves lists one move per empty cell, or none once the game
// has ended — including the case from spec.md §8 scenario #2's
// sibling concern that a generator must never offer a move from a
// terminal position.
func (g *Game) GenerateMoves(tp types.TierPosition) []types.Move {
	board, turn := g.unhash(tp)
	if hasThree(board, 'X') || hasThree(board, 'O') || isFull(board) {
		return nil
	}
	_ = turn
	moves := make([]types.Move, 0, boardSize)
	for i, c := range board {
		if c == '-' {
			moves = append(moves, types.Move(i))
		}
	}
	return moves
}

func (g *Game) DoMove(tp types.TierPosition, m types.Move) types.TierPosition {
	board, turn := g.unhash(tp)
	mark := byte('X')
	if turn == 2 {
		mark = 'O'
	}
	next := append([]byte{}, board...)
	next[m] = mark

	os, xs := countMarks(next)
	h, err := g.ctx.Hash(next, turnFor(os, xs))
	if err != nil {
		panic(err)
	}
	return types.TierPosition{Tier: tp.Tier, Position: types.Position(h)}
}

// CanonicalPosition returns the numerically smallest hash among
// tp's eight dihedral-symmetric images (spec.md §4.3's
// PositionSymmetric), the reduction spec.md §8 scenario #1's 765
// canonical-position count relies on.
func (g *Game) CanonicalPosition(tp types.TierPosition) types.TierPosition {
	board, turn := g.unhash(tp)
	best := int64(tp.Position)
	for _, perm := range symmetries {
		transformed := make([]byte, boardSize)
		for i, src := range perm {
			transformed[i] = board[src]
		}
		h, err := g.ctx.Hash(transformed, turn)
		if err != nil {
			continue
		}
		if h < best {
			best = h
		}
	}
	return types.TierPosition{Tier: tp.Tier, Position: types.Position(best)}
}

// AutoGUIPosition renders tp as the nine-character board string
// followed by the side to move ('1' for X, '2' for O), the format a
// GamesmanClassic-style web front-end expects (spec §6).
func (g *Game) AutoGUIPosition(tp types.TierPosition) string {
	board, turn := g.unhash(tp)
	return string(board) + string(rune('0'+turn))
}

// AutoGUIMove encodes a move as its destination cell index; placement
// moves have no origin cell, so from is empty.
func (g *Game) AutoGUIMove(tp types.TierPosition, m types.Move) (move, from, to string) {
	cell := string(rune('0' + int(m)))
	return "A_" + cell, "", cell
}

var _ game.Game = (*Game)(nil)
var _ game.PositionSymmetric = (*Game)(nil)
var _ game.AutoGUIFormatter = (*Game)(nil)
