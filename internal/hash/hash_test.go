package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ticTacToeContext builds the literal context from spec.md's end-to-end
// scenario: a 9-cell board over {'-', 'O', 'X'} with counts bounded so
// that blanks fill the rest and X never outnumbers O by more than one.
func ticTacToeContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext()
	pieces := []PieceSpec{
		{Char: '-', Min: 0, Max: 9},
		{Char: 'O', Min: 0, Max: 4},
		{Char: 'X', Min: 0, Max: 5},
	}
	err := ctx.Init(9, TwoPlayer, pieces, nil, func(counts []int) bool {
		blanks, os, xs := counts[0], counts[1], counts[2]
		_ = blanks
		return xs == os || xs == os+1
	})
	require.NoError(t, err)
	return ctx
}

func TestHashUnhashRoundTripAllBoards(t *testing.T) {
	ctx := ticTacToeContext(t)
	n := ctx.NumPositions()
	require.Greater(t, n, int64(0))

	for h := int64(0); h < n; h++ {
		board, turn, err := ctx.Unhash(h)
		require.NoError(t, err)
		require.Len(t, board, 9)
		require.Contains(t, []int{1, 2}, turn)

		back, err := ctx.Hash(board, turn)
		require.NoError(t, err)
		assert.Equal(t, h, back, "hash(unhash(%d)) must return %d, got board %q turn %d", h, h, string(board), turn)
	}
}

func TestHashInitialPosition(t *testing.T) {
	ctx := ticTacToeContext(t)
	board := []byte("---------")
	h, err := ctx.Hash(board, 1)
	require.NoError(t, err)

	back, turn, err := ctx.Unhash(h)
	require.NoError(t, err)
	assert.Equal(t, board, back)
	assert.Equal(t, 1, turn)
}

func TestHashUnknownPieceRejected(t *testing.T) {
	ctx := ticTacToeContext(t)
	_, err := ctx.Hash([]byte("--------?"), 1)
	assert.ErrorIs(t, err, ErrUnknownPiece)
}

func TestHashWrongLengthRejected(t *testing.T) {
	ctx := ticTacToeContext(t)
	_, err := ctx.Hash([]byte("short"), 1)
	assert.ErrorIs(t, err, ErrBadBoardLength)
}

func TestUnhashOutOfRangeRejected(t *testing.T) {
	ctx := ticTacToeContext(t)
	_, _, err := ctx.Unhash(-1)
	assert.ErrorIs(t, err, ErrHashOutOfRange)

	_, _, err = ctx.Unhash(ctx.NumPositions())
	assert.ErrorIs(t, err, ErrHashOutOfRange)
}

func TestHashInvalidConfigurationRejected(t *testing.T) {
	ctx := ticTacToeContext(t)
	// Nine X's: fails the xs == os || xs == os+1 validity predicate.
	_, err := ctx.Hash([]byte("XXXXXXXXX"), 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestTurnBitPacking(t *testing.T) {
	ctx := ticTacToeContext(t)
	board := []byte("X--------")
	h1, err := ctx.Hash(board, 1)
	require.NoError(t, err)
	h2, err := ctx.Hash(board, 2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1/2, h2/2)
}

func TestPlayerOnlyModeIgnoresTurnBit(t *testing.T) {
	ctx := NewContext()
	pieces := []PieceSpec{
		{Char: '-', Min: 0, Max: 3},
		{Char: 'X', Min: 0, Max: 3},
	}
	err := ctx.Init(3, Player1Only, pieces, nil, nil)
	require.NoError(t, err)

	board := []byte("X--")
	h, err := ctx.Hash(board, 2) // turn argument ignored in this mode
	require.NoError(t, err)
	back, turn, err := ctx.Unhash(h)
	require.NoError(t, err)
	assert.Equal(t, board, back)
	assert.Equal(t, 1, turn)
}

func TestInitRejectsDuplicatePieceChar(t *testing.T) {
	ctx := NewContext()
	pieces := []PieceSpec{
		{Char: 'X', Min: 0, Max: 1},
		{Char: 'X', Min: 0, Max: 1},
	}
	err := ctx.Init(2, TwoPlayer, pieces, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicatePiece)
}

func TestInitRejectsTooManyPieces(t *testing.T) {
	ctx := NewContext()
	pieces := make([]PieceSpec, maxPieceTypes+1)
	for i := range pieces {
		pieces[i] = PieceSpec{Char: byte(i), Min: 0, Max: 1}
	}
	err := ctx.Init(len(pieces), TwoPlayer, pieces, nil, nil)
	assert.ErrorIs(t, err, ErrTooManyPieces)
}

func TestManagerDefaultRoundTrip(t *testing.T) {
	pieces := []PieceSpec{
		{Char: '-', Min: 0, Max: 9},
		{Char: 'O', Min: 0, Max: 4},
		{Char: 'X', Min: 0, Max: 5},
	}
	err := InitDefault(9, TwoPlayer, pieces, nil, func(counts []int) bool {
		return counts[2] == counts[1] || counts[2] == counts[1]+1
	})
	require.NoError(t, err)

	h, err := Hash([]byte("---------"), 1)
	require.NoError(t, err)
	board, turn, err := Unhash(h)
	require.NoError(t, err)
	assert.Equal(t, []byte("---------"), board)
	assert.Equal(t, 1, turn)
}

func TestManagerUnknownLabel(t *testing.T) {
	m := NewManager()
	_, err := m.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestMultinomialMatchesFactorialRatio(t *testing.T) {
	// 3 blanks, 2 O's, 4 X's over a 9-cell board: 9!/(3!2!4!) = 1260.
	v, ok := multinomial([]int{3, 2, 4})
	require.True(t, ok)
	assert.Equal(t, int64(1260), v)
}

// counterContext builds a 2-cell board over {'-', 'X'} plus a
// non-trivial unordered tail counter 'c' in [0, 2] (e.g. a captured-
// piece count that never occupies a board cell), exercising the part
// of spec §3/§4.2's data model HashWithCounters/UnhashWithCounters
// serve: a context whose unordered counters are not all pinned at a
// single value.
func counterContext(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext()
	pieces := []PieceSpec{
		{Char: '-', Min: 0, Max: 2},
		{Char: 'X', Min: 0, Max: 2},
	}
	unordered := []PieceSpec{
		{Char: 'c', Min: 0, Max: 2},
	}
	err := ctx.Init(2, Player1Only, pieces, unordered, nil)
	require.NoError(t, err)
	return ctx
}

func TestHashWithCountersRoundTripsEveryHash(t *testing.T) {
	ctx := counterContext(t)
	n := ctx.NumPositions()
	require.Greater(t, n, int64(0))

	for h := int64(0); h < n; h++ {
		board, turn, counters, err := ctx.UnhashWithCounters(h)
		require.NoError(t, err)
		require.Len(t, board, 2)
		require.Len(t, counters, 1)

		back, err := ctx.HashWithCounters(board, turn, counters)
		require.NoError(t, err)
		assert.Equal(t, h, back, "hashWithCounters(unhashWithCounters(%d)) must return %d, got board %q counters %v", h, h, string(board), counters)
	}
}

func TestHashWithCountersDistinguishesCounterValues(t *testing.T) {
	ctx := counterContext(t)
	board := []byte("--")
	h0, err := ctx.HashWithCounters(board, 1, []int{0})
	require.NoError(t, err)
	h1, err := ctx.HashWithCounters(board, 1, []int{1})
	require.NoError(t, err)
	h2, err := ctx.HashWithCounters(board, 1, []int{2})
	require.NoError(t, err)
	assert.NotEqual(t, h0, h1)
	assert.NotEqual(t, h1, h2)
	assert.NotEqual(t, h0, h2)
}

func TestHashWithCountersRejectsWrongArity(t *testing.T) {
	ctx := counterContext(t)
	_, err := ctx.HashWithCounters([]byte("--"), 1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestHashPinsUnorderedCountersAtMinimum(t *testing.T) {
	ctx := counterContext(t)
	board := []byte("--")
	h, err := ctx.Hash(board, 1)
	require.NoError(t, err)

	_, _, counters, err := ctx.UnhashWithCounters(h)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, counters)
}

func TestMultinomialOverflowDetected(t *testing.T) {
	big := []int{1 << 40, 1 << 40}
	_, ok := multinomial(big)
	assert.False(t, ok)
}
