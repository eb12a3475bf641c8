// Package hash implements the generic hash context: a perfect minimal
// bijection between board-style positions (a fixed board, a multiset of
// piece types with min/max counts, and an optional turn bit) and a dense
// integer range [0, N) (spec §4.2).
package hash

import (
	"sort"

	"github.com/gamesmanone/core/internal/containers"
)

// maxPieceTypes bounds the ordered+unordered piece alphabet, mirroring
// the fixed-size stack array the reference keeps for piece configuration
// (design note: "≤ 128 pieces"). Exceeding it is an InvalidArgument error
// (ErrTooManyPieces), never a silent truncation.
const maxPieceTypes = 128

// PlayerMode selects whether a context hashes a turn bit and, if not,
// which fixed player the context is scoped to (spec §3 "player mode").
type PlayerMode int

const (
	// TwoPlayer contexts reserve the low bit of the hash for the turn
	// (spec's "Bitwise packing of a turn bit into the hash" design note).
	TwoPlayer PlayerMode = 0
	// Player1Only and Player2Only contexts never encode a turn bit; the
	// context is implicitly scoped to one player's move.
	Player1Only PlayerMode = 1
	Player2Only PlayerMode = 2
)

// PieceSpec names one piece type in the alphabet: a unique board
// character and its [Min, Max] legal count.
type PieceSpec struct {
	Char     byte
	Min, Max int
}

// ValidityFunc is the optional game-supplied predicate over a full
// configuration (ordered piece counts followed by any unordered counter
// values, in the order they were declared). It is evaluated in addition
// to the built-in Σ(ordered counts) == board size constraint.
type ValidityFunc func(counts []int) bool

// config is one enumerated, valid piece configuration.
type config struct {
	counts       []int // full counts: ordered pieces, then unordered counters
	arrangements int64 // arrangements of the ordered part only
	offset       int64 // cumulative count of positions before this config
}

// Context is a perfect minimal hash over one board shape + piece
// alphabet. It is built once (Init) and is read-only for the remainder
// of its life (spec §3 lifecycle: "read-only during solve").
type Context struct {
	boardSize  int
	playerMode PlayerMode
	pieces     []PieceSpec // ordered alphabet, occupies board cells
	unordered  []PieceSpec // optional tail counters, do not occupy cells
	validity   ValidityFunc

	charToIndex map[byte]int // index into pieces++unordered

	configs     []config
	configIndex *containers.Int64Map // shifted mixed-radix key -> rank (1-based; 0 means absent)

	radices          []int                 // max_i+1 for the ordered part, used by the rearrangement cache key
	arrangementCache *containers.Int64Map  // unshifted mixed-radix key (ordered part) -> arrangement count

	numPositions int64 // N, spec §3
}

// NewContext allocates an uninitialized context. Call Init before use.
func NewContext() *Context {
	return &Context{charToIndex: make(map[byte]int)}
}

// Init builds the bijection for the given board size, player mode,
// ordered piece alphabet, optional unordered counters, and optional
// validity predicate. It returns an error (never panics) on any of the
// failure modes spec §4.2 names: duplicate characters, too many piece
// types, or overflow while enumerating configurations or multiplying
// arrangement counts.
func (c *Context) Init(boardSize int, playerMode PlayerMode, pieces, unordered []PieceSpec, validity ValidityFunc) error {
	if len(pieces)+len(unordered) > maxPieceTypes {
		return ErrTooManyPieces
	}
	seen := make(map[byte]bool, len(pieces)+len(unordered))
	for _, p := range pieces {
		if seen[p.Char] {
			return ErrDuplicatePiece
		}
		seen[p.Char] = true
	}
	for _, p := range unordered {
		if seen[p.Char] {
			return ErrDuplicatePiece
		}
		seen[p.Char] = true
	}

	c.boardSize = boardSize
	c.playerMode = playerMode
	c.pieces = append([]PieceSpec{}, pieces...)
	c.unordered = append([]PieceSpec{}, unordered...)
	c.validity = validity
	c.charToIndex = make(map[byte]int, len(pieces)+len(unordered))
	for i, p := range pieces {
		c.charToIndex[p.Char] = i
	}
	for i, p := range unordered {
		c.charToIndex[p.Char] = len(pieces) + i
	}

	c.radices = make([]int, len(pieces))
	for i, p := range pieces {
		c.radices[i] = p.Max + 1
	}
	c.arrangementCache = containers.NewInt64Map(0.6)
	c.configIndex = containers.NewInt64Map(0.6)

	all := append(append([]PieceSpec{}, pieces...), unordered...)
	digits := make([]int, len(all))
	for i := range digits {
		digits[i] = all[i].Min
	}

	var runningOffset int64
	c.configs = c.configs[:0]

	// Mixed-radix odometer over [min_i, max_i] per digit (spec §4.2 step 1).
	for {
		orderedSum := 0
		for i := range pieces {
			orderedSum += digits[i]
		}
		valid := orderedSum == boardSize
		if valid && validity != nil {
			valid = validity(digits)
		}
		if valid {
			orderedCounts := digits[:len(pieces)]
			arrangements, ok := multinomial(orderedCounts)
			if !ok {
				return ErrOverflow
			}
			newOffset, ok := addOverflow(runningOffset, arrangements)
			if !ok {
				return ErrOverflow
			}
			cfg := config{
				counts:       append([]int{}, digits...),
				arrangements: arrangements,
				offset:       runningOffset,
			}
			c.configs = append(c.configs, cfg)
			key := shiftedMixedRadixKey(digits, all)
			c.configIndex.Set(key, int64(len(c.configs))) // 1-based
			runningOffset = newOffset
		}

		if !incrementOdometer(digits, all) {
			break
		}
	}

	numPositions := runningOffset
	if playerMode == TwoPlayer {
		doubled, ok := mulOverflow(numPositions, 2)
		if !ok {
			return ErrOverflow
		}
		// spec §9's resolution of the two-variant overflow-check bug:
		// the check happens AFTER the turn-bit multiply, not before.
		numPositions = doubled
	}
	c.numPositions = numPositions
	return nil
}

// incrementOdometer advances digits to the next mixed-radix combination
// in [min_i, max_i] for each piece in all. Returns false once every
// combination has been produced.
func incrementOdometer(digits []int, all []PieceSpec) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] <= all[i].Max {
			return true
		}
		digits[i] = all[i].Min
	}
	return false
}

// shiftedMixedRadixKey encodes digits (already within [min_i,max_i]) as a
// single integer using (max_i-min_i+1) radices, shifted by min_i — the
// form used to look up which enumerated configuration a board produced.
func shiftedMixedRadixKey(digits []int, all []PieceSpec) int64 {
	key := int64(0)
	mult := int64(1)
	for i, d := range digits {
		key += int64(d-all[i].Min) * mult
		mult *= int64(all[i].Max - all[i].Min + 1)
	}
	return key
}

// NumPositions returns N, the size of this context's hash range.
func (c *Context) NumPositions() int64 { return c.numPositions }

// BoardSize returns the number of ordered-piece cells.
func (c *Context) BoardSize() int { return c.boardSize }

// arrangementCount returns the number of distinct arrangements of the
// given ordered-piece remaining counts, using the cache keyed by the
// un-shifted mixed-radix key (spec §4.2 "Rearrangement cache").
func (c *Context) arrangementCount(remaining []int) (int64, bool) {
	key := unshiftedKey(remaining, c.radices)
	if v, ok := c.arrangementCache.Get(key); ok {
		return v, true
	}
	v, ok := multinomial(remaining)
	if !ok {
		return 0, false
	}
	c.arrangementCache.Set(key, v)
	return v, true
}

func unshiftedKey(counts []int, radices []int) int64 {
	key := int64(0)
	mult := int64(1)
	for i, v := range counts {
		key += int64(v) * mult
		mult *= int64(radices[i])
	}
	return key
}

// countOrderedPieces tallies occurrences of each ordered-piece character in
// board, returning an error if any character is outside the alphabet.
func (c *Context) countOrderedPieces(board []byte) ([]int, error) {
	if len(board) != c.boardSize {
		return nil, ErrBadBoardLength
	}
	counts := make([]int, len(c.pieces))
	for _, ch := range board {
		idx, ok := c.charToIndex[ch]
		if !ok || idx >= len(c.pieces) {
			return nil, ErrUnknownPiece
		}
		counts[idx]++
	}
	return counts, nil
}

// Hash maps (board, turn) to its dense integer, per spec §4.2's
// "hash(board, turn)" algorithm. turn is 1 or 2; it is ignored unless
// playerMode is TwoPlayer. Every unordered counter (if any were
// declared) is taken at its Min; a context whose unordered counters
// are not all pinned at Min==Max must use HashWithCounters instead to
// address the rest of its configuration space.
func (c *Context) Hash(board []byte, turn int) (int64, error) {
	return c.HashWithCounters(board, turn, c.unorderedZeroDigits())
}

// HashWithCounters generalizes Hash to an explicit unordered-counter
// vector, one value per counter in the order passed to Init (spec
// §4.2/§3: "optional unordered-piece counters (tail of the board
// string)"). Only the configuration lookup differs from Hash; the
// board-arrangement rank within a configuration never depends on the
// unordered counters, since they do not occupy board cells.
func (c *Context) HashWithCounters(board []byte, turn int, counters []int) (int64, error) {
	if len(counters) != len(c.unordered) {
		return -1, ErrInvalidConfiguration
	}
	counts, err := c.countOrderedPieces(board)
	if err != nil {
		return -1, err
	}
	digits := append(append([]int{}, counts...), counters...)
	all := c.allPieces()
	for i, d := range digits {
		if d < all[i].Min || d > all[i].Max {
			return -1, ErrInvalidConfiguration
		}
	}
	key := shiftedMixedRadixKey(digits, all)
	rank1, ok := c.configIndex.Get(key)
	if !ok {
		return -1, ErrInvalidConfiguration
	}
	cfg := c.configs[rank1-1]
	start := cfg.offset

	remaining := append([]int{}, counts...)
	acc := int64(0)
	for i := c.boardSize - 1; i >= 0; i-- {
		p := c.charToIndex[board[i]]
		for q := 0; q < p; q++ {
			if remaining[q] <= 0 {
				continue
			}
			remaining[q]--
			cnt, ok := c.arrangementCount(remaining)
			if !ok {
				remaining[q]++
				return -1, ErrOverflow
			}
			acc += cnt
			remaining[q]++
		}
		remaining[p]--
	}

	h := start + acc
	if c.playerMode == TwoPlayer {
		bit := int64(0)
		if turn == 2 {
			bit = 1
		}
		h = (h << 1) | bit
	}
	return h, nil
}

// Unhash is the inverse of Hash: given an integer in [0, N), it
// recovers the board string and turn, discarding any unordered counter
// values (use UnhashWithCounters to recover those too).
func (c *Context) Unhash(h int64) (board []byte, turn int, err error) {
	board, turn, _, err = c.unhashRank(h)
	return board, turn, err
}

// UnhashWithCounters is Unhash's counterpart to HashWithCounters: it
// additionally returns the unordered counter values the configuration
// at h was hashed with, in declaration order.
func (c *Context) UnhashWithCounters(h int64) (board []byte, turn int, counters []int, err error) {
	board, turn, rank, err := c.unhashRank(h)
	if err != nil {
		return nil, 0, nil, err
	}
	counters = append([]int{}, c.configs[rank].counts[len(c.pieces):]...)
	return board, turn, counters, nil
}

// unhashRank does the shared work of Unhash/UnhashWithCounters,
// additionally returning the resolved configuration's rank so callers
// can read off its unordered counter values.
func (c *Context) unhashRank(h int64) (board []byte, turn int, rank int, err error) {
	if h < 0 || h >= c.numPositions {
		return nil, 0, -1, ErrHashOutOfRange
	}
	turn = 0
	if c.playerMode == TwoPlayer {
		if h&1 == 1 {
			turn = 2
		} else {
			turn = 1
		}
		h >>= 1
	} else if c.playerMode == Player1Only {
		turn = 1
	} else {
		turn = 2
	}

	rank = c.findRank(h)
	if rank < 0 {
		return nil, 0, -1, ErrHashOutOfRange
	}
	cfg := c.configs[rank]
	residual := h - cfg.offset

	remaining := append([]int{}, cfg.counts[:len(c.pieces)]...)
	board = make([]byte, c.boardSize)
	for i := c.boardSize - 1; i >= 0; i-- {
		placed := false
		for p := 0; p < len(c.pieces); p++ {
			if remaining[p] <= 0 {
				continue
			}
			remaining[p]--
			cnt, ok := c.arrangementCount(remaining)
			if !ok {
				return nil, 0, -1, ErrOverflow
			}
			if residual < cnt {
				board[i] = c.pieces[p].Char
				placed = true
				break
			}
			residual -= cnt
			remaining[p]++
		}
		if !placed {
			return nil, 0, -1, ErrHashOutOfRange
		}
	}
	return board, turn, rank, nil
}

// findRank returns the index of the configuration whose offset is the
// largest one <= h, via binary search over configs (which are enumerated
// and therefore stored in non-decreasing offset order).
func (c *Context) findRank(h int64) int {
	n := len(c.configs)
	idx := sort.Search(n, func(i int) bool { return c.configs[i].offset > h })
	idx--
	if idx < 0 || idx >= n {
		return -1
	}
	return idx
}

func (c *Context) unorderedZeroDigits() []int {
	// Hash() pins every unordered counter at its minimum and defers to
	// HashWithCounters; games with non-trivial counters call
	// HashWithCounters directly with the counts they actually want.
	out := make([]int, len(c.unordered))
	for i, p := range c.unordered {
		out[i] = p.Min
	}
	return out
}

func (c *Context) allPieces() []PieceSpec {
	return append(append([]PieceSpec{}, c.pieces...), c.unordered...)
}
