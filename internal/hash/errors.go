package hash

import "github.com/pkg/errors"

// Sentinel errors forming the GenericHashError / InvalidArgument /
// Runtime slice of the Error Kind taxonomy (spec §7) that this package
// can produce. Callers compare with errors.Is.
var (
	// ErrDuplicatePiece is returned by Init when two pieces (ordered or
	// unordered) share a character (spec §4.2 "Duplicate piece character
	// in init → return false").
	ErrDuplicatePiece = errors.New("generic hash: duplicate piece character")

	// ErrOverflow is returned by Init when enumerating configurations or
	// multiplying arrangement counts would overflow int64 (spec §4.2
	// "Overflow during configuration enumeration or arrangement
	// multiplication → init returns false").
	ErrOverflow = errors.New("generic hash: overflow computing number of positions")

	// ErrUnknownPiece is returned by Hash when the board contains a
	// character outside the context's alphabet (spec §4.2 "Unknown piece
	// character in hash → return −1").
	ErrUnknownPiece = errors.New("generic hash: unknown piece character")

	// ErrInvalidConfiguration is returned by Hash when the board's piece
	// counts do not form a valid configuration under this context.
	ErrInvalidConfiguration = errors.New("generic hash: invalid piece configuration")

	// ErrHashOutOfRange is returned by Unhash when given a hash outside
	// [0, N) (spec §4.2 "Out-of-range hash in unhash → return false").
	ErrHashOutOfRange = errors.New("generic hash: hash out of range")

	// ErrBadBoardLength is returned when a board string's length does not
	// match the context's board size.
	ErrBadBoardLength = errors.New("generic hash: board length mismatch")

	// ErrTooManyPieces guards the "≤ 128 pieces" fixed-size contract
	// (design note: "Fixed-size stack arrays... must not silently
	// truncate on overflow — overflow is an InvalidArgument error").
	ErrTooManyPieces = errors.New("generic hash: too many piece types (max 128)")

	// ErrUnknownLabel is returned by the Manager when asked for a context
	// under a label that was never registered.
	ErrUnknownLabel = errors.New("generic hash: unknown context label")
)
