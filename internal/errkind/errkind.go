// Package errkind gives the Error Kind taxonomy of spec.md §7
// (OutOfMemory, InvalidArgument, NotImplemented, Runtime,
// UseBeforeInitialization, GenericHashError, NotReached) a closed,
// typed representation, so the CLI's exit-code mapping ("non-zero
// error codes are surfaced from the core's error taxonomy") is a total
// function rather than a growing pile of string comparisons.
package errkind

import (
	"errors"

	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/hash"
	"github.com/gamesmanone/core/internal/manager"
	"github.com/gamesmanone/core/internal/tiersolver"
)

// Kind is one member of the closed taxonomy.
type Kind int

const (
	// Unknown is returned for an error this package cannot classify —
	// callers should treat it the same as Runtime.
	Unknown Kind = iota
	OutOfMemory
	InvalidArgument
	NotImplemented
	Runtime
	UseBeforeInitialization
	GenericHashError
	// NotReached marks an impossible branch; reaching it is fatal and
	// does not go through this package's Of/ExitCode (spec.md §7:
	// "reaching it terminates the process").
	NotReached
)

func (k Kind) String() string {
	switch k {
	case OutOfMemory:
		return "OutOfMemory"
	case InvalidArgument:
		return "InvalidArgument"
	case NotImplemented:
		return "NotImplemented"
	case Runtime:
		return "Runtime"
	case UseBeforeInitialization:
		return "UseBeforeInitialization"
	case GenericHashError:
		return "GenericHashError"
	case NotReached:
		return "NotReached"
	default:
		return "Unknown"
	}
}

// ExitCode maps a Kind to the process exit code the headless CLI
// returns (spec.md §6: "exit code 0 on success; non-zero error codes
// are surfaced from the core's error taxonomy"). The values are this
// module's own numbering — the spec leaves the mapping itself
// unspecified beyond "non-zero" and "surfaced".
func (k Kind) ExitCode() int {
	switch k {
	case InvalidArgument:
		return 2
	case UseBeforeInitialization:
		return 3
	case GenericHashError:
		return 4
	case NotImplemented:
		return 5
	case OutOfMemory:
		return 6
	case NotReached:
		return 70 // sysexits EX_SOFTWARE; process should not reach here alive
	default:
		return 1
	}
}

// Of classifies err against the sentinel errors the core packages
// export, falling back to Runtime for anything else (spec.md §7:
// "Runtime (generic internal failure)").
func Of(err error) Kind {
	switch {
	case err == nil:
		return Unknown
	case errors.Is(err, hash.ErrDuplicatePiece),
		errors.Is(err, hash.ErrOverflow),
		errors.Is(err, hash.ErrUnknownPiece),
		errors.Is(err, hash.ErrInvalidConfiguration),
		errors.Is(err, hash.ErrHashOutOfRange),
		errors.Is(err, hash.ErrBadBoardLength),
		errors.Is(err, hash.ErrTooManyPieces),
		errors.Is(err, hash.ErrUnknownLabel):
		return GenericHashError
	case errors.Is(err, database.ErrPositionRange),
		errors.Is(err, database.ErrAlreadyExists),
		errors.Is(err, database.ErrNotFound):
		return InvalidArgument
	case errors.Is(err, database.ErrCorrupt):
		return Runtime
	case errors.Is(err, database.ErrUseBeforeInit),
		errors.Is(err, manager.ErrNotInitialized):
		return UseBeforeInitialization
	case errors.Is(err, manager.ErrAlreadyInitialized):
		return InvalidArgument
	case errors.Is(err, tiersolver.ErrTierUnsolvable):
		return InvalidArgument
	case errors.Is(err, tiersolver.ErrCancelled):
		return Runtime
	default:
		return Runtime
	}
}
