package errkind

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamesmanone/core/internal/hash"
	"github.com/gamesmanone/core/internal/manager"
	"github.com/gamesmanone/core/internal/tiersolver"
)

func TestOfClassifiesKnownSentinels(t *testing.T) {
	assert.Equal(t, GenericHashError, Of(hash.ErrOverflow))
	assert.Equal(t, GenericHashError, Of(hash.ErrUnknownPiece))
	assert.Equal(t, UseBeforeInitialization, Of(manager.ErrNotInitialized))
	assert.Equal(t, InvalidArgument, Of(manager.ErrAlreadyInitialized))
	assert.Equal(t, InvalidArgument, Of(tiersolver.ErrTierUnsolvable))
	assert.Equal(t, Runtime, Of(tiersolver.ErrCancelled))
}

func TestOfFallsBackToRuntimeForUnknownErrors(t *testing.T) {
	assert.Equal(t, Runtime, Of(assert.AnError))
}

func TestExitCodeIsNonZeroForEveryFailureKind(t *testing.T) {
	for _, k := range []Kind{OutOfMemory, InvalidArgument, NotImplemented, Runtime,
		UseBeforeInitialization, GenericHashError, NotReached} {
		assert.NotZero(t, k.ExitCode(), k.String())
	}
}

func TestStringIsNonEmptyForEveryKind(t *testing.T) {
	for _, k := range []Kind{Unknown, OutOfMemory, InvalidArgument, NotImplemented, Runtime,
		UseBeforeInitialization, GenericHashError, NotReached} {
		assert.NotEmpty(t, k.String())
	}
}
