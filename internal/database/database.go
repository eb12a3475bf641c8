// Package database implements the two modes the core needs against a
// tier's (Value, Remoteness) records (spec §4.6): a solving-mode
// in-memory vector written concurrently by solver workers, and a
// probing-mode random-access reader used by analyze and query. On-disk
// storage is layered on internal/storage.Store, itself adapted from
// the teacher's internal/storage.Storage (a thin *badger.DB wrapper):
// NewStorage/Close/transactional get-set become Store's
// Open/Close/Get/Set, with Open/Close/FlushSolvingTier/probe here
// built on top.
package database

import (
	"github.com/pkg/errors"

	"github.com/gamesmanone/core/internal/types"
)

// Sentinel errors forming this package's slice of the Error Kind
// taxonomy (spec §7).
var (
	ErrUseBeforeInit  = errors.New("database: used before create_solving_tier")
	ErrAlreadyExists  = errors.New("database: tier already flushed; pass force to overwrite")
	ErrPositionRange  = errors.New("database: position out of tier range")
	ErrNotFound       = errors.New("database: tier not present on disk")
	ErrCorrupt        = errors.New("database: on-disk format header checksum mismatch")
)

// probeMiss is returned by Prober methods when a tier has no on-disk
// record for the requested position (not an error: an unsolved or
// unreachable position is a normal outcome of a probe).
var probeMiss = types.Record{Value: types.Undecided, Remoteness: 0}

// SolvingDatabase is the in-memory, one-tier-at-a-time write path the
// tier solver drives (spec §4.6 "Solving mode").
type SolvingDatabase interface {
	CreateSolvingTier(t types.Tier, size int64) error
	SetValue(p types.Position, v types.Value) error
	SetRemoteness(p types.Position, r types.Remoteness) error
	GetValue(p types.Position) (types.Value, error)
	GetRemoteness(p types.Position) (types.Remoteness, error)
	FlushSolvingTier(force bool) error
	FreeSolvingTier()
}

// Probe is a per-caller handle into probing mode, permitted to cache
// the last-touched tier's decoded block (spec §4.6).
type Probe interface {
	Value(tp types.TierPosition) types.Value
	Remoteness(tp types.TierPosition) types.Remoteness
	Close()
}

// ProbingDatabase is the random-access read path analyze and query use
// (spec §4.6 "Probing mode").
type ProbingDatabase interface {
	NewProbe() (Probe, error)
	HasTier(t types.Tier) bool
}
