package tiersolver

import "github.com/pkg/errors"

// ErrCancelled is returned when a solve stops early because the
// cooperative cancellation flag was observed set between tiers or
// phases (spec §5 "Cancellation and timeout").
var ErrCancelled = errors.New("tiersolver: solve cancelled")

// ErrTierUnsolvable is returned when a tier's child tiers have not
// been flushed yet, violating the scheduling invariant that a tier
// starts only after every child tier is available (spec §5 "Across
// tiers").
var ErrTierUnsolvable = errors.New("tiersolver: tier's children are not yet solved")
