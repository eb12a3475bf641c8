package database

import "github.com/gamesmanone/core/internal/types"

// Solver is the SolvingDatabase implementation the tier solver drives:
// one MemoryTier in flight at a time, flushed to a Disk on completion
// (spec §4.6 "Solving mode").
type Solver struct {
	disk    *Disk
	current *MemoryTier
}

// NewSolver builds a Solver backed by disk for durable flushes.
func NewSolver(disk *Disk) *Solver {
	return &Solver{disk: disk}
}

// CreateSolvingTier allocates the in-memory vector for t (spec §4.6
// "create_solving_tier(t, size)").
func (s *Solver) CreateSolvingTier(t types.Tier, size int64) error {
	s.current = NewMemoryTier(t, size)
	return nil
}

// MemoryTier exposes the in-flight vector so the tier solver's
// concurrent workers can call TrySetValue directly rather than going
// through the narrower SolvingDatabase interface for every write.
func (s *Solver) MemoryTier() *MemoryTier {
	return s.current
}

func (s *Solver) SetValue(p types.Position, v types.Value) error {
	if s.current == nil {
		return ErrUseBeforeInit
	}
	s.current.SetValue(p, v, s.current.GetRemoteness(p))
	return nil
}

func (s *Solver) SetRemoteness(p types.Position, r types.Remoteness) error {
	if s.current == nil {
		return ErrUseBeforeInit
	}
	s.current.SetValue(p, s.current.GetValue(p), r)
	return nil
}

func (s *Solver) GetValue(p types.Position) (types.Value, error) {
	if s.current == nil {
		return types.Undecided, ErrUseBeforeInit
	}
	return s.current.GetValue(p), nil
}

func (s *Solver) GetRemoteness(p types.Position) (types.Remoteness, error) {
	if s.current == nil {
		return 0, ErrUseBeforeInit
	}
	return s.current.GetRemoteness(p), nil
}

// FlushSolvingTier writes the in-memory vector to durable storage
// (spec §4.6 "flush_solving_tier()").
func (s *Solver) FlushSolvingTier(force bool) error {
	if s.current == nil {
		return ErrUseBeforeInit
	}
	records := make([]types.Record, s.current.Len())
	s.current.ForEach(func(p types.Position, rec types.Record) {
		records[p] = rec
	})
	return s.disk.FlushTier(s.current.Tier(), records, force)
}

// FreeSolvingTier releases the in-memory vector (spec §4.6
// "free_solving_tier()").
func (s *Solver) FreeSolvingTier() {
	s.current = nil
}

var _ SolvingDatabase = (*Solver)(nil)
var _ ProbingDatabase = (*Disk)(nil)
