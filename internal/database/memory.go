package database

import (
	"sync/atomic"

	"github.com/gamesmanone/core/internal/types"
)

// packRecord encodes a (Value, Remoteness) pair into a single uint32 so
// it can be written with one CompareAndSwap: the low 4 bits hold the
// value, the rest hold remoteness.
func packRecord(v types.Value, r types.Remoteness) uint32 {
	return uint32(r)<<4 | uint32(v)
}

func unpackRecord(packed uint32) (types.Value, types.Remoteness) {
	return types.Value(packed & 0xF), types.Remoteness(packed >> 4)
}

// MemoryTier is the in-memory vector of (Value, Remoteness) records for
// one tier being solved (spec §4.6 "create_solving_tier"). Each slot
// starts at (Undecided, 0) and is written at most once: the solver's
// "first observer wins" rule (spec §5 "Shared resource policy") is
// implemented here as a CompareAndSwap from the zero-value packing,
// rather than a per-position lock, since the packed record fits in one
// word.
type MemoryTier struct {
	tier    types.Tier
	records []atomic.Uint32
}

// NewMemoryTier allocates a tier vector of the given size, all slots
// initialized to (Undecided, 0) (spec §4.6).
func NewMemoryTier(t types.Tier, size int64) *MemoryTier {
	return &MemoryTier{tier: t, records: make([]atomic.Uint32, size)}
}

// TrySetValue attempts to label p with (v, r) as its first and only
// write, returning false if some other writer already labeled it. The
// tier solver relies on this to make retrograde propagation race-safe
// without a separate per-position lock (spec §5).
func (m *MemoryTier) TrySetValue(p types.Position, v types.Value, r types.Remoteness) bool {
	return m.records[p].CompareAndSwap(0, packRecord(v, r))
}

// SetValue overwrites p unconditionally (used by the primitive scan,
// which is the single owner of its own hash and races with nothing).
func (m *MemoryTier) SetValue(p types.Position, v types.Value, r types.Remoteness) {
	m.records[p].Store(packRecord(v, r))
}

// GetValue and GetRemoteness read the current record for p.
func (m *MemoryTier) GetValue(p types.Position) types.Value {
	v, _ := unpackRecord(m.records[p].Load())
	return v
}

func (m *MemoryTier) GetRemoteness(p types.Position) types.Remoteness {
	_, r := unpackRecord(m.records[p].Load())
	return r
}

// IsLabeled reports whether p has been written (value != Undecided, or
// the sentinel Draw with remoteness 0 which is itself a terminal
// label written by the solver's final sweep).
func (m *MemoryTier) IsLabeled(p types.Position) bool {
	return m.records[p].Load() != 0
}

// Len returns N(tier), the vector's size.
func (m *MemoryTier) Len() int64 {
	return int64(len(m.records))
}

// Tier returns which tier this vector belongs to.
func (m *MemoryTier) Tier() types.Tier {
	return m.tier
}

// Record returns the (Value, Remoteness) pair for p as a types.Record.
func (m *MemoryTier) Record(p types.Position) types.Record {
	v, r := unpackRecord(m.records[p].Load())
	return types.Record{Value: v, Remoteness: r}
}

// ForEach visits every (position, record) pair in ascending order,
// used by FlushSolvingTier to stream the vector out to durable
// storage.
func (m *MemoryTier) ForEach(fn func(p types.Position, rec types.Record)) {
	for i := range m.records {
		v, r := unpackRecord(m.records[i].Load())
		fn(types.Position(i), types.Record{Value: v, Remoteness: r})
	}
}
