package containers

import (
	"github.com/cespare/xxhash/v2"
	"github.com/gamesmanone/core/internal/types"
)

// TierPositionSet is a hash set of TierPosition. The key is the Cantor
// pairing of (tier, position) per spec §4.1; xxhash mixes that key before
// bucket placement so that the dense, highly sequential position ranges
// within a tier (which Cantor pairing alone tends to cluster) spread
// evenly across buckets — equality and the stored key itself stay exactly
// the raw pairing value, only placement is mixed.
type TierPositionSet struct {
	buckets [][]int64 // each bucket holds Cantor-paired keys
	count   int
}

// NewTierPositionSet returns an empty set.
func NewTierPositionSet() *TierPositionSet {
	return &TierPositionSet{buckets: make([][]int64, 17)}
}

// cantorPair computes the Cantor pairing of two non-negative-shifted
// int64s. Tier and Position may be negative (sentinels), so both are
// offset into the unsigned domain before pairing.
func cantorPair(tier types.Tier, position types.Position) int64 {
	a := uint64(int64(tier)) + 1<<62
	b := uint64(int64(position)) + 1<<62
	sum := a + b
	paired := (sum*(sum+1))/2 + b
	return int64(paired)
}

func (s *TierPositionSet) bucketIndex(key int64) int {
	h := xxhash.Sum64(encodeInt64(key))
	return int(h % uint64(len(s.buckets)))
}

func encodeInt64(v int64) []byte {
	var b [8]byte
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
	return b[:]
}

// Len returns the number of distinct TierPositions stored.
func (s *TierPositionSet) Len() int { return s.count }

// Add inserts tp if not already present. Reports whether it was newly
// added.
func (s *TierPositionSet) Add(tp types.TierPosition) bool {
	key := cantorPair(tp.Tier, tp.Position)
	idx := s.bucketIndex(key)
	for _, k := range s.buckets[idx] {
		if k == key {
			return false
		}
	}
	if float64(s.count+1) > 0.75*float64(len(s.buckets)) {
		s.grow()
		idx = s.bucketIndex(key)
	}
	s.buckets[idx] = append(s.buckets[idx], key)
	s.count++
	return true
}

// Contains reports whether tp is in the set.
func (s *TierPositionSet) Contains(tp types.TierPosition) bool {
	key := cantorPair(tp.Tier, tp.Position)
	idx := s.bucketIndex(key)
	for _, k := range s.buckets[idx] {
		if k == key {
			return true
		}
	}
	return false
}

func (s *TierPositionSet) grow() {
	old := s.buckets
	s.buckets = make([][]int64, nextPrimeAtLeast(2*len(old)))
	for _, bucket := range old {
		for _, key := range bucket {
			idx := s.bucketIndex(key)
			s.buckets[idx] = append(s.buckets[idx], key)
		}
	}
}
