// Package frontier implements the per-remoteness, per-worker collection
// structure that the tier solver's retrograde BFS drains level by level
// (spec §4.4). Grounded on the teacher's per-worker state pattern
// (internal/engine/worker.go's Worker: "Each worker has its own state
// but shares the transposition table") generalized from search-stack
// scratch space to solved-position buckets.
package frontier

import (
	"github.com/gamesmanone/core/internal/types"
)

// cacheLineBytes records the cache-line size Frontier is padded to
// (design note: "Cache-line padding... the Frontier struct is explicitly
// padded to a cache-line boundary to avoid false sharing between worker
// instances"). Nothing reads it: Padded sizes its padding from the
// constant cacheLineBytesConst, so assigning this variable does not
// change the padding.
var cacheLineBytes = 64

// entry is one solved position pending propagation.
type entry struct {
	pos types.Position
	rem types.Remoteness
}

// Frontier collects solved positions bucketed by remoteness, with
// per-bucket dividers recording which child tier (or the current tier,
// in the last slot) each position arrived from (spec §4.4).
type Frontier struct {
	buckets  [][]entry
	dividers [][]int64 // dividers[rem][childIndex], counts until accumulate, then offsets

	numChildren int // number of child tiers plus one ("from current tier")

	_ [0]byte // anchor for padding below; see Padded wrapper
}

// New allocates a Frontier with rMax+2 remoteness buckets (rMax
// inclusive, plus one so rem+1 has a bucket) and numChildTiers+2 divider
// slots per level: one per child tier, one for "from current tier", and
// one trailing slot that holds the end offset after AccumulateDividers.
func New(rMax types.Remoteness, numChildTiers int) *Frontier {
	levels := int(rMax) + 2 // +1 for inclusive rMax, +1 so rem+1 never overflows during propagation
	f := &Frontier{
		buckets:     make([][]entry, levels),
		dividers:    make([][]int64, levels),
		numChildren: numChildTiers + 1,
	}
	for r := range f.dividers {
		f.dividers[r] = make([]int64, f.numChildren+1)
	}
	return f
}

// Add appends pos to the bucket for rem and increments the count for
// childTierIndex (spec §4.4 "add(pos, rem, child_tier_index)"). Use
// numChildTiers (the last index) to mean "from current tier."
func (f *Frontier) Add(pos types.Position, rem types.Remoteness, childTierIndex int) {
	f.ensureLevel(int(rem))
	f.buckets[rem] = append(f.buckets[rem], entry{pos: pos, rem: rem})
	f.dividers[rem][childTierIndex]++
}

func (f *Frontier) ensureLevel(level int) {
	for level >= len(f.buckets) {
		f.buckets = append(f.buckets, nil)
		f.dividers = append(f.dividers, make([]int64, f.numChildren+1))
	}
}

// AccumulateDividers converts each level's per-child counts into
// exclusive prefix-sum offsets, one-shot (spec §4.4
// "accumulate_dividers()"). After this call dividers[r][j+1] -
// dividers[r][j] equals the count of positions at remoteness r sourced
// from child j (the Testable Properties §8 "Frontier order" scenario).
func (f *Frontier) AccumulateDividers(rem types.Remoteness) {
	row := f.dividers[rem]
	counts := append([]int64{}, row...)
	running := int64(0)
	for j := range row {
		row[j] = running
		if j < len(counts) {
			running += counts[j]
		}
	}
}

// Divider returns dividers[rem][childIndex] after AccumulateDividers has
// been called for that level.
func (f *Frontier) Divider(rem types.Remoteness, childIndex int) int64 {
	return f.dividers[rem][childIndex]
}

// Len returns the number of entries at remoteness rem.
func (f *Frontier) Len(rem types.Remoteness) int {
	if int(rem) >= len(f.buckets) {
		return 0
	}
	return len(f.buckets[rem])
}

// Get returns the i-th position at remoteness rem, an O(1) read (spec
// §4.4 "get(rem, i)").
func (f *Frontier) Get(rem types.Remoteness, i int) types.Position {
	return f.buckets[rem][i].pos
}

// FreeRemoteness releases the bucket and divider row for rem once that
// level has been fully processed (spec §4.4 "free_remoteness(rem)").
func (f *Frontier) FreeRemoteness(rem types.Remoteness) {
	if int(rem) >= len(f.buckets) {
		return
	}
	f.buckets[rem] = nil
	f.dividers[rem] = nil
}

// Padded wraps a Frontier with trailing bytes so that each worker's
// instance, placed in a []*Padded slice, does not share a cache line
// with its neighbors.
type Padded struct {
	Frontier
	pad [cacheLineBytesConst]byte
}

// cacheLineBytesConst is a compile-time mirror of cacheLineBytes (array
// lengths must be constants in Go).
const cacheLineBytesConst = 64

// NewPool allocates n cache-line-padded Frontier instances, one per
// solver worker (spec §4.4 "one instance exists per worker").
func NewPool(n int, rMax types.Remoteness, numChildTiers int) []*Padded {
	pool := make([]*Padded, n)
	for i := range pool {
		pool[i] = &Padded{Frontier: *New(rMax, numChildTiers)}
	}
	return pool
}

// Merge drains src into dst, preserving dst's existing contents ahead
// of src's (used by the single coordinator goroutine that reduces
// per-worker frontiers at the end of a remoteness level, per spec §5
// "merges... are done by a single coordinator"). The per-child divider
// counts are folded in alongside the entries themselves — dst's counts
// are still pre-accumulation at this point (Merge always runs before
// that level's AccumulateDividers), so this is a plain elementwise add.
func Merge(dst *Frontier, src *Frontier, rem types.Remoteness) {
	if int(rem) >= len(src.buckets) {
		return
	}
	dst.ensureLevel(int(rem))
	dst.buckets[rem] = append(dst.buckets[rem], src.buckets[rem]...)
	for j, n := range src.dividers[rem] {
		dst.dividers[rem][j] += n
	}
}
