package containers

// Int64Map is a linear-probed 64→64 map (spec §4.1). Any int64 can be
// a key; free slots are marked by the occupied flags, not by a reserved
// key value. A tombstone flag marks deleted slots so probing sequences
// stay intact across deletes.
//
// NewInt64Map cannot fail — it only zeroes fields and sizes the backing
// slice — so, per spec.md §9's resolution of the source's
// Int64HashMapInit return-type inconsistency, the constructor has no
// error return.
type Int64Map struct {
	keys     []int64
	values   []int64
	occupied []bool
	tomb     []bool
	count    int // live entries
	used     int // occupied-or-tombstoned slots, drives rehash timing
	maxLoad  float64
}

const int64MapEmptyKey = int64(-1) << 63 // minimum int64; not used to mark free slots

// NewInt64Map creates a map with the given max load factor, clamped to
// [0.25, 0.75] per spec §4.1.
func NewInt64Map(maxLoad float64) *Int64Map {
	if maxLoad < 0.25 {
		maxLoad = 0.25
	}
	if maxLoad > 0.75 {
		maxLoad = 0.75
	}
	const initialCapacity = 17 // a small prime
	return &Int64Map{
		keys:     make([]int64, initialCapacity),
		values:   make([]int64, initialCapacity),
		occupied: make([]bool, initialCapacity),
		tomb:     make([]bool, initialCapacity),
		maxLoad:  maxLoad,
	}
}

// Len returns the number of live entries.
func (m *Int64Map) Len() int { return m.count }

func (m *Int64Map) capacity() int { return len(m.keys) }

func (m *Int64Map) probe(key int64) int {
	cap := m.capacity()
	idx := int(uint64(key) % uint64(cap))
	firstTomb := -1
	for i := 0; i < cap; i++ {
		slot := (idx + i) % cap
		if m.occupied[slot] {
			if m.keys[slot] == key {
				return slot
			}
			continue
		}
		if m.tomb[slot] {
			if firstTomb == -1 {
				firstTomb = slot
			}
			continue
		}
		// Empty, never used: end of this key's probe sequence.
		if firstTomb != -1 {
			return firstTomb
		}
		return slot
	}
	// Table is full of tombstones/occupied; caller must have rehashed
	// before this becomes reachable.
	if firstTomb != -1 {
		return firstTomb
	}
	return -1
}

// Set inserts or updates key -> value.
func (m *Int64Map) Set(key, value int64) {
	if float64(m.used+1) > m.maxLoad*float64(m.capacity()) {
		m.rehash()
	}
	slot := m.probe(key)
	wasNew := !m.occupied[slot]
	wasTomb := m.tomb[slot]
	m.keys[slot] = key
	m.values[slot] = value
	m.occupied[slot] = true
	m.tomb[slot] = false
	if wasNew {
		m.count++
		if !wasTomb {
			m.used++
		}
	}
}

// Get returns the value for key and whether it was present.
func (m *Int64Map) Get(key int64) (int64, bool) {
	slot := m.probe(key)
	if slot == -1 || !m.occupied[slot] {
		return 0, false
	}
	return m.values[slot], true
}

// Contains reports whether key is present.
func (m *Int64Map) Contains(key int64) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key if present, tombstoning its slot.
func (m *Int64Map) Delete(key int64) {
	slot := m.probe(key)
	if slot == -1 || !m.occupied[slot] {
		return
	}
	m.occupied[slot] = false
	m.tomb[slot] = true
	m.count--
}

// ForEach iterates entries in unordered (bucket) order, per spec §4.1.
func (m *Int64Map) ForEach(fn func(key, value int64)) {
	for i, occ := range m.occupied {
		if occ {
			fn(m.keys[i], m.values[i])
		}
	}
}

// rehash grows the table into the next prime at least 2x the current
// capacity, per spec §4.1 ("rehash into the next prime ≥ 2×capacity").
func (m *Int64Map) rehash() {
	newCap := nextPrimeAtLeast(2 * m.capacity())
	old := *m
	m.keys = make([]int64, newCap)
	m.values = make([]int64, newCap)
	m.occupied = make([]bool, newCap)
	m.tomb = make([]bool, newCap)
	m.count = 0
	m.used = 0
	for i, occ := range old.occupied {
		if occ {
			m.Set(old.keys[i], old.values[i])
		}
	}
}

func nextPrimeAtLeast(n int) int {
	if n < 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
