// Package containers provides the primitive building blocks the rest of
// the core is built on: a growable int64 sequence, a linear-probed 64→64
// map, a ring-buffer queue, and a TierPosition hash set. None of these
// abort on allocation failure — callers see it and decide what to do.
package containers

import "sort"

// Int64Array is a dynamic, append-only-by-default sequence of int64.
// Capacity doubles whenever an append would overflow it.
type Int64Array struct {
	data []int64
}

// NewInt64Array returns an empty array with room for capacity elements
// without reallocating.
func NewInt64Array(capacity int) *Int64Array {
	if capacity < 0 {
		capacity = 0
	}
	return &Int64Array{data: make([]int64, 0, capacity)}
}

// Len returns the number of elements currently stored.
func (a *Int64Array) Len() int { return len(a.data) }

// Append adds v to the end, growing capacity by doubling if needed.
func (a *Int64Array) Append(v int64) {
	if len(a.data) == cap(a.data) {
		newCap := 2 * cap(a.data)
		if newCap == 0 {
			newCap = 1
		}
		grown := make([]int64, len(a.data), newCap)
		copy(grown, a.data)
		a.data = grown
	}
	a.data = append(a.data, v)
}

// PopBack removes and returns the last element. ok is false on an empty
// array.
func (a *Int64Array) PopBack() (v int64, ok bool) {
	n := len(a.data)
	if n == 0 {
		return 0, false
	}
	v = a.data[n-1]
	a.data = a.data[:n-1]
	return v, true
}

// Back returns the last element without removing it.
func (a *Int64Array) Back() (v int64, ok bool) {
	n := len(a.data)
	if n == 0 {
		return 0, false
	}
	return a.data[n-1], true
}

// At returns the element at index i.
func (a *Int64Array) At(i int) int64 { return a.data[i] }

// Set overwrites the element at index i.
func (a *Int64Array) Set(i int, v int64) { a.data[i] = v }

// Contains reports whether v is present anywhere in the array.
func (a *Int64Array) Contains(v int64) bool {
	for _, x := range a.data {
		if x == v {
			return true
		}
	}
	return false
}

// SortAscending sorts the array in place, ascending.
func (a *Int64Array) SortAscending() {
	sort.Slice(a.data, func(i, j int) bool { return a.data[i] < a.data[j] })
}

// SortBy sorts the array in place using a user comparator (less-than).
func (a *Int64Array) SortBy(less func(x, y int64) bool) {
	sort.Slice(a.data, func(i, j int) bool { return less(a.data[i], a.data[j]) })
}

// Resize grows or shrinks the array to n elements. Growth zero-fills;
// shrinking truncates.
func (a *Int64Array) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(a.data) {
		a.data = a.data[:n]
		return
	}
	for len(a.data) < n {
		a.data = append(a.data, 0)
	}
}

// RemoveAt deletes the element at index i, preserving order of the rest.
func (a *Int64Array) RemoveAt(i int) {
	a.data = append(a.data[:i], a.data[i+1:]...)
}

// RemoveFirstMatch deletes the first element equal to v, if any. Reports
// whether a removal happened.
func (a *Int64Array) RemoveFirstMatch(v int64) bool {
	for i, x := range a.data {
		if x == v {
			a.RemoveAt(i)
			return true
		}
	}
	return false
}

// Clone returns a deep (independent backing array) copy.
func (a *Int64Array) Clone() *Int64Array {
	out := make([]int64, len(a.data))
	copy(out, a.data)
	return &Int64Array{data: out}
}

// Slice exposes the backing slice read-only for iteration by callers that
// need a plain range loop.
func (a *Int64Array) Slice() []int64 { return a.data }
