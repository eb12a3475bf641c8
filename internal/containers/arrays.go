package containers

import "github.com/gamesmanone/core/internal/types"

// PositionArray, MoveArray, TierArray, and TierStack are structural
// reuses of Int64Array with renamed element semantics (spec §4.1: "All
// other sequences... are structural reuses with renamed element
// semantics"). Each wraps an *Int64Array and exposes the same operation
// set under domain-typed signatures.

// PositionArray is a dynamic sequence of Position.
type PositionArray struct{ a *Int64Array }

func NewPositionArray(capacity int) *PositionArray {
	return &PositionArray{a: NewInt64Array(capacity)}
}
func (p *PositionArray) Len() int                     { return p.a.Len() }
func (p *PositionArray) Append(v types.Position)      { p.a.Append(int64(v)) }
func (p *PositionArray) At(i int) types.Position      { return types.Position(p.a.At(i)) }
func (p *PositionArray) Set(i int, v types.Position)  { p.a.Set(i, int64(v)) }
func (p *PositionArray) Contains(v types.Position) bool {
	return p.a.Contains(int64(v))
}
func (p *PositionArray) PopBack() (types.Position, bool) {
	v, ok := p.a.PopBack()
	return types.Position(v), ok
}
func (p *PositionArray) RemoveAt(i int)    { p.a.RemoveAt(i) }
func (p *PositionArray) Resize(n int)      { p.a.Resize(n) }
func (p *PositionArray) SortAscending()    { p.a.SortAscending() }
func (p *PositionArray) Clone() *PositionArray {
	return &PositionArray{a: p.a.Clone()}
}

// MoveArray is a dynamic sequence of Move, bounded in practice by the
// game API's "≤ 4096 moves" contract (spec §4.3) but not enforced here —
// enforcement belongs to the caller that owns that contract.
type MoveArray struct{ a *Int64Array }

func NewMoveArray(capacity int) *MoveArray { return &MoveArray{a: NewInt64Array(capacity)} }
func (m *MoveArray) Len() int               { return m.a.Len() }
func (m *MoveArray) Append(v types.Move)    { m.a.Append(int64(v)) }
func (m *MoveArray) At(i int) types.Move    { return types.Move(m.a.At(i)) }
func (m *MoveArray) Contains(v types.Move) bool {
	return m.a.Contains(int64(v))
}
func (m *MoveArray) RemoveFirstMatch(v types.Move) bool {
	return m.a.RemoveFirstMatch(int64(v))
}

// TierArray is a dynamic sequence of Tier.
type TierArray struct{ a *Int64Array }

func NewTierArray(capacity int) *TierArray { return &TierArray{a: NewInt64Array(capacity)} }
func (t *TierArray) Len() int            { return t.a.Len() }
func (t *TierArray) Append(v types.Tier) { t.a.Append(int64(v)) }
func (t *TierArray) At(i int) types.Tier { return types.Tier(t.a.At(i)) }
func (t *TierArray) Contains(v types.Tier) bool {
	return t.a.Contains(int64(v))
}
func (t *TierArray) Slice() []types.Tier {
	out := make([]types.Tier, t.a.Len())
	for i, v := range t.a.Slice() {
		out[i] = types.Tier(v)
	}
	return out
}

// TierStack is a LIFO stack of Tier, used by the solver's tier-graph walk.
type TierStack struct{ a *Int64Array }

func NewTierStack() *TierStack { return &TierStack{a: NewInt64Array(0)} }
func (s *TierStack) Len() int  { return s.a.Len() }
func (s *TierStack) Push(v types.Tier) { s.a.Append(int64(v)) }
func (s *TierStack) Pop() (types.Tier, bool) {
	v, ok := s.a.PopBack()
	return types.Tier(v), ok
}

// TierPositionArray is a dynamic sequence of TierPosition, implemented as
// two parallel Int64Arrays rather than one array of pairs so that it
// keeps the same doubling/zero-fill growth contract as the rest of the
// family without introducing a struct-element special case.
type TierPositionArray struct {
	tiers     *Int64Array
	positions *Int64Array
}

func NewTierPositionArray(capacity int) *TierPositionArray {
	return &TierPositionArray{
		tiers:     NewInt64Array(capacity),
		positions: NewInt64Array(capacity),
	}
}

func (a *TierPositionArray) Len() int { return a.tiers.Len() }

func (a *TierPositionArray) Append(tp types.TierPosition) {
	a.tiers.Append(int64(tp.Tier))
	a.positions.Append(int64(tp.Position))
}

func (a *TierPositionArray) At(i int) types.TierPosition {
	return types.TierPosition{Tier: types.Tier(a.tiers.At(i)), Position: types.Position(a.positions.At(i))}
}
