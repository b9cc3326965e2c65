package augtree

import (
	"github.com/npillmayer/augtree/tree"
)

// none is the key type of range trees, which have no keys.
type none = struct{}

// rangeOps are the positional operations of one-dimensional range facades.
type rangeOps[V any] struct {
	t *tree.Tree[none, V]
}

// Delete removes the entry starting at start.
func (o rangeOps[V]) Delete(start int64) error { return o.t.DeleteRange(X, start) }

// Length returns the length of the entry starting at start.
func (o rangeOps[V]) Length(start int64) (int64, error) {
	e, err := o.t.RangeAt(X, start)
	return e.Length[X], err
}

// SetLength changes the length of the entry starting at start. Following
// entries move accordingly.
func (o rangeOps[V]) SetLength(start, length int64) error {
	return o.t.SetLengths(X, start, [2]int64{length})
}

// Extent returns the sum of all lengths.
func (o rangeOps[V]) Extent() int64 { return o.t.Extent(X) }

// Locate returns the start and length of the entry containing pos.
func (o rangeOps[V]) Locate(pos int64) (start, length int64, err error) {
	e, err := o.t.Locate(X, pos)
	return e.Start[X], e.Length[X], err
}

func (o rangeOps[V]) NearestLessOrEqual(pos int64) (int64, bool) {
	return o.t.NearestLessOrEqualAt(X, pos)
}

func (o rangeOps[V]) NearestLess(pos int64) (int64, bool) {
	return o.t.NearestLessAt(X, pos)
}

func (o rangeOps[V]) NearestGreaterOrEqual(pos int64) (int64, bool) {
	return o.t.NearestGreaterOrEqualAt(X, pos)
}

func (o rangeOps[V]) NearestGreater(pos int64) (int64, bool) {
	return o.t.NearestGreaterAt(X, pos)
}

// EnumerateFrom creates an enumerator starting at the first entry with
// start >= pos (reverse: the last entry with start <= pos).
func (o rangeOps[V]) EnumerateFrom(pos int64, opts ...EnumOption) *Enumerator[none, V] {
	return o.t.Enumerate(append(opts, StartAtPosition(X, pos))...)
}

// RangeMap is a sequence of keyless entries with positive lengths and values.
// An entry starts where its predecessor ends.
type RangeMap[V any] struct {
	base[none, V]
	rangeOps[V]
}

// NewRangeMap creates an empty range map.
func NewRangeMap[V any](capacity int, mode AllocationMode, opts ...Option) (*RangeMap[V], error) {
	t, err := newTree[none, V](tree.Range, false, capacity, mode, nil, opts)
	if err != nil {
		return nil, err
	}
	return &RangeMap[V]{base[none, V]{t}, rangeOps[V]{t}}, nil
}

// Insert inserts an entry in front of the entry starting at start, or
// appends it if start equals the extent.
func (m *RangeMap[V]) Insert(start, length int64, value V) error {
	return m.base.t.InsertRange(X, start, [2]int64{length}, value)
}

// Value returns the value of the entry starting at start.
func (m *RangeMap[V]) Value(start int64) (V, error) {
	e, err := m.base.t.RangeAt(X, start)
	return e.Value, err
}

// SetValue replaces the value of the entry starting at start.
func (m *RangeMap[V]) SetValue(start int64, value V) error {
	return m.base.t.SetRangeValue(X, start, value)
}

// Clone returns an independent deep copy.
func (m *RangeMap[V]) Clone() *RangeMap[V] {
	t := m.base.t.Clone()
	return &RangeMap[V]{base[none, V]{t}, rangeOps[V]{t}}
}

// RangeList is a sequence of keyless entries with positive lengths.
type RangeList struct {
	base[none, none]
	rangeOps[none]
}

// NewRangeList creates an empty range list.
func NewRangeList(capacity int, mode AllocationMode, opts ...Option) (*RangeList, error) {
	t, err := newTree[none, none](tree.Range, true, capacity, mode, nil, opts)
	if err != nil {
		return nil, err
	}
	return &RangeList{base[none, none]{t}, rangeOps[none]{t}}, nil
}

// Insert inserts an entry of length in front of the entry starting at start,
// or appends it if start equals the extent.
func (l *RangeList) Insert(start, length int64) error {
	return l.base.t.InsertRange(X, start, [2]int64{length}, none{})
}

// Clone returns an independent deep copy.
func (l *RangeList) Clone() *RangeList {
	t := l.base.t.Clone()
	return &RangeList{base[none, none]{t}, rangeOps[none]{t}}
}

// --- Two dimensions --------------------------------------------------------

// range2Ops are the positional operations of two-dimensional range facades.
// Positions are addressed along a Side; both sides share the entry order.
type range2Ops[V any] struct {
	t *tree.Tree[none, V]
}

// Delete removes the entry starting at start along side.
func (o range2Ops[V]) Delete(side Side, start int64) error { return o.t.DeleteRange(side, start) }

// Length returns the length along side of the entry starting at start
// along side.
func (o range2Ops[V]) Length(side Side, start int64) (int64, error) {
	e, err := o.t.RangeAt(side, start)
	if err != nil {
		return 0, err
	}
	return e.Length[side], nil
}

// Lengths returns both lengths of the entry starting at start along side.
func (o range2Ops[V]) Lengths(side Side, start int64) (x, y int64, err error) {
	e, err := o.t.RangeAt(side, start)
	return e.Length[X], e.Length[Y], err
}

// SetLength changes the length along side of the entry starting at start
// along side. The other length is kept.
func (o range2Ops[V]) SetLength(side Side, start, length int64) error {
	e, err := o.t.RangeAt(side, start)
	if err != nil {
		return err
	}
	lengths := e.Length
	lengths[side] = length
	return o.t.SetLengths(side, start, lengths)
}

// SetLengths changes both lengths of the entry starting at start along side.
func (o range2Ops[V]) SetLengths(side Side, start, x, y int64) error {
	return o.t.SetLengths(side, start, [2]int64{x, y})
}

// Extent returns the sum of all lengths along side.
func (o range2Ops[V]) Extent(side Side) int64 { return o.t.Extent(side) }

// Locate returns the entry containing pos along side.
func (o range2Ops[V]) Locate(side Side, pos int64) (Entry[none, V], error) {
	return o.t.Locate(side, pos)
}

func (o range2Ops[V]) NearestLessOrEqual(side Side, pos int64) (int64, bool) {
	return o.t.NearestLessOrEqualAt(side, pos)
}

func (o range2Ops[V]) NearestLess(side Side, pos int64) (int64, bool) {
	return o.t.NearestLessAt(side, pos)
}

func (o range2Ops[V]) NearestGreaterOrEqual(side Side, pos int64) (int64, bool) {
	return o.t.NearestGreaterOrEqualAt(side, pos)
}

func (o range2Ops[V]) NearestGreater(side Side, pos int64) (int64, bool) {
	return o.t.NearestGreaterAt(side, pos)
}

// EnumerateFrom creates an enumerator starting at the first entry with
// start >= pos along side (reverse: the last entry with start <= pos).
func (o range2Ops[V]) EnumerateFrom(side Side, pos int64, opts ...EnumOption) *Enumerator[none, V] {
	return o.t.Enumerate(append(opts, StartAtPosition(side, pos))...)
}

// Range2Map is a sequence of keyless entries with two positive lengths, one
// per side, and a value.
type Range2Map[V any] struct {
	base[none, V]
	range2Ops[V]
}

// NewRange2Map creates an empty two-dimensional range map.
func NewRange2Map[V any](capacity int, mode AllocationMode, opts ...Option) (*Range2Map[V], error) {
	t, err := newTree[none, V](tree.Range2, false, capacity, mode, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Range2Map[V]{base[none, V]{t}, range2Ops[V]{t}}, nil
}

// Insert inserts an entry with lengths x and y in front of the entry starting
// at start along side, or appends it if start equals the extent of side.
func (m *Range2Map[V]) Insert(side Side, start, x, y int64, value V) error {
	return m.base.t.InsertRange(side, start, [2]int64{x, y}, value)
}

// Value returns the value of the entry starting at start along side.
func (m *Range2Map[V]) Value(side Side, start int64) (V, error) {
	e, err := m.base.t.RangeAt(side, start)
	return e.Value, err
}

// SetValue replaces the value of the entry starting at start along side.
func (m *Range2Map[V]) SetValue(side Side, start int64, value V) error {
	return m.base.t.SetRangeValue(side, start, value)
}

// Clone returns an independent deep copy.
func (m *Range2Map[V]) Clone() *Range2Map[V] {
	t := m.base.t.Clone()
	return &Range2Map[V]{base[none, V]{t}, range2Ops[V]{t}}
}

// Range2List is a sequence of keyless entries with two positive lengths.
type Range2List struct {
	base[none, none]
	range2Ops[none]
}

// NewRange2List creates an empty two-dimensional range list.
func NewRange2List(capacity int, mode AllocationMode, opts ...Option) (*Range2List, error) {
	t, err := newTree[none, none](tree.Range2, true, capacity, mode, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Range2List{base[none, none]{t}, range2Ops[none]{t}}, nil
}

// Insert inserts an entry with lengths x and y in front of the entry starting
// at start along side, or appends it if start equals the extent of side.
func (l *Range2List) Insert(side Side, start, x, y int64) error {
	return l.base.t.InsertRange(side, start, [2]int64{x, y}, none{})
}

// Clone returns an independent deep copy.
func (l *Range2List) Clone() *Range2List {
	t := l.base.t.Clone()
	return &Range2List{base[none, none]{t}, range2Ops[none]{t}}
}
