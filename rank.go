package augtree

import (
	"cmp"

	"github.com/npillmayer/augtree/tree"
	"golang.org/x/exp/constraints"
)

// RankMap is an ordered map with order statistics.
type RankMap[K, V any] struct {
	base[K, V]
	keyOps[K, V]
	valueOps[K, V]
	rankOps[K, V]
}

// NewRankMap creates a rank map with naturally ordered keys.
func NewRankMap[K constraints.Ordered, V any](capacity int, mode AllocationMode, opts ...Option) (*RankMap[K, V], error) {
	return NewRankMapFunc[K, V](capacity, mode, cmp.Compare[K], opts...)
}

// NewRankMapFunc creates a rank map ordered by compare.
func NewRankMapFunc[K, V any](capacity int, mode AllocationMode, compare func(a, b K) int, opts ...Option) (*RankMap[K, V], error) {
	t, err := newTree[K, V](tree.Rank, false, capacity, mode, compare, opts)
	if err != nil {
		return nil, err
	}
	return wrapRankMap(t), nil
}

func wrapRankMap[K, V any](t *tree.Tree[K, V]) *RankMap[K, V] {
	return &RankMap[K, V]{base[K, V]{t}, keyOps[K, V]{t}, valueOps[K, V]{t}, rankOps[K, V]{t}}
}

// Add inserts key with value.
func (m *RankMap[K, V]) Add(key K, value V) error {
	return m.base.t.Insert(key, value)
}

// AtRank returns the key and value with exactly rank smaller keys.
func (m *RankMap[K, V]) AtRank(rank int64) (K, V, error) {
	e, err := m.base.t.AtRank(rank)
	return e.Key, e.Value, err
}

// Clone returns an independent deep copy.
func (m *RankMap[K, V]) Clone() *RankMap[K, V] {
	return wrapRankMap(m.base.t.Clone())
}

// RankList is an ordered set with order statistics.
type RankList[K any] struct {
	base[K, struct{}]
	keyOps[K, struct{}]
	elemOps[K]
	rankOps[K, struct{}]
}

// NewRankList creates a rank list of naturally ordered elements.
func NewRankList[K constraints.Ordered](capacity int, mode AllocationMode, opts ...Option) (*RankList[K], error) {
	return NewRankListFunc[K](capacity, mode, cmp.Compare[K], opts...)
}

// NewRankListFunc creates a rank list ordered by compare.
func NewRankListFunc[K any](capacity int, mode AllocationMode, compare func(a, b K) int, opts ...Option) (*RankList[K], error) {
	t, err := newTree[K, struct{}](tree.Rank, true, capacity, mode, compare, opts)
	if err != nil {
		return nil, err
	}
	return wrapRankList(t), nil
}

func wrapRankList[K any](t *tree.Tree[K, struct{}]) *RankList[K] {
	return &RankList[K]{base[K, struct{}]{t}, keyOps[K, struct{}]{t}, elemOps[K]{t}, rankOps[K, struct{}]{t}}
}

// Add inserts key.
func (l *RankList[K]) Add(key K) error {
	return l.base.t.Insert(key, struct{}{})
}

// AtRank returns the element with exactly rank smaller elements.
func (l *RankList[K]) AtRank(rank int64) (K, error) {
	e, err := l.base.t.AtRank(rank)
	return e.Key, err
}

// Clone returns an independent deep copy.
func (l *RankList[K]) Clone() *RankList[K] {
	return wrapRankList(l.base.t.Clone())
}

// --- MultiRank -------------------------------------------------------------

// multiOps are the multiplicity operations of MultiRank facades.
type multiOps[K, V any] struct {
	t *tree.Tree[K, V]
}

// CountOf returns the multiplicity of key.
func (o multiOps[K, V]) CountOf(key K) (int64, error) { return o.t.CountOf(key) }

// RankInterval returns the half-open rank interval [start, start+count) of key.
func (o multiOps[K, V]) RankInterval(key K) (start, count int64, err error) {
	e, err := o.t.RankOf(key)
	return e.Rank, e.Count, err
}

// AdjustCount adds delta to the multiplicity of key and returns the new
// multiplicity. The entry is removed when its multiplicity drops to zero.
func (o multiOps[K, V]) AdjustCount(key K, delta int64) (int64, error) {
	return o.t.AdjustCount(key, delta)
}

// MultiRankMap is an ordered map whose entries carry a multiplicity. An entry
// occupies the rank interval [start, start+count).
type MultiRankMap[K, V any] struct {
	base[K, V]
	keyOps[K, V]
	valueOps[K, V]
	rankOps[K, V]
	multiOps[K, V]
}

// NewMultiRankMap creates a multi-rank map with naturally ordered keys.
func NewMultiRankMap[K constraints.Ordered, V any](capacity int, mode AllocationMode, opts ...Option) (*MultiRankMap[K, V], error) {
	return NewMultiRankMapFunc[K, V](capacity, mode, cmp.Compare[K], opts...)
}

// NewMultiRankMapFunc creates a multi-rank map ordered by compare.
func NewMultiRankMapFunc[K, V any](capacity int, mode AllocationMode, compare func(a, b K) int, opts ...Option) (*MultiRankMap[K, V], error) {
	t, err := newTree[K, V](tree.MultiRank, false, capacity, mode, compare, opts)
	if err != nil {
		return nil, err
	}
	return wrapMultiRankMap(t), nil
}

func wrapMultiRankMap[K, V any](t *tree.Tree[K, V]) *MultiRankMap[K, V] {
	return &MultiRankMap[K, V]{base[K, V]{t}, keyOps[K, V]{t}, valueOps[K, V]{t}, rankOps[K, V]{t}, multiOps[K, V]{t}}
}

// Add inserts key with value and a positive multiplicity count.
func (m *MultiRankMap[K, V]) Add(key K, value V, count int64) error {
	return m.base.t.InsertCount(key, value, count)
}

// AtRank returns the key and value whose rank interval contains rank.
func (m *MultiRankMap[K, V]) AtRank(rank int64) (K, V, error) {
	e, err := m.base.t.AtRank(rank)
	return e.Key, e.Value, err
}

// Clone returns an independent deep copy.
func (m *MultiRankMap[K, V]) Clone() *MultiRankMap[K, V] {
	return wrapMultiRankMap(m.base.t.Clone())
}

// MultiRankList is an ordered multiset: every element carries a multiplicity.
type MultiRankList[K any] struct {
	base[K, struct{}]
	keyOps[K, struct{}]
	elemOps[K]
	rankOps[K, struct{}]
	multiOps[K, struct{}]
}

// NewMultiRankList creates a multi-rank list of naturally ordered elements.
func NewMultiRankList[K constraints.Ordered](capacity int, mode AllocationMode, opts ...Option) (*MultiRankList[K], error) {
	return NewMultiRankListFunc[K](capacity, mode, cmp.Compare[K], opts...)
}

// NewMultiRankListFunc creates a multi-rank list ordered by compare.
func NewMultiRankListFunc[K any](capacity int, mode AllocationMode, compare func(a, b K) int, opts ...Option) (*MultiRankList[K], error) {
	t, err := newTree[K, struct{}](tree.MultiRank, true, capacity, mode, compare, opts)
	if err != nil {
		return nil, err
	}
	return wrapMultiRankList(t), nil
}

func wrapMultiRankList[K any](t *tree.Tree[K, struct{}]) *MultiRankList[K] {
	return &MultiRankList[K]{base[K, struct{}]{t}, keyOps[K, struct{}]{t}, elemOps[K]{t},
		rankOps[K, struct{}]{t}, multiOps[K, struct{}]{t}}
}

// Add inserts key with a positive multiplicity count.
func (l *MultiRankList[K]) Add(key K, count int64) error {
	return l.base.t.InsertCount(key, struct{}{}, count)
}

// AtRank returns the element whose rank interval contains rank.
func (l *MultiRankList[K]) AtRank(rank int64) (K, error) {
	e, err := l.base.t.AtRank(rank)
	return e.Key, err
}

// Clone returns an independent deep copy.
func (l *MultiRankList[K]) Clone() *MultiRankList[K] {
	return wrapMultiRankList(l.base.t.Clone())
}
