package augtree

import (
	"cmp"

	"github.com/npillmayer/augtree/tree"
	"golang.org/x/exp/constraints"
)

// Map is an ordered map.
type Map[K, V any] struct {
	base[K, V]
	keyOps[K, V]
	valueOps[K, V]
}

// NewMap creates a map with naturally ordered keys.
func NewMap[K constraints.Ordered, V any](capacity int, mode AllocationMode, opts ...Option) (*Map[K, V], error) {
	return NewMapFunc[K, V](capacity, mode, cmp.Compare[K], opts...)
}

// NewMapFunc creates a map ordered by compare.
func NewMapFunc[K, V any](capacity int, mode AllocationMode, compare func(a, b K) int, opts ...Option) (*Map[K, V], error) {
	t, err := newTree[K, V](tree.None, false, capacity, mode, compare, opts)
	if err != nil {
		return nil, err
	}
	return wrapMap(t), nil
}

func wrapMap[K, V any](t *tree.Tree[K, V]) *Map[K, V] {
	return &Map[K, V]{base[K, V]{t}, keyOps[K, V]{t}, valueOps[K, V]{t}}
}

// Add inserts key with value. It fails with ErrDuplicateKey if key is present.
func (m *Map[K, V]) Add(key K, value V) error {
	return m.base.t.Insert(key, value)
}

// Clone returns an independent deep copy.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return wrapMap(m.base.t.Clone())
}

// List is an ordered set of elements.
type List[K any] struct {
	base[K, struct{}]
	keyOps[K, struct{}]
	elemOps[K]
}

// NewList creates a list of naturally ordered elements.
func NewList[K constraints.Ordered](capacity int, mode AllocationMode, opts ...Option) (*List[K], error) {
	return NewListFunc[K](capacity, mode, cmp.Compare[K], opts...)
}

// NewListFunc creates a list ordered by compare.
func NewListFunc[K any](capacity int, mode AllocationMode, compare func(a, b K) int, opts ...Option) (*List[K], error) {
	t, err := newTree[K, struct{}](tree.None, true, capacity, mode, compare, opts)
	if err != nil {
		return nil, err
	}
	return wrapList(t), nil
}

func wrapList[K any](t *tree.Tree[K, struct{}]) *List[K] {
	return &List[K]{base[K, struct{}]{t}, keyOps[K, struct{}]{t}, elemOps[K]{t}}
}

// Add inserts key. It fails with ErrDuplicateKey if key is present.
func (l *List[K]) Add(key K) error {
	return l.base.t.Insert(key, struct{}{})
}

// Clone returns an independent deep copy.
func (l *List[K]) Clone() *List[K] {
	return wrapList(l.base.t.Clone())
}
