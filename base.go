package augtree

import (
	"io"

	"github.com/npillmayer/augtree/tree"
)

// base carries the operations common to all facades.
type base[K, V any] struct {
	t *tree.Tree[K, V]
}

// Count returns the number of entries.
func (b base[K, V]) Count() int { return b.t.Count() }

// IsEmpty reports whether there are no entries.
func (b base[K, V]) IsEmpty() bool { return b.t.IsEmpty() }

// Clear removes all entries.
func (b base[K, V]) Clear() { b.t.Clear() }

// Version returns the tree's mutation counter.
func (b base[K, V]) Version() uint64 { return b.t.Version() }

// Capacity returns the capacity of a fixed tree and -1 otherwise.
func (b base[K, V]) Capacity() int { return b.t.Capacity() }

// Discipline returns the balancing discipline.
func (b base[K, V]) Discipline() Discipline { return b.t.Config().Discipline }

// Enumerate creates an enumerator over all entries.
func (b base[K, V]) Enumerate(opts ...EnumOption) *Enumerator[K, V] {
	return b.t.Enumerate(opts...)
}

// Entries returns a read-only snapshot of all entries in order.
func (b base[K, V]) Entries() []Entry[K, V] { return b.t.Entries() }

// Check validates the internal invariants.
func (b base[K, V]) Check() error { return b.t.Check() }

// Dump writes an outline of the tree to w.
func (b base[K, V]) Dump(w io.Writer) error { return b.t.Dump(w) }

// ToDot writes the tree in Graphviz DOT format to w.
func (b base[K, V]) ToDot(w io.Writer) error { return b.t.ToDot(w) }

// --- Keyed operations ------------------------------------------------------

type keyOps[K, V any] struct {
	t *tree.Tree[K, V]
}

// Remove deletes key or fails with ErrNotFound.
func (o keyOps[K, V]) Remove(key K) error { return o.t.Remove(key) }

// ContainsKey reports whether key is present.
func (o keyOps[K, V]) ContainsKey(key K) bool { return o.t.Contains(key) }

func (o keyOps[K, V]) NearestLessOrEqual(key K) (K, bool)    { return o.t.NearestLessOrEqual(key) }
func (o keyOps[K, V]) NearestLess(key K) (K, bool)           { return o.t.NearestLess(key) }
func (o keyOps[K, V]) NearestGreaterOrEqual(key K) (K, bool) { return o.t.NearestGreaterOrEqual(key) }
func (o keyOps[K, V]) NearestGreater(key K) (K, bool)        { return o.t.NearestGreater(key) }

// EnumerateFrom creates an enumerator starting at the first key >= key
// (reverse: the last key <= key).
func (o keyOps[K, V]) EnumerateFrom(key K, opts ...EnumOption) *Enumerator[K, V] {
	return o.t.EnumerateFrom(key, opts...)
}

// valueOps are the operations of keyed facades with values.
type valueOps[K, V any] struct {
	t *tree.Tree[K, V]
}

// TryGetValue returns the value for key, if present.
func (o valueOps[K, V]) TryGetValue(key K) (V, bool) {
	v, err := o.t.Find(key)
	return v, err == nil
}

// Get returns the value for key or fails with ErrNotFound.
func (o valueOps[K, V]) Get(key K) (V, error) { return o.t.Find(key) }

// SetValue replaces the value for key.
func (o valueOps[K, V]) SetValue(key K, value V) error { return o.t.SetValue(key, value) }

// Min returns the smallest key and its value.
func (o valueOps[K, V]) Min() (K, V, bool) { return o.t.Min() }

// Max returns the largest key and its value.
func (o valueOps[K, V]) Max() (K, V, bool) { return o.t.Max() }

// elemOps are the operations of keyed list facades, where the key is the element.
type elemOps[K any] struct {
	t *tree.Tree[K, struct{}]
}

// Min returns the smallest element.
func (o elemOps[K]) Min() (K, bool) {
	k, _, ok := o.t.Min()
	return k, ok
}

// Max returns the largest element.
func (o elemOps[K]) Max() (K, bool) {
	k, _, ok := o.t.Max()
	return k, ok
}

// rankOps are the operations of Rank and MultiRank facades.
type rankOps[K, V any] struct {
	t *tree.Tree[K, V]
}

// RankOf returns the rank of key. For MultiRank facades this is the start of
// the key's rank interval.
func (o rankOps[K, V]) RankOf(key K) (int64, error) {
	e, err := o.t.RankOf(key)
	return e.Rank, err
}

// RankCount returns the size of the rank space.
func (o rankOps[K, V]) RankCount() int64 { return o.t.RankCount() }

// EntryAtRank returns the entry whose rank interval contains rank.
func (o rankOps[K, V]) EntryAtRank(rank int64) (Entry[K, V], error) {
	return o.t.AtRank(rank)
}
