package tree

import (
	"github.com/cockroachdb/errors"
)

func (t *Tree[K, V]) requireKeyed(op string) error {
	if !t.cfg.Augmentation.keyed() {
		return errors.Wrapf(ErrUnsupported, "%s on %s tree", op, t.cfg.Augmentation)
	}
	return nil
}

func (t *Tree[K, V]) requireRanked(op string) error {
	if a := t.cfg.Augmentation; a != Rank && a != MultiRank {
		return errors.Wrapf(ErrUnsupported, "%s on %s tree", op, a)
	}
	return nil
}

// Insert adds key with value. For MultiRank trees the entry gets multiplicity 1.
//
// Insert fails with ErrDuplicateKey if key is present and with
// ErrCapacityExhausted if a fixed-capacity tree is full. The tree is
// unchanged on failure.
func (t *Tree[K, V]) Insert(key K, value V) error {
	return t.InsertCount(key, value, 1)
}

// InsertCount adds key with value and multiplicity count. count must be
// positive; it is significant for MultiRank trees only.
func (t *Tree[K, V]) InsertCount(key K, value V, count int64) error {
	if err := t.requireKeyed("insert"); err != nil {
		return err
	}
	if count <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "count %d must be positive", count)
	}
	var weight [2]int64
	if t.cfg.Augmentation == MultiRank {
		if t.RankCount() > t.cfg.IndexWidth.limit()-count {
			return errors.Wrapf(ErrIndexOverflow, "rank space %d + %d", t.RankCount(), count)
		}
		weight[X] = count
	}
	n, parent, asLeft := t.search(key)
	if n != nil {
		return ErrDuplicateKey
	}
	fresh, err := t.newNode(key, value, weight)
	if err != nil {
		return err
	}
	t.link(parent, asLeft, fresh)
	return nil
}

// Remove deletes the entry for key or fails with ErrNotFound.
func (t *Tree[K, V]) Remove(key K) error {
	if err := t.requireKeyed("remove"); err != nil {
		return err
	}
	n, _, _ := t.search(key)
	if n == nil {
		return ErrNotFound
	}
	t.unlink(n)
	return nil
}

// Find returns the value stored for key or fails with ErrNotFound.
func (t *Tree[K, V]) Find(key K) (V, error) {
	var zero V
	if err := t.requireKeyed("find"); err != nil {
		return zero, err
	}
	n, _, _ := t.search(key)
	if n == nil {
		return zero, ErrNotFound
	}
	t.access(n)
	return n.value, nil
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	_, err := t.Find(key)
	return err == nil
}

// SetValue replaces the value stored for key. It is not a structural change.
func (t *Tree[K, V]) SetValue(key K, value V) error {
	if err := t.requireKeyed("set value"); err != nil {
		return err
	}
	if t.cfg.Valueless {
		return ErrValueless
	}
	n, _, _ := t.search(key)
	if n == nil {
		return ErrNotFound
	}
	t.access(n)
	n.value = value
	return nil
}

// Min returns the smallest key with its value.
func (t *Tree[K, V]) Min() (K, V, bool) {
	return t.bound(leftmost(t.root))
}

// Max returns the largest key with its value.
func (t *Tree[K, V]) Max() (K, V, bool) {
	return t.bound(rightmost(t.root))
}

func (t *Tree[K, V]) bound(n *node[K, V]) (key K, value V, ok bool) {
	if n == nil || !t.cfg.Augmentation.keyed() {
		return
	}
	key, value = n.key, n.value
	t.access(n)
	return key, value, true
}

// NearestLessOrEqual returns the largest key <= key.
func (t *Tree[K, V]) NearestLessOrEqual(key K) (K, bool) {
	return t.neighbor(t.upperBound, key, true)
}

// NearestLess returns the largest key < key.
func (t *Tree[K, V]) NearestLess(key K) (K, bool) {
	return t.neighbor(t.upperBound, key, false)
}

// NearestGreaterOrEqual returns the smallest key >= key.
func (t *Tree[K, V]) NearestGreaterOrEqual(key K) (K, bool) {
	return t.neighbor(t.lowerBound, key, true)
}

// NearestGreater returns the smallest key > key.
func (t *Tree[K, V]) NearestGreater(key K) (K, bool) {
	return t.neighbor(t.lowerBound, key, false)
}

func (t *Tree[K, V]) neighbor(find func(K, bool) *node[K, V], key K, orEqual bool) (K, bool) {
	var zero K
	if !t.cfg.Augmentation.keyed() {
		return zero, false
	}
	n := find(key, orEqual)
	if n == nil {
		return zero, false
	}
	t.access(n)
	return n.key, true
}

// --- Rank and MultiRank ----------------------------------------------------

// RankCount returns the size of the rank space: the number of entries for
// Rank trees and the sum of all multiplicities for MultiRank trees.
func (t *Tree[K, V]) RankCount() int64 {
	if t.cfg.Augmentation == MultiRank {
		return extentOf(t.root, X)
	}
	return int64(t.count)
}

// AtRank returns the entry whose rank interval contains rank. For Rank trees
// that is the entry with exactly rank predecessors.
func (t *Tree[K, V]) AtRank(rank int64) (Entry[K, V], error) {
	if err := t.requireRanked("rank lookup"); err != nil {
		return Entry[K, V]{}, err
	}
	if rank < 0 || rank >= t.RankCount() {
		return Entry[K, V]{}, errors.Wrapf(ErrInvalidArgument, "rank %d out of bounds [0,%d)", rank, t.RankCount())
	}
	n, _ := t.seek(t.rankDim(), rank)
	assert(n != nil, "rank seek failed within bounds")
	t.access(n)
	return t.entryOf(n, t.coordsOf(n)), nil
}

// RankOf returns the entry for key, carrying its rank (start of its rank
// interval for MultiRank) and multiplicity.
func (t *Tree[K, V]) RankOf(key K) (Entry[K, V], error) {
	if err := t.requireRanked("rank of key"); err != nil {
		return Entry[K, V]{}, err
	}
	n, _, _ := t.search(key)
	if n == nil {
		return Entry[K, V]{}, ErrNotFound
	}
	t.access(n)
	return t.entryOf(n, t.coordsOf(n)), nil
}

// CountOf returns the multiplicity of key in a MultiRank tree.
func (t *Tree[K, V]) CountOf(key K) (int64, error) {
	if t.cfg.Augmentation != MultiRank {
		return 0, errors.Wrapf(ErrUnsupported, "count of key on %s tree", t.cfg.Augmentation)
	}
	n, _, _ := t.search(key)
	if n == nil {
		return 0, ErrNotFound
	}
	t.access(n)
	return n.agg.weight[X], nil
}

// AdjustCount adds delta to the multiplicity of key in a MultiRank tree and
// returns the new multiplicity. An entry whose multiplicity drops to zero is
// removed; a negative result is rejected with ErrInvalidArgument.
func (t *Tree[K, V]) AdjustCount(key K, delta int64) (int64, error) {
	if t.cfg.Augmentation != MultiRank {
		return 0, errors.Wrapf(ErrUnsupported, "adjust count on %s tree", t.cfg.Augmentation)
	}
	n, _, _ := t.search(key)
	if n == nil {
		return 0, ErrNotFound
	}
	current := n.agg.weight[X]
	if delta < -current {
		return current, errors.Wrapf(ErrInvalidArgument, "count %d%+d would be negative", current, delta)
	}
	if delta > 0 && t.RankCount() > t.cfg.IndexWidth.limit()-delta {
		return current, errors.Wrapf(ErrIndexOverflow, "rank space %d%+d", t.RankCount(), delta)
	}
	if delta == 0 {
		return current, nil
	}
	if current+delta == 0 {
		t.unlink(n)
		return 0, nil
	}
	n.agg.weight[X] = current + delta
	t.fixUp(n)
	t.version++
	t.access(n)
	return current + delta, nil
}
