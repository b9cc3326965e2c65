package tree

import (
	"github.com/cockroachdb/errors"
)

func (t *Tree[K, V]) requireRange(op string, side Side) error {
	switch t.cfg.Augmentation {
	case Range:
		if side != X {
			return errors.Wrapf(ErrInvalidArgument, "%s: side %s on one-dimensional range tree", op, side)
		}
		return nil
	case Range2:
		if side != X && side != Y {
			return errors.Wrapf(ErrInvalidArgument, "%s: unknown side %d", op, side)
		}
		return nil
	}
	return errors.Wrapf(ErrUnsupported, "%s on %s tree", op, t.cfg.Augmentation)
}

// checkLengths validates the lengths of all axes in use and clears unused ones.
func (t *Tree[K, V]) checkLengths(lengths [2]int64) ([2]int64, error) {
	axes := t.cfg.Augmentation.axes()
	for i := range lengths {
		if i >= axes {
			lengths[i] = 0
			continue
		}
		if lengths[i] <= 0 {
			return lengths, errors.Wrapf(ErrInvalidArgument, "length %d on side %s must be positive", lengths[i], Side(i))
		}
	}
	return lengths, nil
}

// checkGrowth rejects extents that would exceed the index range when removed
// lengths are replaced by added ones.
func (t *Tree[K, V]) checkGrowth(removed, added [2]int64) error {
	limit := t.cfg.IndexWidth.limit()
	for i := 0; i < t.cfg.Augmentation.axes(); i++ {
		rest := extentOf(t.root, Side(i)) - removed[i]
		if rest > limit-added[i] {
			return errors.Wrapf(ErrIndexOverflow, "extent %d + %d on side %s", rest, added[i], Side(i))
		}
	}
	return nil
}

// Extent returns the sum of all lengths along side.
func (t *Tree[K, V]) Extent(side Side) int64 {
	if side != X && side != Y {
		return 0
	}
	return extentOf(t.root, side)
}

// at returns the node starting exactly at start along side.
func (t *Tree[K, V]) at(side Side, start int64) (*node[K, V], error) {
	if start < 0 || start >= t.Extent(side) {
		return nil, errors.Wrapf(ErrNotFound, "no range starts at %d on side %s", start, side)
	}
	n, acc := t.seek(extentDim[K, V]{side: side}, start)
	if n == nil || acc != start {
		return nil, errors.Wrapf(ErrNotFound, "no range starts at %d on side %s", start, side)
	}
	return n, nil
}

// InsertRange inserts an entry with the given lengths in front of the entry
// starting at start along side, or appends it if start equals the extent.
// One-dimensional trees use lengths[X] only.
//
// start must be a range boundary; others fail with ErrNotFound, positions
// beyond the extent with ErrInvalidArgument. The tree is unchanged on failure.
func (t *Tree[K, V]) InsertRange(side Side, start int64, lengths [2]int64, value V) error {
	if err := t.requireRange("insert", side); err != nil {
		return err
	}
	lengths, err := t.checkLengths(lengths)
	if err != nil {
		return err
	}
	if start < 0 || start > t.Extent(side) {
		return errors.Wrapf(ErrInvalidArgument, "start %d outside [0,%d]", start, t.Extent(side))
	}
	if err := t.checkGrowth([2]int64{}, lengths); err != nil {
		return err
	}
	var at *node[K, V]
	if start < t.Extent(side) {
		if at, err = t.at(side, start); err != nil {
			return err
		}
	}
	var key K
	fresh, err := t.newNode(key, value, lengths)
	if err != nil {
		return err
	}
	t.linkBefore(at, fresh)
	return nil
}

// DeleteRange removes the entry starting at start along side.
func (t *Tree[K, V]) DeleteRange(side Side, start int64) error {
	if err := t.requireRange("delete", side); err != nil {
		return err
	}
	n, err := t.at(side, start)
	if err != nil {
		return err
	}
	t.unlink(n)
	return nil
}

// RangeAt returns the entry starting exactly at start along side.
func (t *Tree[K, V]) RangeAt(side Side, start int64) (Entry[K, V], error) {
	if err := t.requireRange("get", side); err != nil {
		return Entry[K, V]{}, err
	}
	n, err := t.at(side, start)
	if err != nil {
		return Entry[K, V]{}, err
	}
	t.access(n)
	return t.entryOf(n, t.coordsOf(n)), nil
}

// Locate returns the entry whose range along side contains pos.
func (t *Tree[K, V]) Locate(side Side, pos int64) (Entry[K, V], error) {
	if err := t.requireRange("locate", side); err != nil {
		return Entry[K, V]{}, err
	}
	if pos < 0 || pos >= t.Extent(side) {
		return Entry[K, V]{}, errors.Wrapf(ErrInvalidArgument, "position %d outside [0,%d)", pos, t.Extent(side))
	}
	n, _ := t.seek(extentDim[K, V]{side: side}, pos)
	assert(n != nil, "seek failed within extent")
	t.access(n)
	return t.entryOf(n, t.coordsOf(n)), nil
}

// SetLengths changes the lengths of the entry starting at start along side.
// One-dimensional trees use lengths[X] only.
func (t *Tree[K, V]) SetLengths(side Side, start int64, lengths [2]int64) error {
	if err := t.requireRange("set length", side); err != nil {
		return err
	}
	lengths, err := t.checkLengths(lengths)
	if err != nil {
		return err
	}
	n, err := t.at(side, start)
	if err != nil {
		return err
	}
	if err := t.checkGrowth(n.agg.weight, lengths); err != nil {
		return err
	}
	if n.agg.weight == lengths {
		t.access(n)
		return nil
	}
	n.agg.weight = lengths
	t.fixUp(n)
	t.version++
	t.access(n)
	return nil
}

// SetRangeValue replaces the value of the entry starting at start along side.
func (t *Tree[K, V]) SetRangeValue(side Side, start int64, value V) error {
	if err := t.requireRange("set value", side); err != nil {
		return err
	}
	if t.cfg.Valueless {
		return ErrValueless
	}
	n, err := t.at(side, start)
	if err != nil {
		return err
	}
	t.access(n)
	n.value = value
	return nil
}

// NearestLessOrEqualAt returns the start of the entry containing pos along
// side, or of the last entry if pos is beyond the extent.
func (t *Tree[K, V]) NearestLessOrEqualAt(side Side, pos int64) (int64, bool) {
	return t.nearestAt(side, pos, false, true)
}

// NearestLessAt returns the largest start < pos along side.
func (t *Tree[K, V]) NearestLessAt(side Side, pos int64) (int64, bool) {
	return t.nearestAt(side, pos, false, false)
}

// NearestGreaterOrEqualAt returns the smallest start >= pos along side.
func (t *Tree[K, V]) NearestGreaterOrEqualAt(side Side, pos int64) (int64, bool) {
	return t.nearestAt(side, pos, true, true)
}

// NearestGreaterAt returns the smallest start > pos along side.
func (t *Tree[K, V]) NearestGreaterAt(side Side, pos int64) (int64, bool) {
	return t.nearestAt(side, pos, true, false)
}

func (t *Tree[K, V]) nearestAt(side Side, pos int64, greater, orEqual bool) (int64, bool) {
	if t.requireRange("nearest", side) != nil {
		return 0, false
	}
	n := t.startBound(side, pos, greater, orEqual)
	if n == nil {
		return 0, false
	}
	t.access(n)
	return t.coordsOf(n).start[side], true
}

// startBound finds the first node with start >= pos (greater) or the last node
// with start <= pos (!greater); orEqual=false makes the comparison strict.
// It does not restructure the tree.
func (t *Tree[K, V]) startBound(side Side, pos int64, greater, orEqual bool) *node[K, V] {
	dim := extentDim[K, V]{side: side}
	var best *node[K, V]
	var acc int64
	for n := t.root; n != nil; {
		start := acc + dim.total(n.left)
		var take bool
		if greater {
			take = start > pos || (orEqual && start == pos)
		} else {
			take = start < pos || (orEqual && start == pos)
		}
		switch {
		case greater && take:
			best = n
			n = n.left
		case greater:
			acc = start + dim.own(n)
			n = n.right
		case take:
			best = n
			acc = start + dim.own(n)
			n = n.right
		default:
			n = n.left
		}
	}
	return best
}
