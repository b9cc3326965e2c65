package tree

import (
	"github.com/cockroachdb/errors"
)

// Check validates the structural invariants of the tree: key order, parent
// links, cached aggregates, the entry count, index limits and the balance
// properties of the discipline. It returns an error marked ErrCorrupted on the
// first violation found.
//
// Check is O(n) and meant for tests and debugging.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return errors.Wrap(ErrCorrupted, "nil tree")
	}
	err := t.check()
	if err != nil {
		tracer().Errorf("tree: invariant violated: %v", err)
	}
	return err
}

func (t *Tree[K, V]) check() error {
	if t.root != nil && t.root.parent != nil {
		return corrupted("root has a parent")
	}
	if t.cfg.Discipline == RedBlack && isRed(t.root) {
		return corrupted("red root")
	}
	n, _, err := t.checkNode(t.root)
	if err != nil {
		return err
	}
	if n != t.count {
		return corrupted("count %d, found %d nodes", t.count, n)
	}
	if live := t.alloc.LiveCount(); live != t.count {
		return corrupted("allocator holds %d live nodes for %d entries", live, t.count)
	}
	if err := t.checkOrder(); err != nil {
		return err
	}
	limit := t.cfg.IndexWidth.limit()
	for i := 0; i < t.cfg.Augmentation.axes(); i++ {
		if e := extentOf(t.root, Side(i)); e > limit {
			return corrupted("extent %d on side %s exceeds %d", e, Side(i), limit)
		}
	}
	return nil
}

func corrupted(format string, args ...any) error {
	return errors.Wrapf(ErrCorrupted, format, args...)
}

// checkNode verifies the subtree at n and returns its node count and its
// height (AVL) or black height (red-black).
func (t *Tree[K, V]) checkNode(n *node[K, V]) (count int, height int, err error) {
	if n == nil {
		return 0, 0, nil
	}
	if n.serial == 0 {
		return 0, 0, corrupted("released node reachable from root")
	}
	for _, c := range []*node[K, V]{n.left, n.right} {
		if c != nil && c.parent != n {
			return 0, 0, corrupted("broken parent link below %v", n.key)
		}
	}
	lc, lh, err := t.checkNode(n.left)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := t.checkNode(n.right)
	if err != nil {
		return 0, 0, err
	}
	if err := t.checkAggregate(n); err != nil {
		return 0, 0, err
	}
	count = lc + rc + 1
	switch t.cfg.Discipline {
	case AVL:
		if lh-rh > 1 || rh-lh > 1 {
			return 0, 0, corrupted("AVL balance %d at %v", rh-lh, n.key)
		}
		height = max(lh, rh) + 1
		if int(n.meta) != height {
			return 0, 0, corrupted("AVL height %d recorded as %d", height, n.meta)
		}
	case RedBlack:
		if lh != rh {
			return 0, 0, corrupted("black heights %d/%d differ", lh, rh)
		}
		if isRed(n) && (isRed(n.left) || isRed(n.right)) {
			return 0, 0, corrupted("red node with red child")
		}
		height = lh
		if !isRed(n) {
			height++
		}
	}
	return count, height, nil
}

func (t *Tree[K, V]) checkAggregate(n *node[K, V]) error {
	cached := n.agg
	t.aug.update(n)
	if n.agg != cached {
		fresh := n.agg
		n.agg = cached
		return corrupted("stale aggregate %+v, expected %+v", cached, fresh)
	}
	axes := t.cfg.Augmentation.axes()
	for i := 0; i < axes; i++ {
		if n.agg.weight[i] <= 0 {
			return corrupted("non-positive length %d on side %s", n.agg.weight[i], Side(i))
		}
	}
	return nil
}

func (t *Tree[K, V]) checkOrder() error {
	if !t.cfg.Augmentation.keyed() {
		return nil
	}
	var prev *node[K, V]
	for n := range t.inOrder() {
		if prev != nil && t.cmp(prev.key, n.key) >= 0 {
			return corrupted("keys %v and %v out of order", prev.key, n.key)
		}
		prev = n
	}
	return nil
}
