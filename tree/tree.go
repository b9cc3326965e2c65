package tree

import (
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/augtree/alloc"
)

// Tree is a self-balancing binary search tree.
//
// K is the key type of keyed trees (Augmentation None, Rank, MultiRank); range
// trees ignore keys and are usually instantiated with K = struct{}. V is the
// value type.
type Tree[K, V any] struct {
	cfg     Config
	cmp     func(a, b K) int
	root    *node[K, V]
	count   int
	version uint64
	serials uint64 // last serial handed out
	alloc   *alloc.Allocator[node[K, V]]
	bal     balancer[K, V]
	aug     augmenter[K, V]
}

// New creates an empty tree with validated configuration. Configuration
// errors match both ErrInvalidConfig and ErrInvalidArgument.
//
// cmp orders keys and is required for keyed augmentations. It must return a
// negative number, zero or a positive number if a is less than, equal to or
// greater than b. Range trees take a nil cmp.
func New[K, V any](cfg Config, cmp func(a, b K) int) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		tracer().Debugf("tree: rejecting configuration %s: %v", cfg, err)
		return nil, errors.Mark(err, ErrInvalidArgument)
	}
	cfg = cfg.normalized()
	if cfg.Augmentation.keyed() && cmp == nil {
		err := errors.Wrapf(ErrInvalidConfig, "augmentation %s requires a key comparison", cfg.Augmentation)
		return nil, errors.Mark(err, ErrInvalidArgument)
	}
	a, err := alloc.New[node[K, V]](cfg.Allocation, cfg.Storage, cfg.Capacity)
	if err != nil {
		err = errors.Mark(errors.Wrap(err, "tree: allocator"), ErrInvalidConfig)
		return nil, errors.Mark(err, ErrInvalidArgument)
	}
	return &Tree[K, V]{
		cfg:   cfg,
		cmp:   cmp,
		alloc: a,
		bal:   newBalancer[K, V](cfg.Discipline),
		aug:   newAugmenter[K, V](cfg.Augmentation),
	}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[K, V]) Config() Config {
	return t.cfg
}

// Count returns the number of entries.
func (t *Tree[K, V]) Count() int {
	return t.count
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.root == nil
}

// Version returns the mutation counter. It increases with every structural
// change and never decreases.
func (t *Tree[K, V]) Version() uint64 {
	return t.version
}

// Capacity returns the node capacity for fixed allocation and -1 otherwise.
func (t *Tree[K, V]) Capacity() int {
	return t.alloc.Capacity()
}

// AllocStats reports the allocator's live slots, free-list length and the
// number of slots ever created.
func (t *Tree[K, V]) AllocStats() (live, free, created int) {
	return t.alloc.LiveCount(), t.alloc.FreeCount(), t.alloc.Created()
}

// Clear removes all entries and returns their nodes to the allocator.
func (t *Tree[K, V]) Clear() {
	if t.root == nil {
		return
	}
	t.alloc.Clear(t.postOrder)
	t.root = nil
	t.count = 0
	t.version++
}

// postOrder yields every node after both of its subtrees. A node may be
// destroyed by the consumer as soon as it has been yielded.
func (t *Tree[K, V]) postOrder(yield func(*node[K, V]) bool) {
	var walk func(n *node[K, V]) bool
	walk = func(n *node[K, V]) bool {
		if n == nil {
			return true
		}
		l, r := n.left, n.right
		return walk(l) && walk(r) && yield(n)
	}
	walk(t.root)
}

// inOrder returns an iterator over all nodes in order.
func (t *Tree[K, V]) inOrder() iter.Seq[*node[K, V]] {
	return func(yield func(*node[K, V]) bool) {
		for n := leftmost(t.root); n != nil; n = successor(n) {
			if !yield(n) {
				return
			}
		}
	}
}

// --- Node management -------------------------------------------------------

// newNode allocates a node. All argument checks must have happened before, as
// allocation is the last step allowed to fail.
func (t *Tree[K, V]) newNode(key K, value V, weight [2]int64) (*node[K, V], error) {
	n, err := t.alloc.Allocate()
	if err != nil {
		return nil, err
	}
	t.serials++
	n.key = key
	n.value = value
	n.serial = t.serials
	n.agg.weight = weight
	return n, nil
}

// link attaches a fresh node n as a child of parent (or as root if parent is
// nil), restores aggregates along the path and rebalances.
func (t *Tree[K, V]) link(parent *node[K, V], asLeft bool, n *node[K, V]) {
	n.parent = parent
	switch {
	case parent == nil:
		assert(t.root == nil, "link to nil parent in non-empty tree")
		t.root = n
	case asLeft:
		assert(parent.left == nil, "link to occupied left slot")
		parent.left = n
	default:
		assert(parent.right == nil, "link to occupied right slot")
		parent.right = n
	}
	t.count++
	t.version++
	t.fixUp(n)
	t.bal.inserted(t, n)
}

// linkBefore attaches n as the in-order predecessor of at, or as the last
// node if at is nil.
func (t *Tree[K, V]) linkBefore(at *node[K, V], n *node[K, V]) {
	if at == nil {
		t.link(rightmost(t.root), false, n)
		return
	}
	if at.left == nil {
		t.link(at, true, n)
		return
	}
	t.link(rightmost(at.left), false, n)
}

// unlink removes n from the tree and releases its node.
func (t *Tree[K, V]) unlink(n *node[K, V]) {
	t.bal.remove(t, n)
	t.count--
	t.version++
	t.alloc.Release(n)
}

// fixUp recomputes aggregates from n up to the root.
func (t *Tree[K, V]) fixUp(n *node[K, V]) {
	for ; n != nil; n = n.parent {
		t.aug.update(n)
	}
}

// replaceChild puts v into the slot of parent that held u, or makes v the root
// if parent is nil. v's parent link is set; u's is left untouched.
func (t *Tree[K, V]) replaceChild(parent, u, v *node[K, V]) {
	switch {
	case parent == nil:
		t.root = v
	case parent.left == u:
		parent.left = v
	default:
		assert(parent.right == u, "replaceChild: u is not a child of parent")
		parent.right = v
	}
	if v != nil {
		v.parent = parent
	}
}

// transplant replaces the subtree rooted at u by the subtree rooted at v.
func (t *Tree[K, V]) transplant(u, v *node[K, V]) {
	t.replaceChild(u.parent, u, v)
}

// rotateLeft lifts x's right child above x.
//
//	  x              y
//	 / \            / \
//	a   y    =>    x   c
//	   / \        / \
//	  b   c      a   b
//
// Only x and y change their subtrees, so their aggregates are recomputed
// bottom-up; ancestors keep theirs.
func (t *Tree[K, V]) rotateLeft(x *node[K, V]) {
	y := x.right
	assert(y != nil, "rotateLeft without right child")
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	t.replaceChild(x.parent, x, y)
	y.left = x
	x.parent = y
	t.aug.update(x)
	t.aug.update(y)
	t.version++
}

// rotateRight lifts x's left child above x. It mirrors rotateLeft.
func (t *Tree[K, V]) rotateRight(x *node[K, V]) {
	y := x.left
	assert(y != nil, "rotateRight without left child")
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	t.replaceChild(x.parent, x, y)
	y.right = x
	x.parent = y
	t.aug.update(x)
	t.aug.update(y)
	t.version++
}

// --- Lookup primitives -----------------------------------------------------

// search finds the node holding key. If absent, it returns nil and the last
// node visited, which is the parent for an insert of key, together with the
// side to link on.
func (t *Tree[K, V]) search(key K) (n *node[K, V], parent *node[K, V], asLeft bool) {
	n = t.root
	for n != nil {
		c := t.cmp(key, n.key)
		if c == 0 {
			return n, n.parent, false
		}
		parent = n
		asLeft = c < 0
		if asLeft {
			n = n.left
		} else {
			n = n.right
		}
	}
	return nil, parent, asLeft
}

// lowerBound returns the first node with key >= key (orEqual) or key > key.
func (t *Tree[K, V]) lowerBound(key K, orEqual bool) *node[K, V] {
	var best *node[K, V]
	for n := t.root; n != nil; {
		c := t.cmp(n.key, key)
		if c > 0 || (orEqual && c == 0) {
			best = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return best
}

// upperBound returns the last node with key <= key (orEqual) or key < key.
func (t *Tree[K, V]) upperBound(key K, orEqual bool) *node[K, V] {
	var best *node[K, V]
	for n := t.root; n != nil; {
		c := t.cmp(n.key, key)
		if c < 0 || (orEqual && c == 0) {
			best = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return best
}

// access signals a successful lookup of n to the balancer. Splay trees move n
// to the root.
func (t *Tree[K, V]) access(n *node[K, V]) {
	if n != nil {
		t.bal.accessed(t, n)
	}
}

// isLive reports whether n still is the node that was handed out with serial.
func isLive[K, V any](n *node[K, V], serial uint64) bool {
	return n != nil && serial != 0 && n.serial == serial
}
