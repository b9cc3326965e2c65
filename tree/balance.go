package tree

// balancer is the capability interface of a rebalancing discipline.
//
// inserted is called after a fresh leaf n has been linked and the aggregates
// on its path are valid. remove detaches n from the tree, leaving all
// aggregates valid; the caller releases n. accessed is called after a
// successful lookup of n.
type balancer[K, V any] interface {
	discipline() Discipline
	inserted(t *Tree[K, V], n *node[K, V])
	remove(t *Tree[K, V], n *node[K, V])
	accessed(t *Tree[K, V], n *node[K, V])
}

func newBalancer[K, V any](d Discipline) balancer[K, V] {
	switch d {
	case RedBlack:
		return redBlack[K, V]{}
	case Splay:
		return splay[K, V]{}
	}
	return avl[K, V]{}
}

// detach removes n, which may have two children, from the tree by structural
// transplant: if n has two children, its in-order successor takes n's place,
// so no payload moves between nodes. It returns the lowest node whose subtree
// changed (nil if the tree is now empty or n was the root with at most one
// child), and the node that replaced n (possibly nil).
func (t *Tree[K, V]) detach(n *node[K, V]) (from, replacement *node[K, V]) {
	switch {
	case n.left == nil:
		from, replacement = n.parent, n.right
		t.transplant(n, n.right)
	case n.right == nil:
		from, replacement = n.parent, n.left
		t.transplant(n, n.left)
	default:
		y := leftmost(n.right)
		if y.parent == n {
			from = y
		} else {
			from = y.parent
			t.transplant(y, y.right)
			y.right = n.right
			y.right.parent = y
		}
		t.transplant(n, y)
		y.left = n.left
		y.left.parent = y
		y.meta = n.meta
		replacement = y
	}
	n.left, n.right, n.parent = nil, nil, nil
	return from, replacement
}
