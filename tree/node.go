package tree

const (
	black int8 = 0
	red   int8 = 1
)

// aggregate holds the augmentation fields of a node.
//
// weight is the node's own multiplicity (MultiRank) or length (Range, Range2)
// per axis, extent the sum of weights over the subtree. count is the number of
// nodes in the subtree.
type aggregate struct {
	count  int
	weight [2]int64
	extent [2]int64
}

type node[K, V any] struct {
	left, right, parent *node[K, V]
	key                 K
	value               V
	// meta is the subtree height for AVL and the color for red-black trees.
	meta int8
	// serial identifies a live node; released slots are zeroed to serial 0.
	serial uint64
	agg    aggregate
}

func sizeOf[K, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.agg.count
}

func extentOf[K, V any](n *node[K, V], side Side) int64 {
	if n == nil {
		return 0
	}
	return n.agg.extent[side]
}

func leftmost[K, V any](n *node[K, V]) *node[K, V] {
	for n != nil && n.left != nil {
		n = n.left
	}
	return n
}

func rightmost[K, V any](n *node[K, V]) *node[K, V] {
	for n != nil && n.right != nil {
		n = n.right
	}
	return n
}

// successor returns the in-order successor of n, following parent links.
func successor[K, V any](n *node[K, V]) *node[K, V] {
	if n.right != nil {
		return leftmost(n.right)
	}
	p := n.parent
	for p != nil && n == p.right {
		n, p = p, p.parent
	}
	return p
}

// predecessor returns the in-order predecessor of n, following parent links.
func predecessor[K, V any](n *node[K, V]) *node[K, V] {
	if n.left != nil {
		return rightmost(n.left)
	}
	p := n.parent
	for p != nil && n == p.left {
		n, p = p, p.parent
	}
	return p
}
