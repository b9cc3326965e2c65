package tree

// avl keeps |height(left) - height(right)| <= 1 at every node. Node heights are
// stored in node.meta, a leaf has height 1.
type avl[K, V any] struct{}

func (avl[K, V]) discipline() Discipline { return AVL }

func height[K, V any](n *node[K, V]) int8 {
	if n == nil {
		return 0
	}
	return n.meta
}

func fixHeight[K, V any](n *node[K, V]) {
	n.meta = 1 + max(height(n.left), height(n.right))
}

func (b avl[K, V]) inserted(t *Tree[K, V], n *node[K, V]) {
	n.meta = 1
	b.retrace(t, n.parent)
}

func (b avl[K, V]) remove(t *Tree[K, V], n *node[K, V]) {
	from, _ := t.detach(n)
	t.fixUp(from)
	b.retrace(t, from)
}

func (avl[K, V]) accessed(*Tree[K, V], *node[K, V]) {}

// retrace walks from n to the root, repairing heights and rotating wherever
// the balance invariant is violated. Rotations keep aggregates valid.
func (b avl[K, V]) retrace(t *Tree[K, V], n *node[K, V]) {
	for n != nil {
		fixHeight(n)
		switch bf := height(n.left) - height(n.right); {
		case bf > 1:
			if height(n.left.left) < height(n.left.right) {
				b.rotateLeft(t, n.left)
			}
			n = b.rotateRight(t, n)
		case bf < -1:
			if height(n.right.right) < height(n.right.left) {
				b.rotateRight(t, n.right)
			}
			n = b.rotateLeft(t, n)
		}
		n = n.parent
	}
}

// rotateLeft rotates and repairs heights; it returns the new subtree root.
func (avl[K, V]) rotateLeft(t *Tree[K, V], x *node[K, V]) *node[K, V] {
	t.rotateLeft(x)
	fixHeight(x)
	fixHeight(x.parent)
	return x.parent
}

func (avl[K, V]) rotateRight(t *Tree[K, V], x *node[K, V]) *node[K, V] {
	t.rotateRight(x)
	fixHeight(x)
	fixHeight(x.parent)
	return x.parent
}
