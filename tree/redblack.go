package tree

// redBlack keeps the red-black properties: the root is black, no red node has
// a red parent, and all root-to-nil paths have the same number of black nodes.
// Colors are stored in node.meta; fresh nodes are zeroed, i.e. black.
type redBlack[K, V any] struct{}

func (redBlack[K, V]) discipline() Discipline { return RedBlack }

func isRed[K, V any](n *node[K, V]) bool {
	return n != nil && n.meta == red
}

func (redBlack[K, V]) accessed(*Tree[K, V], *node[K, V]) {}

func (redBlack[K, V]) inserted(t *Tree[K, V], n *node[K, V]) {
	n.meta = red
	for isRed(n.parent) {
		p := n.parent
		g := p.parent // a red node is never the root
		if p == g.left {
			if u := g.right; isRed(u) {
				p.meta, u.meta, g.meta = black, black, red
				n = g
				continue
			}
			if n == p.right {
				n = p
				t.rotateLeft(n)
				p = n.parent
			}
			p.meta, g.meta = black, red
			t.rotateRight(g)
		} else {
			if u := g.left; isRed(u) {
				p.meta, u.meta, g.meta = black, black, red
				n = g
				continue
			}
			if n == p.left {
				n = p
				t.rotateRight(n)
				p = n.parent
			}
			p.meta, g.meta = black, red
			t.rotateLeft(g)
		}
	}
	t.root.meta = black
}

func (b redBlack[K, V]) remove(t *Tree[K, V], z *node[K, V]) {
	removedColor := z.meta
	var x, xParent *node[K, V]
	switch {
	case z.left == nil:
		x, xParent = z.right, z.parent
		t.transplant(z, z.right)
	case z.right == nil:
		x, xParent = z.left, z.parent
		t.transplant(z, z.left)
	default:
		y := leftmost(z.right)
		removedColor = y.meta
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.meta = z.meta
	}
	z.left, z.right, z.parent = nil, nil, nil
	t.fixUp(xParent)
	if removedColor == black {
		b.repair(t, x, xParent)
	}
}

// repair resolves a double-black deficit at x, whose parent is xParent. x may
// be nil, which is why its parent is tracked separately.
func (redBlack[K, V]) repair(t *Tree[K, V], x, xParent *node[K, V]) {
	for x != t.root && !isRed(x) {
		if x == xParent.left {
			w := xParent.right
			if isRed(w) {
				w.meta, xParent.meta = black, red
				t.rotateLeft(xParent)
				w = xParent.right
			}
			if !isRed(w.left) && !isRed(w.right) {
				w.meta = red
				x, xParent = xParent, xParent.parent
				continue
			}
			if !isRed(w.right) {
				w.left.meta, w.meta = black, red
				t.rotateRight(w)
				w = xParent.right
			}
			w.meta, xParent.meta = xParent.meta, black
			w.right.meta = black
			t.rotateLeft(xParent)
			x, xParent = t.root, nil
		} else {
			w := xParent.left
			if isRed(w) {
				w.meta, xParent.meta = black, red
				t.rotateRight(xParent)
				w = xParent.left
			}
			if !isRed(w.left) && !isRed(w.right) {
				w.meta = red
				x, xParent = xParent, xParent.parent
				continue
			}
			if !isRed(w.left) {
				w.right.meta, w.meta = black, red
				t.rotateLeft(w)
				w = xParent.left
			}
			w.meta, xParent.meta = xParent.meta, black
			w.left.meta = black
			t.rotateRight(xParent)
			x, xParent = t.root, nil
		}
	}
	if x != nil {
		x.meta = black
	}
}
