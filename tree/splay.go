package tree

// splay is the self-adjusting discipline: every successful access moves the
// accessed node to the root. Lookups therefore restructure the tree and
// advance its version, which invalidates Fast enumerators. This is intended.
type splay[K, V any] struct{}

func (splay[K, V]) discipline() Discipline { return Splay }

func (b splay[K, V]) inserted(t *Tree[K, V], n *node[K, V]) {
	b.splay(t, n)
}

func (b splay[K, V]) accessed(t *Tree[K, V], n *node[K, V]) {
	b.splay(t, n)
}

// remove splays n to the root and joins its subtrees: the maximum of the left
// subtree is splayed to the top of that subtree and adopts the right subtree.
func (b splay[K, V]) remove(t *Tree[K, V], n *node[K, V]) {
	b.splay(t, n)
	assert(t.root == n, "splayed node is not the root")
	l, r := n.left, n.right
	n.left, n.right = nil, nil
	if l == nil {
		t.root = r
		if r != nil {
			r.parent = nil
		}
		return
	}
	l.parent = nil
	t.root = l
	m := rightmost(l)
	b.splay(t, m)
	assert(t.root == m && m.right == nil, "join: maximum not at root")
	m.right = r
	if r != nil {
		r.parent = m
	}
	t.aug.update(m)
}

// splay rotates x up until it is the root, using zig, zig-zig and zig-zag steps.
func (b splay[K, V]) splay(t *Tree[K, V], x *node[K, V]) {
	for x.parent != nil {
		p := x.parent
		g := p.parent
		switch {
		case g == nil:
			b.lift(t, x)
		case (x == p.left) == (p == g.left):
			b.lift(t, p)
			b.lift(t, x)
		default:
			b.lift(t, x)
			b.lift(t, x)
		}
	}
}

// lift rotates x above its parent.
func (splay[K, V]) lift(t *Tree[K, V], x *node[K, V]) {
	if x == x.parent.left {
		t.rotateRight(x.parent)
	} else {
		t.rotateLeft(x.parent)
	}
}
