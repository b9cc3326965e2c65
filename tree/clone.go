package tree

// Clone returns an independent deep copy with the same configuration, shape
// and contents. Values are copied by assignment. The clone starts at
// version 0 and gets its own allocator; a fixed-capacity clone has the full
// capacity of the original.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	c := &Tree[K, V]{
		cfg:   t.cfg,
		cmp:   t.cmp,
		alloc: t.alloc.CloneEmpty(),
		bal:   t.bal,
		aug:   t.aug,
	}
	c.root = c.copySubtree(t.root, nil)
	c.count = t.count
	tracer().Debugf("tree: cloned %d entries (%s)", c.count, c.cfg)
	return c
}

func (t *Tree[K, V]) copySubtree(n, parent *node[K, V]) *node[K, V] {
	if n == nil {
		return nil
	}
	m, err := t.alloc.Allocate()
	// the clone's capacity equals the original's, which holds all of n's nodes
	assert(err == nil, "clone allocation failed")
	t.serials++
	m.key, m.value = n.key, n.value
	m.meta = n.meta
	m.agg = n.agg
	m.serial = t.serials
	m.parent = parent
	m.left = t.copySubtree(n.left, m)
	m.right = t.copySubtree(n.right, m)
	return m
}
