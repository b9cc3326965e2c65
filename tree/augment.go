package tree

// augmenter maintains the aggregate fields of a node.
//
// update recomputes n's aggregate from its own weight and the cached
// aggregates of its immediate children. It must run in O(1).
type augmenter[K, V any] interface {
	kind() Augmentation
	update(n *node[K, V])
}

func newAugmenter[K, V any](a Augmentation) augmenter[K, V] {
	switch a {
	case Rank:
		return rankAug[K, V]{}
	case MultiRank:
		return multiRankAug[K, V]{}
	case Range:
		return rangeAug[K, V]{}
	case Range2:
		return range2Aug[K, V]{}
	}
	return noAug[K, V]{}
}

type noAug[K, V any] struct{}

func (noAug[K, V]) kind() Augmentation   { return None }
func (noAug[K, V]) update(n *node[K, V]) {}

type rankAug[K, V any] struct{}

func (rankAug[K, V]) kind() Augmentation { return Rank }
func (rankAug[K, V]) update(n *node[K, V]) {
	n.agg.count = 1 + sizeOf(n.left) + sizeOf(n.right)
}

type multiRankAug[K, V any] struct{}

func (multiRankAug[K, V]) kind() Augmentation { return MultiRank }
func (multiRankAug[K, V]) update(n *node[K, V]) {
	n.agg.count = 1 + sizeOf(n.left) + sizeOf(n.right)
	n.agg.extent[X] = n.agg.weight[X] + extentOf(n.left, X) + extentOf(n.right, X)
}

type rangeAug[K, V any] struct{}

func (rangeAug[K, V]) kind() Augmentation { return Range }
func (rangeAug[K, V]) update(n *node[K, V]) {
	n.agg.extent[X] = n.agg.weight[X] + extentOf(n.left, X) + extentOf(n.right, X)
}

type range2Aug[K, V any] struct{}

func (range2Aug[K, V]) kind() Augmentation { return Range2 }
func (range2Aug[K, V]) update(n *node[K, V]) {
	n.agg.extent[X] = n.agg.weight[X] + extentOf(n.left, X) + extentOf(n.right, X)
	n.agg.extent[Y] = n.agg.weight[Y] + extentOf(n.left, Y) + extentOf(n.right, Y)
}

// --- Dimensions ------------------------------------------------------------

// dimension describes a seek dimension over node aggregates: the number of
// nodes (rank) or the cumulative length along one axis.
type dimension[K, V any] interface {
	// total returns the dimension's sum over the subtree rooted at n (n may be nil).
	total(n *node[K, V]) int64
	// own returns the contribution of n itself.
	own(n *node[K, V]) int64
}

type countDim[K, V any] struct{}

func (countDim[K, V]) total(n *node[K, V]) int64 { return int64(sizeOf(n)) }
func (countDim[K, V]) own(n *node[K, V]) int64   { return 1 }

type extentDim[K, V any] struct{ side Side }

func (d extentDim[K, V]) total(n *node[K, V]) int64 { return extentOf(n, d.side) }
func (d extentDim[K, V]) own(n *node[K, V]) int64   { return n.agg.weight[d.side] }

// rankDim returns the dimension used for rank queries.
func (t *Tree[K, V]) rankDim() dimension[K, V] {
	if t.cfg.Augmentation == MultiRank {
		return extentDim[K, V]{side: X}
	}
	return countDim[K, V]{}
}

// seek finds the node whose span along dim contains target, together with the
// accumulated dimension before that node. It returns nil if target is
// negative or not less than the dimension's total.
func (t *Tree[K, V]) seek(dim dimension[K, V], target int64) (*node[K, V], int64) {
	if target < 0 {
		return nil, 0
	}
	var acc int64
	n := t.root
	for n != nil {
		left := dim.total(n.left)
		if target < left {
			n = n.left
			continue
		}
		target -= left
		acc += left
		own := dim.own(n)
		if target < own {
			return n, acc
		}
		target -= own
		acc += own
		n = n.right
	}
	return nil, acc
}

// coords holds the position of a node along every dimension.
type coords struct {
	rank  int64
	start [2]int64
}

// coordsOf computes the position of n by climbing to the root.
func (t *Tree[K, V]) coordsOf(n *node[K, V]) coords {
	var c coords
	c.rank = int64(sizeOf(n.left))
	c.start[X] = extentOf(n.left, X)
	c.start[Y] = extentOf(n.left, Y)
	for p := n; p.parent != nil; p = p.parent {
		if q := p.parent; p == q.right {
			c.rank += int64(sizeOf(q.left)) + 1
			c.start[X] += extentOf(q.left, X) + q.agg.weight[X]
			c.start[Y] += extentOf(q.left, Y) + q.agg.weight[Y]
		}
	}
	return c
}

// after returns the coordinates of the in-order successor of n, given the
// coordinates c of n.
func after[K, V any](c coords, n *node[K, V]) coords {
	c.rank++
	c.start[X] += n.agg.weight[X]
	c.start[Y] += n.agg.weight[Y]
	return c
}

// before returns the coordinates of prev, the in-order predecessor of the node
// at coordinates c.
func before[K, V any](c coords, prev *node[K, V]) coords {
	c.rank--
	c.start[X] -= prev.agg.weight[X]
	c.start[Y] -= prev.agg.weight[Y]
	return c
}
