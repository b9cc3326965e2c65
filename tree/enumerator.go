package tree

import (
	"fmt"
	"iter"

	"github.com/cockroachdb/errors"
)

// Entry is a snapshot of one tree entry.
//
// Depending on the augmentation, Rank holds the rank (Rank) or the start of
// the rank interval (MultiRank), Count the multiplicity, and Start/Length the
// position and length per axis (Range, Range2). Fields not maintained by the
// augmentation are zero.
type Entry[K, V any] struct {
	Key    K
	Value  V
	Rank   int64
	Count  int64
	Start  [2]int64
	Length [2]int64
	// link back to the producing enumerator, nil for lookup results
	enum   *Enumerator[K, V]
	node   *node[K, V]
	serial uint64
	step   uint64
}

func (e Entry[K, V]) String() string {
	return fmt.Sprintf("{key=%v value=%v rank=%d count=%d start=%v length=%v}",
		e.Key, e.Value, e.Rank, e.Count, e.Start, e.Length)
}

// entryOf creates an entry for n located at c.
func (t *Tree[K, V]) entryOf(n *node[K, V], c coords) Entry[K, V] {
	e := Entry[K, V]{
		Key:    n.key,
		Value:  n.value,
		serial: n.serial,
		node:   n,
	}
	switch t.cfg.Augmentation {
	case Rank:
		e.Rank, e.Count = c.rank, 1
	case MultiRank:
		e.Rank, e.Count = c.start[X], n.agg.weight[X]
	case Range:
		e.Start[X], e.Length[X] = c.start[X], n.agg.weight[X]
	case Range2:
		e.Start, e.Length = c.start, n.agg.weight
	}
	return e
}

// SetValue replaces the value of the entry in its tree.
//
// It fails with ErrValueless for list kinds. For Default and Fast
// enumerators the entry must be the enumerator's current entry and the tree
// must not have changed since it was yielded; otherwise ErrStaleEntry is
// returned. Entries of Robust enumerators stay settable as long as their
// entry is present in the tree.
func (e *Entry[K, V]) SetValue(value V) error {
	en := e.enum
	if en == nil || e.node == nil {
		return errors.Wrap(ErrStaleEntry, "entry was not produced by an enumerator")
	}
	if en.tree.cfg.Valueless {
		return ErrValueless
	}
	if !isLive(e.node, e.serial) {
		return errors.Wrap(ErrStaleEntry, "entry has been removed")
	}
	if en.mode != Robust {
		if en.state != positioned || en.step != e.step {
			return errors.Wrap(ErrStaleEntry, "enumerator has moved past entry")
		}
		if en.version != en.tree.version {
			return errors.Wrap(ErrStaleEntry, "tree modified since entry was yielded")
		}
	}
	e.node.value = value
	e.Value = value
	if en.state == positioned && en.step == e.step {
		en.entry.Value = value
	}
	return nil
}

// --- Enumerator ------------------------------------------------------------

// EnumMode selects the consistency class of an enumerator.
type EnumMode int8

const (
	// Default walks a path snapshot taken at creation. Behavior under
	// mutation is best effort.
	Default EnumMode = iota
	// Fast fails with ErrModified on the first step after any mutation.
	Fast
	// Robust re-synchronizes after mutations and never fails.
	Robust
)

func (m EnumMode) String() string {
	switch m {
	case Default:
		return "Default"
	case Fast:
		return "Fast"
	case Robust:
		return "Robust"
	}
	return fmt.Sprintf("EnumMode(%d)", int8(m))
}

type enumState int8

const (
	notStarted enumState = iota
	positioned
	exhausted
	failed
)

type boundKind int8

const (
	unbounded boundKind = iota
	keyBound
	positionBound
)

type enumOptions struct {
	mode    EnumMode
	reverse bool
	bound   boundKind
	side    Side
	pos     int64
}

// EnumOption configures an enumerator.
type EnumOption func(*enumOptions)

// WithMode selects the consistency class.
func WithMode(mode EnumMode) EnumOption {
	return func(o *enumOptions) {
		o.mode = mode
	}
}

// Reverse enumerates in descending order.
func Reverse() EnumOption {
	return func(o *enumOptions) {
		o.reverse = true
	}
}

// StartAtPosition starts a range enumeration at the first entry whose start
// along side is >= pos (reverse: the last entry with start <= pos).
func StartAtPosition(side Side, pos int64) EnumOption {
	return func(o *enumOptions) {
		o.bound = positionBound
		o.side = side
		o.pos = pos
	}
}

// Enumerator iterates over the entries of a tree.
//
//	e := t.Enumerate(WithMode(Fast))
//	for {
//	    ok, err := e.MoveNext()
//	    if err != nil || !ok {
//	        break
//	    }
//	    use(e.Current())
//	}
type Enumerator[K, V any] struct {
	tree     *Tree[K, V]
	mode     EnumMode
	reverse  bool
	bound    boundKind
	key      K
	side     Side
	pos      int64
	version  uint64
	state    enumState
	err      error
	setupErr error
	stack    []*node[K, V] // Default and Fast: pending nodes, top is next
	cur      *node[K, V]   // last yielded node
	serial   uint64        // serial of cur when yielded
	at       coords        // coordinates of cur
	prev     *node[K, V]   // Robust: node yielded before cur
	prevSer  uint64
	next     *node[K, V]   // Robust: neighbor of cur in traversal direction when cur was yielded
	nextSer  uint64
	step     uint64
	entry    Entry[K, V]
}

// Enumerate creates an enumerator over all entries.
func (t *Tree[K, V]) Enumerate(opts ...EnumOption) *Enumerator[K, V] {
	var key K
	return t.newEnumerator(key, opts)
}

// EnumerateFrom creates an enumerator for a keyed tree starting at the first
// entry with key >= key (reverse: the last entry with key <= key).
func (t *Tree[K, V]) EnumerateFrom(key K, opts ...EnumOption) *Enumerator[K, V] {
	opts = append(opts, func(o *enumOptions) { o.bound = keyBound })
	return t.newEnumerator(key, opts)
}

func (t *Tree[K, V]) newEnumerator(key K, opts []EnumOption) *Enumerator[K, V] {
	var o enumOptions
	for _, opt := range opts {
		opt(&o)
	}
	e := &Enumerator[K, V]{
		tree:    t,
		mode:    o.mode,
		reverse: o.reverse,
		bound:   o.bound,
		key:     key,
		side:    o.side,
		pos:     o.pos,
	}
	switch e.bound {
	case keyBound:
		e.setupErr = t.requireKeyed("enumerate from key")
	case positionBound:
		e.setupErr = t.requireRange("enumerate from position", e.side)
	}
	e.Reset()
	return e
}

// Mode returns the enumerator's consistency class.
func (e *Enumerator[K, V]) Mode() EnumMode {
	return e.mode
}

// Err returns the error that stopped the enumerator, if any.
func (e *Enumerator[K, V]) Err() error {
	return e.err
}

// Reset rewinds the enumerator to its start and takes a new version snapshot.
func (e *Enumerator[K, V]) Reset() {
	e.version = e.tree.version
	e.state = notStarted
	e.err = nil
	e.cur, e.serial = nil, 0
	e.prev, e.prevSer = nil, 0
	e.next, e.nextSer = nil, 0
	e.step = 0
	e.entry = Entry[K, V]{}
	e.stack = e.stack[:0]
	if e.setupErr != nil {
		e.state, e.err = failed, e.setupErr
		return
	}
	if e.mode != Robust {
		e.pushStart()
	}
}

// Current returns the current entry. Before the first step and after the
// end it returns the zero entry.
func (e *Enumerator[K, V]) Current() Entry[K, V] {
	return e.entry
}

// MoveNext advances to the next entry. It returns false at the end. Stepping
// past the end keeps returning false without error.
//
// A Fast enumerator returns ErrModified if the tree changed since the
// enumerator was created or reset, and keeps failing afterwards.
func (e *Enumerator[K, V]) MoveNext() (bool, error) {
	switch e.state {
	case exhausted:
		return false, nil
	case failed:
		return false, e.err
	}
	if e.mode == Fast && e.version != e.tree.version {
		e.state = failed
		e.entry = Entry[K, V]{}
		e.err = errors.Wrapf(ErrModified, "version %d, enumerator expected %d", e.tree.version, e.version)
		tracer().Debugf("tree: fast enumerator invalidated at step %d", e.step)
		return false, e.err
	}
	var n *node[K, V]
	if e.mode == Robust {
		n = e.robustNext()
	} else {
		n = e.stackNext()
	}
	if n == nil {
		e.state = exhausted
		e.cur, e.serial = nil, 0
		e.entry = Entry[K, V]{}
		return false, nil
	}
	if e.mode == Robust {
		e.prev, e.prevSer = e.cur, e.serial
		e.next, e.nextSer = e.step1(n), 0
		if e.next != nil {
			e.nextSer = e.next.serial
		}
	}
	e.cur, e.serial = n, n.serial
	e.state = positioned
	e.step++
	e.entry = e.tree.entryOf(n, e.at)
	e.entry.enum = e
	e.entry.step = e.step
	return true, nil
}

// All returns an iterator over the remaining entries. An enumeration error is
// yielded once with a zero entry, then iteration stops.
func (e *Enumerator[K, V]) All() iter.Seq2[Entry[K, V], error] {
	return func(yield func(Entry[K, V], error) bool) {
		for {
			ok, err := e.MoveNext()
			if err != nil {
				yield(Entry[K, V]{}, err)
				return
			}
			if !ok || !yield(e.Current(), nil) {
				return
			}
		}
	}
}

// --- Stack traversal (Default, Fast) -----------------------------------------

// pushStart builds the path to the first node to yield. Nodes on the stack
// are pending; the top is the next node.
func (e *Enumerator[K, V]) pushStart() {
	t := e.tree
	var acc int64
	dim := extentDim[K, V]{side: e.side}
	for n := t.root; n != nil; {
		var take bool
		switch e.bound {
		case unbounded:
			take = true
		case keyBound:
			c := t.cmp(n.key, e.key)
			take = c >= 0
			if e.reverse {
				take = c <= 0
			}
		case positionBound:
			start := acc + dim.total(n.left)
			take = start >= e.pos
			if e.reverse {
				take = start <= e.pos
			}
			if take == e.reverse {
				acc = start + dim.own(n)
			}
		}
		if take {
			e.stack = append(e.stack, n)
			if e.reverse {
				n = n.right
			} else {
				n = n.left
			}
		} else if e.reverse {
			n = n.left
		} else {
			n = n.right
		}
	}
}

// pushSpine pushes n and its spine towards the next node in traversal direction.
func (e *Enumerator[K, V]) pushSpine(n *node[K, V]) {
	for n != nil {
		e.stack = append(e.stack, n)
		if e.reverse {
			n = n.right
		} else {
			n = n.left
		}
	}
}

func (e *Enumerator[K, V]) stackNext() *node[K, V] {
	k := len(e.stack)
	if k == 0 {
		return nil
	}
	n := e.stack[k-1]
	e.stack[k-1] = nil
	e.stack = e.stack[:k-1]
	if n.serial == 0 {
		// released during a Default enumeration
		e.stack = e.stack[:0]
		return nil
	}
	if e.reverse {
		e.pushSpine(n.left)
	} else {
		e.pushSpine(n.right)
	}
	e.advanceCoords(n)
	return n
}

// advanceCoords moves e.at from e.cur to n, the next node in traversal order.
func (e *Enumerator[K, V]) advanceCoords(n *node[K, V]) {
	switch {
	case e.cur == nil || e.version != e.tree.version:
		e.at = e.tree.coordsOf(n)
	case e.reverse:
		e.at = before(e.at, n)
	default:
		e.at = after(e.at, e.cur)
	}
}

// --- Robust traversal ------------------------------------------------------

func (e *Enumerator[K, V]) robustNext() *node[K, V] {
	t := e.tree
	var n *node[K, V]
	switch {
	case e.state == notStarted:
		n = e.first()
	case e.version == t.version:
		n = e.step1(e.cur)
	case isLive(e.cur, e.serial):
		tracer().Debugf("tree: robust enumerator resyncs from live node")
		n = e.step1(e.cur)
	default:
		tracer().Debugf("tree: robust enumerator resyncs by search")
		n = e.resync()
	}
	if n != nil {
		if e.state == notStarted || e.version != t.version {
			e.at = t.coordsOf(n)
		} else if e.reverse {
			e.at = before(e.at, n)
		} else {
			e.at = after(e.at, e.cur)
		}
	}
	e.version = t.version
	return n
}

func (e *Enumerator[K, V]) step1(n *node[K, V]) *node[K, V] {
	if e.reverse {
		return predecessor(n)
	}
	return successor(n)
}

// first finds the start node without restructuring the tree.
func (e *Enumerator[K, V]) first() *node[K, V] {
	t := e.tree
	switch e.bound {
	case keyBound:
		if e.reverse {
			return t.upperBound(e.key, true)
		}
		return t.lowerBound(e.key, true)
	case positionBound:
		return t.startBound(e.side, e.pos, !e.reverse, true)
	}
	if e.reverse {
		return rightmost(t.root)
	}
	return leftmost(t.root)
}

// resync locates the node following the removed last-yielded entry and
// accesses it, which splays it on splay trees.
//
// Keyed trees search by the last key. Range trees have no stable key: they
// continue at the neighbor recorded when the entry was yielded, else behind
// the entry yielded before it. Only if both are gone they search by the
// former start position, which is exact as long as nothing in front of the
// cursor was removed.
func (e *Enumerator[K, V]) resync() (n *node[K, V]) {
	t := e.tree
	defer func() { t.access(n) }()
	if t.cfg.Augmentation.keyed() {
		if e.reverse {
			return t.upperBound(e.entry.Key, false)
		}
		return t.lowerBound(e.entry.Key, false)
	}
	if isLive(e.next, e.nextSer) {
		return e.next
	}
	if isLive(e.prev, e.prevSer) {
		return e.step1(e.prev)
	}
	side := X
	if t.cfg.Augmentation == Range2 {
		side = e.side
	}
	last := e.entry.Start[side]
	if e.reverse {
		return t.startBound(side, last, false, false)
	}
	return t.startBound(side, last, true, true)
}

// Entries returns a snapshot of all entries in order. It does not
// restructure the tree.
func (t *Tree[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.count)
	var c coords
	var prev *node[K, V]
	for n := range t.inOrder() {
		if prev != nil {
			c = after(c, prev)
		}
		entries = append(entries, t.entryOf(n, c))
		prev = n
	}
	return entries
}
