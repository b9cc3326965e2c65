package alloc

import (
	"fmt"
	"iter"

	"github.com/cockroachdb/errors"
)

// Mode selects the slot reuse policy of an allocator.
type Mode int8

const (
	// Discard never reuses released slots.
	Discard Mode = iota
	// RetainFreelist keeps released slots on a free list.
	RetainFreelist
	// PreallocatedFixed reserves a fixed number of slots up front.
	PreallocatedFixed
)

func (m Mode) String() string {
	switch m {
	case Discard:
		return "Discard"
	case RetainFreelist:
		return "RetainFreelist"
	case PreallocatedFixed:
		return "PreallocatedFixed"
	}
	return fmt.Sprintf("Mode(%d)", int8(m))
}

// Storage selects how fresh slots are created.
type Storage int8

const (
	// Linked storage creates every slot as an individual heap object.
	Linked Storage = iota
	// Array storage carves slots out of contiguous slabs.
	Array
)

func (s Storage) String() string {
	switch s {
	case Linked:
		return "Linked"
	case Array:
		return "Array"
	}
	return fmt.Sprintf("Storage(%d)", int8(s))
}

const (
	minSlab = 16
	maxSlab = 4096
)

// Allocator owns node slots of type T.
//
// Slots handed out by Allocate are zero-valued. Release zeroes a slot before
// it is dropped or put on the free list, so stale references observe a zero
// value instead of a recycled node.
type Allocator[T any] struct {
	mode      Mode
	storage   Storage
	capacity  int
	free      []*T // free list, used as a stack
	slab      []T  // current slab for Array storage; slots slab[:used] are handed out
	used      int
	live      int
	highWater int
	created   int // number of slots ever created
}

// New creates an allocator.
//
// capacity is honored only for PreallocatedFixed and must not be negative.
// Array storage together with Discard mode is rejected with ErrInvalidArgument.
func New[T any](mode Mode, storage Storage, capacity int) (*Allocator[T], error) {
	if mode < Discard || mode > PreallocatedFixed {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown allocation mode %d", mode)
	}
	if storage != Linked && storage != Array {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown storage kind %d", storage)
	}
	if mode == Discard && storage == Array {
		return nil, errors.Wrap(ErrInvalidArgument, "array storage requires a slot reuse policy, not Discard")
	}
	if mode != PreallocatedFixed {
		capacity = 0
	} else if capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative capacity %d", capacity)
	}
	a := &Allocator[T]{
		mode:     mode,
		storage:  storage,
		capacity: capacity,
	}
	a.reserve()
	return a, nil
}

// reserve sets up the up-front storage of a fixed-capacity allocator.
func (a *Allocator[T]) reserve() {
	if a.mode != PreallocatedFixed || a.capacity == 0 {
		return
	}
	a.free = make([]*T, 0, a.capacity)
	if a.storage == Array {
		a.slab = make([]T, a.capacity)
		a.used = 0
		return
	}
	// Linked: create every slot now, push in reverse so slots pop in creation order
	slots := make([]*T, a.capacity)
	for i := range slots {
		slots[i] = new(T)
	}
	for i := len(slots) - 1; i >= 0; i-- {
		a.free = append(a.free, slots[i])
	}
	a.created = a.capacity
}

// Mode returns the allocation mode.
func (a *Allocator[T]) Mode() Mode { return a.mode }

// Storage returns the storage kind.
func (a *Allocator[T]) Storage() Storage { return a.storage }

// Capacity returns the slot capacity of a PreallocatedFixed allocator and -1
// for the unbounded modes.
func (a *Allocator[T]) Capacity() int {
	if a.mode != PreallocatedFixed {
		return -1
	}
	return a.capacity
}

// LiveCount returns the number of slots currently handed out.
func (a *Allocator[T]) LiveCount() int { return a.live }

// FreeCount returns the number of released slots waiting for reuse.
func (a *Allocator[T]) FreeCount() int { return len(a.free) }

// HighWater returns the maximum number of slots that were live at the same time.
func (a *Allocator[T]) HighWater() int { return a.highWater }

// Created returns the number of slots the allocator ever requested from the
// runtime. For reusing modes it never exceeds HighWater.
func (a *Allocator[T]) Created() int { return a.created }

// Allocate returns a zero-valued slot.
//
// For PreallocatedFixed, Allocate fails with ErrCapacityExhausted when all
// slots are live. The allocator is left unchanged on failure.
func (a *Allocator[T]) Allocate() (*T, error) {
	if a.mode == PreallocatedFixed && a.live >= a.capacity {
		tracer().Debugf("alloc: capacity %d exhausted", a.capacity)
		return nil, errors.Wrapf(ErrCapacityExhausted, "%d of %d slots live", a.live, a.capacity)
	}
	var p *T
	if n := len(a.free); n > 0 {
		p = a.free[n-1]
		a.free[n-1] = nil
		a.free = a.free[:n-1]
	} else {
		p = a.fresh()
	}
	a.live++
	if a.live > a.highWater {
		a.highWater = a.live
	}
	return p, nil
}

// fresh creates a new slot according to the storage kind.
func (a *Allocator[T]) fresh() *T {
	a.created++
	if a.storage == Linked {
		return new(T)
	}
	if a.used == len(a.slab) {
		size := minSlab
		if len(a.slab) > 0 {
			size = min(2*len(a.slab), maxSlab)
		}
		a.slab = make([]T, size)
		a.used = 0
	}
	p := &a.slab[a.used]
	a.used++
	return p
}

// Release returns a slot to the allocator. The slot is zeroed.
//
// Release always succeeds; for the reusing modes the slot is immediately
// available to the next Allocate.
func (a *Allocator[T]) Release(p *T) {
	if p == nil {
		return
	}
	if a.live <= 0 {
		panic(errors.AssertionFailedf("alloc: release without live slots"))
	}
	var zero T
	*p = zero
	a.live--
	if a.mode != Discard {
		a.free = append(a.free, p)
	}
}

// Clear takes back all slots produced by slots, which must enumerate every
// live slot exactly once. Afterwards LiveCount is zero.
func (a *Allocator[T]) Clear(slots iter.Seq[*T]) {
	var zero T
	n := 0
	if slots != nil {
		for p := range slots {
			*p = zero
			if a.mode != Discard {
				a.free = append(a.free, p)
			}
			n++
		}
	}
	if n != a.live {
		panic(errors.AssertionFailedf("alloc: clear returned %d slots, %d were live", n, a.live))
	}
	a.live = 0
}

// CloneEmpty returns a new allocator with the same mode, storage kind and
// capacity. No storage or free-list entry is shared with a.
func (a *Allocator[T]) CloneEmpty() *Allocator[T] {
	b := &Allocator[T]{
		mode:     a.mode,
		storage:  a.storage,
		capacity: a.capacity,
	}
	b.reserve()
	return b
}

func (a *Allocator[T]) String() string {
	capacity := "unbounded"
	if a.mode == PreallocatedFixed {
		capacity = fmt.Sprintf("%d", a.capacity)
	}
	return fmt.Sprintf("allocator{%s/%s, cap=%s, live=%d, free=%d}",
		a.mode, a.storage, capacity, a.live, len(a.free))
}
