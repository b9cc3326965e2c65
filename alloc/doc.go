/*
Package alloc provides node storage for the search trees of package tree.

An Allocator hands out pointers to zero-valued node slots and takes them back
when a tree removes entries. Three allocation modes are supported:

  - Discard: every allocation creates fresh storage, released slots are left
    to the garbage collector.
  - RetainFreelist: released slots are kept on a free list and reused before
    new storage is requested. Capacity is unbounded.
  - PreallocatedFixed: storage for a fixed number of slots is reserved up
    front. Allocations beyond that capacity fail with ErrCapacityExhausted.

Slots come either from individually allocated objects (Linked storage) or from
contiguous slabs (Array storage). Array storage cannot give slots back to the
runtime one by one, so it requires a reuse policy and refuses Discard mode.

Allocators are not safe for concurrent use.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package alloc

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
