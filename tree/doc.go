/*
Package tree provides a family of self-balancing binary search trees with
pluggable augmentation, node allocation and versioned enumeration.

One engine, Tree[K,V], is parameterized at construction time by

  - a balancing discipline: AVL, RedBlack or Splay,
  - an augmentation: None (key order only), Rank (order statistics),
    MultiRank (ranks with multiplicities), Range (one-dimensional
    cumulative lengths) or Range2 (two independent axes X and Y),
  - an allocation mode and storage kind for nodes (see package alloc).

Every rotation recomputes the aggregates of the two rotated nodes from their
children's cached aggregates, so all indexed operations stay O(log n)
(amortized for Splay).

Keyed trees are ordered by a comparison function. Range trees have no keys:
the start position of an entry is the sum of the lengths of all preceding
entries.

Versioning:
  - every structural change increments Tree.Version, including the rotations a
    splay tree performs on plain lookups,
  - Fast enumerators fail with ErrModified once the version moved,
  - Robust enumerators re-synchronize and continue,
  - Default enumerators walk a path snapshot and are best effort.

Trees are not safe for concurrent use.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package tree

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(errors.AssertionFailedf("tree: %s", msg))
	}
}
