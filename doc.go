/*
Package augtree offers ordered maps, lists and range maps on top of
self-balancing, augmented binary search trees.

Trees

All facades of this package share one engine (package tree), configured by a
balancing discipline (AVL, RedBlack or Splay), an augmentation and an
allocation mode for nodes:

	Map, List                    key order only
	RankMap, RankList            order statistics: entry at rank, rank of key
	MultiRankMap, MultiRankList  ranks with multiplicities: an entry covers
	                             the rank interval [start, start+count)
	RangeMap, RangeList          keyless entries with a positive length; an
	                             entry starts where its predecessor ends
	Range2Map, Range2List        like RangeMap with two independent lengths,
	                             one per Side

Every constructor takes a capacity and an allocation mode. The capacity is
honored for PreallocatedFixed only: a fixed tree accepts exactly capacity
entries and rejects the next insert with ErrCapacityExhausted, leaving the
tree unchanged. Discard drops released nodes, RetainFreelist recycles them.

	m, err := augtree.NewMap[string, int](0, augtree.RetainFreelist,
	    augtree.WithDiscipline(augtree.RedBlack))

Enumeration

Enumerators come in three consistency classes. Default walks a snapshot of
the path and is best effort under mutation. Fast fails with ErrModified as
soon as the tree changed. Robust re-synchronizes with the tree and continues.
Splay trees restructure on lookups, therefore a lookup alone invalidates Fast
enumerators of a splay tree.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package augtree

import (
	"github.com/npillmayer/augtree/alloc"
	"github.com/npillmayer/augtree/tree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// AllocationMode selects how a tree obtains and recycles its nodes.
type AllocationMode = alloc.Mode

const (
	Discard           = alloc.Discard
	RetainFreelist    = alloc.RetainFreelist
	PreallocatedFixed = alloc.PreallocatedFixed
)

// Storage selects linked or contiguous node storage.
type Storage = alloc.Storage

const (
	Linked = alloc.Linked
	Array  = alloc.Array
)

type (
	Discipline = tree.Discipline
	Side       = tree.Side
	IndexWidth = tree.IndexWidth
	EnumMode   = tree.EnumMode
	EnumOption = tree.EnumOption
)

const (
	AVL      = tree.AVL
	RedBlack = tree.RedBlack
	Splay    = tree.Splay

	X = tree.X
	Y = tree.Y

	Index32 = tree.Index32
	Index64 = tree.Index64

	Default = tree.Default
	Fast    = tree.Fast
	Robust  = tree.Robust
)

// Entry is a snapshot of a tree entry, see tree.Entry.
type Entry[K, V any] = tree.Entry[K, V]

// Enumerator iterates over the entries of a tree, see tree.Enumerator.
type Enumerator[K, V any] = tree.Enumerator[K, V]

// Enumerator options.
var (
	WithMode        = tree.WithMode
	Reverse         = tree.Reverse
	StartAtPosition = tree.StartAtPosition
)

// Errors, to be tested with errors.Is.
var (
	ErrInvalidArgument   = tree.ErrInvalidArgument
	ErrInvalidConfig     = tree.ErrInvalidConfig
	ErrUnsupported       = tree.ErrUnsupported
	ErrDuplicateKey      = tree.ErrDuplicateKey
	ErrNotFound          = tree.ErrNotFound
	ErrCapacityExhausted = tree.ErrCapacityExhausted
	ErrIndexOverflow     = tree.ErrIndexOverflow
	ErrModified          = tree.ErrModified
	ErrStaleEntry        = tree.ErrStaleEntry
	ErrValueless         = tree.ErrValueless
	ErrCorrupted         = tree.ErrCorrupted
)
