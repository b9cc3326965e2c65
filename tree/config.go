package tree

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/augtree/alloc"
)

// Discipline selects the rebalancing algorithm.
type Discipline int8

const (
	AVL Discipline = iota
	RedBlack
	Splay
)

func (d Discipline) String() string {
	switch d {
	case AVL:
		return "AVL"
	case RedBlack:
		return "RedBlack"
	case Splay:
		return "Splay"
	}
	return fmt.Sprintf("Discipline(%d)", int8(d))
}

// Augmentation selects the aggregate fields maintained per node.
type Augmentation int8

const (
	// None keeps key order only.
	None Augmentation = iota
	// Rank maintains subtree sizes for order statistics.
	Rank
	// MultiRank maintains subtree sizes and the sum of per-entry multiplicities.
	MultiRank
	// Range maintains cumulative lengths of keyless entries.
	Range
	// Range2 maintains two independent cumulative lengths, one per Side.
	Range2
)

func (a Augmentation) String() string {
	switch a {
	case None:
		return "None"
	case Rank:
		return "Rank"
	case MultiRank:
		return "MultiRank"
	case Range:
		return "Range"
	case Range2:
		return "Range2"
	}
	return fmt.Sprintf("Augmentation(%d)", int8(a))
}

// keyed reports whether entries are addressed by key.
func (a Augmentation) keyed() bool {
	return a == None || a == Rank || a == MultiRank
}

// axes returns the number of length axes a node carries.
func (a Augmentation) axes() int {
	switch a {
	case MultiRank, Range:
		return 1
	case Range2:
		return 2
	}
	return 0
}

// Side names an axis of a two-dimensional range tree.
type Side int8

const (
	X Side = iota
	Y
)

func (s Side) String() string {
	if s == Y {
		return "Y"
	}
	return "X"
}

// IndexWidth selects the representable range of positions and ranks.
type IndexWidth int8

const (
	// Index32 limits cumulative lengths to math.MaxInt32.
	Index32 IndexWidth = iota
	// Index64 limits cumulative lengths to math.MaxInt64.
	Index64
)

func (w IndexWidth) limit() int64 {
	if w == Index64 {
		return math.MaxInt64
	}
	return math.MaxInt32
}

// Config configures a tree.
type Config struct {
	Discipline   Discipline
	Augmentation Augmentation
	// Allocation selects the node reuse policy.
	Allocation alloc.Mode
	// Storage selects linked or contiguous node storage.
	Storage alloc.Storage
	// Capacity is honored only for alloc.PreallocatedFixed.
	Capacity   int
	IndexWidth IndexWidth
	// Valueless marks list kinds whose entries carry no distinct value.
	Valueless bool
}

func (cfg Config) normalized() Config {
	if cfg.Allocation != alloc.PreallocatedFixed {
		cfg.Capacity = 0
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.Discipline < AVL || cfg.Discipline > Splay {
		return errors.Wrapf(ErrInvalidConfig, "unknown discipline %d", cfg.Discipline)
	}
	if cfg.Augmentation < None || cfg.Augmentation > Range2 {
		return errors.Wrapf(ErrInvalidConfig, "unknown augmentation %d", cfg.Augmentation)
	}
	if cfg.IndexWidth != Index32 && cfg.IndexWidth != Index64 {
		return errors.Wrapf(ErrInvalidConfig, "unknown index width %d", cfg.IndexWidth)
	}
	if cfg.Allocation == alloc.Discard && cfg.Storage == alloc.Array {
		return errors.Wrap(ErrInvalidConfig, "array storage cannot be combined with Discard allocation")
	}
	if cfg.Capacity < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative capacity %d", cfg.Capacity)
	}
	return nil
}

func (cfg Config) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", cfg.Discipline, cfg.Augmentation, cfg.Allocation, cfg.Storage)
}
