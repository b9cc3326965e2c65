package tree

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/augtree/alloc"
)

var (
	// ErrInvalidArgument signals an invalid parameter: non-positive length or
	// count, negative or out-of-bounds position.
	ErrInvalidArgument = errors.New("tree: invalid argument")
	// ErrInvalidConfig signals an incompatible tree configuration.
	ErrInvalidConfig = errors.New("tree: invalid configuration")
	// ErrUnsupported signals an operation the configured augmentation does not provide.
	ErrUnsupported = errors.New("tree: operation not supported by augmentation")
	// ErrDuplicateKey signals an insert of a key that is already present.
	ErrDuplicateKey = errors.New("tree: duplicate key")
	// ErrNotFound signals a key, rank or start position without entry.
	ErrNotFound = errors.New("tree: not found")
	// ErrCapacityExhausted signals that a fixed-capacity tree is full.
	ErrCapacityExhausted = alloc.ErrCapacityExhausted
	// ErrIndexOverflow signals that a cumulative length would leave the index range.
	ErrIndexOverflow = errors.New("tree: index overflow")
	// ErrModified signals that a tree was modified during a Fast enumeration.
	ErrModified = errors.New("tree: modified during enumeration")
	// ErrStaleEntry signals a write through an entry that is no longer current.
	ErrStaleEntry = errors.New("tree: stale entry")
	// ErrValueless signals a value write on a tree kind without values.
	ErrValueless = errors.New("tree: entries carry no value")
	// ErrCorrupted signals a violated structural invariant (see Check).
	ErrCorrupted = errors.New("tree: invariant violated")
)
