package alloc

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument signals an invalid allocator configuration.
	ErrInvalidArgument = errors.New("alloc: invalid argument")
	// ErrCapacityExhausted signals that a fixed-capacity allocator has no free slot.
	// It is an expected condition: releasing a slot makes the next Allocate succeed.
	ErrCapacityExhausted = errors.New("alloc: capacity exhausted")
)
