package docpack

import (
	"errors"
	"fmt"

	"github.com/hupe1980/docpack/codec"
)

var (
	// ErrCapacity indicates an output buffer too small for the operation.
	// Recoverable: resize (EstimateCapacity for encode buffers, the declared
	// count for decode buffers) and retry.
	ErrCapacity = errors.New("insufficient output capacity")

	// ErrCorrupt indicates a compressed block that is truncated, malformed,
	// or inconsistent with its declared count. Not recoverable: discard or
	// re-fetch the block.
	ErrCorrupt = errors.New("compressed block corrupt")

	// ErrUnsorted indicates input that is not strictly ascending.
	ErrUnsorted = errors.New("document ids not strictly ascending")
)

// CapacityError reports an undersized output buffer.
//
// The original underlying error (if any) can be accessed via errors.Unwrap;
// errors.Is(err, ErrCapacity) holds.
type CapacityError struct {
	Need  int
	Have  int
	cause error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient output capacity: need %d, have %d", e.Need, e.Have)
}

func (e *CapacityError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return ErrCapacity
}

// Is reports whether target matches the capacity taxonomy.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// OrderError reports the first position where input stops being strictly
// ascending.
//
// errors.Is(err, ErrUnsorted) holds.
type OrderError struct {
	Index int
	Prev  uint32
	Curr  uint32
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("document ids not strictly ascending: ids[%d]=%d after ids[%d]=%d", e.Index, e.Curr, e.Index-1, e.Prev)
}

func (e *OrderError) Unwrap() error { return ErrUnsorted }

// translateError unifies codec-level errors with the package taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, codec.ErrCapacity) {
		return fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	if errors.Is(err, codec.ErrCorrupt) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return err
}
