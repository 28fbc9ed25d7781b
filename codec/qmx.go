package codec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/docpack/qmx"
)

// QMX is the default codec: per-group minimal bit widths with a selector
// stream and a side list of exceptions. See package qmx for the wire format.
type QMX struct{}

var _ Codec = QMX{}

// Name implements Codec.
func (QMX) Name() string { return "qmx" }

// Bound implements Codec.
func (QMX) Bound(n int) int { return qmx.Bound(n) }

// Encode implements Codec.
func (QMX) Encode(dst []byte, deltas []uint32) (int, error) {
	n, err := qmx.Encode(dst, deltas)
	if err != nil {
		return 0, translateQMX(err)
	}
	return n, nil
}

// Decode implements Codec.
func (QMX) Decode(dst []uint32, src []byte) error {
	return translateQMX(qmx.Decode(dst, src))
}

// translateQMX unifies qmx sentinel errors with the codec taxonomy.
func translateQMX(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, qmx.ErrCapacity) {
		return fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	if errors.Is(err, qmx.ErrCorrupt) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return err
}
