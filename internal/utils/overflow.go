package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two uint64 values would overflow.
// Returns an error if overflow would occur.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}

	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}

	return nil
}

// ValidatePayloadLength checks a length claimed by a str/bin/ext header against the number of bytes actually remaining in the input. This
// is the decoder's defense against an allocation-bomb header — a handful of
// header bytes claiming a multi-gigabyte payload the input could never
// actually contain.
func ValidatePayloadLength(claimed uint32, remaining int) error {
	if remaining < 0 {
		return fmt.Errorf("negative remaining length %d", remaining)
	}
	if uint64(claimed) > uint64(remaining) {
		return fmt.Errorf("payload length %d exceeds %d remaining input bytes", claimed, remaining)
	}
	return nil
}

// ValidateContainerCount checks an array/map element count claimed by a
// header against the number of bytes actually remaining, assuming every
// element (or, for maps, every key+value pair) occupies at least minBytes —
// the smallest a single MessagePack value can ever be encoded in (one byte,
// for a fixint/fixstr/nil/bool). This rejects a header that claims, say,
// four billion array elements backed by a ten-byte input long before the
// decoder would otherwise exhaust memory recursing into children.
func ValidateContainerCount(count uint32, minBytesPerElement, remaining int) error {
	if minBytesPerElement <= 0 {
		return fmt.Errorf("invalid minBytesPerElement %d", minBytesPerElement)
	}
	need, err := SafeMultiply(uint64(count), uint64(minBytesPerElement))
	if err != nil {
		return fmt.Errorf("container count overflow: %w", err)
	}
	if need > uint64(remaining) {
		return fmt.Errorf("container count %d needs at least %d bytes, only %d remain", count, need, remaining)
	}
	return nil
}

// SafeMultiply multiplies two uint64 values and returns the result if no
// overflow occurs.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}
