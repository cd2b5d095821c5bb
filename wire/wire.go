package wire

import (
	"encoding/binary"
	"math"
	"math/bits"
)

// hostBigEndian reports whether the host stores integers most significant
// byte first. Probed once at startup.
var hostBigEndian = func() bool {
	return binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234
}()

// floatWordsSwapped reports whether the host stores the two 4-byte words of
// a double in the opposite order from its integer byte order. No platform
// the Go toolchain targets does this, but the correction is kept so the
// transform matches the wire layout produced by mixed-endian peers.
var floatWordsSwapped = false

// swap64 reverses the byte order of the 64-bit pattern v.
func swap64(v uint64) uint64 {
	return bits.ReverseBytes64(v)
}

// swapWords exchanges the upper and lower 32-bit halves of v.
func swapWords(v uint64) uint64 {
	return v<<32 | v>>32
}

// ToWireInt64 converts v from host order to big-endian wire order.
func ToWireInt64(v int64) int64 {
	if hostBigEndian {
		return v
	}
	u := swap64(uint64(v))
	if floatWordsSwapped {
		u = swapWords(u)
	}
	return int64(u)
}

// FromWireInt64 converts v from big-endian wire order to host order.
// The transform is self-inverse, so this is the same operation as
// ToWireInt64.
func FromWireInt64(v int64) int64 {
	return ToWireInt64(v)
}

// ToWireFloat64 converts f from host order to big-endian wire order. The
// result carries the rearranged bit pattern and is only meaningful as bytes
// on their way to the wire, not as a number.
func ToWireFloat64(f float64) float64 {
	if hostBigEndian {
		return f
	}
	u := swap64(math.Float64bits(f))
	if floatWordsSwapped {
		u = swapWords(u)
	}
	return math.Float64frombits(u)
}

// FromWireFloat64 converts f from big-endian wire order to host order.
// Self-inverse, identical to ToWireFloat64.
func FromWireFloat64(f float64) float64 {
	return ToWireFloat64(f)
}
