package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInt64RoundTrip verifies that the integer conversion is its own
// inverse in both directions for representative values.
func TestInt64RoundTrip(t *testing.T) {
	values := []int64{
		0,
		1,
		-1,
		42,
		-42,
		0x0102030405060708,
		math.MaxInt64,
		math.MinInt64,
	}

	for _, v := range values {
		assert.Equal(t, v, FromWireInt64(ToWireInt64(v)), "FromWire(ToWire(%#x))", v)
		assert.Equal(t, v, ToWireInt64(FromWireInt64(v)), "ToWire(FromWire(%#x))", v)
	}
}

// TestFloat64RoundTrip verifies the double conversion round-trips bit
// patterns exactly, including the values that break naive comparisons.
func TestFloat64RoundTrip(t *testing.T) {
	values := []float64{
		0,
		math.Copysign(0, -1),
		1,
		-1,
		3.14159265358979,
		-2.718281828459045,
		math.MaxFloat64,
		math.SmallestNonzeroFloat64, // subnormal
		math.Inf(1),
		math.Inf(-1),
	}

	for _, v := range values {
		got := FromWireFloat64(ToWireFloat64(v))
		assert.Equal(t, math.Float64bits(v), math.Float64bits(got), "round trip of %v", v)
	}
}

// TestInt64WireLayout pins the transform to the declared big-endian wire
// order on whichever byte order the host declares.
func TestInt64WireLayout(t *testing.T) {
	const v = int64(0x0102030405060708)
	if hostBigEndian {
		assert.Equal(t, v, ToWireInt64(v), "big-endian host passes values through")
		return
	}
	require.False(t, floatWordsSwapped, "no Go target has mixed-endian floats")
	assert.Equal(t, int64(0x0807060504030201), ToWireInt64(v))
}

// TestSwapHelpers covers the two primitive transforms directly, including
// the word swap applied for mixed-endian float hosts.
func TestSwapHelpers(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(uint64) uint64
		in    uint64
		out   uint64
	}{
		{"swap64 full reversal", swap64, 0x0102030405060708, 0x0807060504030201},
		{"swap64 zero", swap64, 0, 0},
		{"swapWords exchanges halves", swapWords, 0x11223344_55667788, 0x55667788_11223344},
		{"swapWords zero", swapWords, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, tt.fn(tt.in))
			assert.Equal(t, tt.in, tt.fn(tt.fn(tt.in)), "self-inverse")
		})
	}
}

// TestFloat64WireBytes checks that an encoded double lands on the wire most
// significant byte first, the layout a big-endian-integer host expects.
func TestFloat64WireBytes(t *testing.T) {
	v := 1.0 // bits 0x3FF0000000000000
	wired := math.Float64bits(ToWireFloat64(v))
	if hostBigEndian {
		assert.Equal(t, uint64(0x3FF0000000000000), wired)
	} else {
		assert.Equal(t, uint64(0x000000000000F03F), wired)
	}
}
