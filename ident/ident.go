package ident

import (
	"crypto/rand"
	"encoding/binary"
	"hash/fnv"
	mrand "math/rand"

	"github.com/google/uuid"

	"github.com/opd-ai/coresock/timeutil"
)

const (
	alphanumericAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	numericAlphabet      = "0123456789"
	hexAlphabet          = "0123456789abcdef"
)

// fromAlphabet draws n characters from alphabet using rng.
func fromAlphabet(rng *mrand.Rand, alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}

// timeSeededRand returns a PRNG seeded from the current microsecond clock.
func timeSeededRand() *mrand.Rand {
	return mrand.New(mrand.NewSource(timeutil.UsecTime()))
}

// AlphanumericString returns a random identifier of n characters drawn from
// digits and upper/lowercase ASCII letters.
func AlphanumericString(n int) string {
	return fromAlphabet(timeSeededRand(), alphanumericAlphabet, n)
}

// NumericString returns a random identifier of n decimal digit characters.
func NumericString(n int) string {
	return fromAlphabet(timeSeededRand(), numericAlphabet, n)
}

// HexString returns a random identifier of n lowercase hex characters.
// A non-empty seed makes the result deterministic: equal seeds always
// produce equal identifiers, which callers use for reproducible IDs.
func HexString(n int, seed string) string {
	var rng *mrand.Rand
	if seed == "" {
		rng = timeSeededRand()
	} else {
		h := fnv.New64a()
		h.Write([]byte(seed))
		rng = mrand.New(mrand.NewSource(int64(h.Sum64())))
	}
	return fromAlphabet(rng, hexAlphabet, n)
}

// Uint64 returns a uniformly random 64-bit integer from the operating
// system's entropy source.
func Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// The OS entropy source should never fail; fall back to the
		// time-seeded PRNG rather than returning a zero identifier.
		return timeSeededRand().Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}

// UUIDString returns a random version 4 UUID in canonical string form.
func UUIDString() string {
	return uuid.NewString()
}
