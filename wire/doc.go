// Package wire converts 64-bit scalars between host order and wire order.
//
// Wire order is big-endian, matching the convention of htons and htonl for
// the narrower widths. On a little-endian host the full eight bytes are
// swapped; on a big-endian host values pass through unchanged. Processors
// whose floating-point word order differs from their integer byte order
// need the two 4-byte halves of a double exchanged after the byte swap,
// which is handled by an additional word swap gated on a host flag.
//
// Each conversion is its own inverse: encoding and decoding apply the
// identical transform, so ToWireInt64 and FromWireInt64 (and the float64
// pair) are interchangeable in either direction.
//
// Raw payloads moved by the socket package are never touched by this
// package; callers invoke it only at the points where multi-byte values
// enter or leave a byte stream.
package wire
