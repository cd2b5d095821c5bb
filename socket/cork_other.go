//go:build darwin || windows

package socket

import "fmt"

// Cork hints that small successive writes on h should be coalesced into
// fewer packets. Without a native cork primitive here, re-enabling Nagle
// batching (clearing TCP_NODELAY) persuades the stack to hold data in its
// buffers for a while. Failure is a lost performance hint, never a
// correctness problem for the surrounding I/O.
func Cork(h Handle) error {
	if h == InvalidHandle {
		return opError("cork", "", ErrInvalidHandle)
	}
	if err := setNoDelay(h, false); err != nil {
		return opError("cork", "", fmt.Errorf("%w: %w", ErrOption, err))
	}
	return nil
}

// Uncork releases a Cork hint: TCP_NODELAY comes back on and an empty
// payload is sent to force any batched data onto the wire.
func Uncork(h Handle) error {
	if h == InvalidHandle {
		return opError("uncork", "", ErrInvalidHandle)
	}
	if err := setNoDelay(h, true); err != nil {
		return opError("uncork", "", fmt.Errorf("%w: %w", ErrOption, err))
	}
	if _, err := sysWrite(h, nil); err != nil {
		return opError("uncork", "", fmt.Errorf("%w: flush after uncork: %w", ErrWrite, err))
	}
	return nil
}
