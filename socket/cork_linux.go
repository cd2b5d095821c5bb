//go:build linux

package socket

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Cork hints that small successive writes on h should be coalesced into
// fewer packets, using the native TCP_CORK toggle. Failure is a lost
// performance hint, never a correctness problem for the surrounding I/O.
func Cork(h Handle) error {
	if h == InvalidHandle {
		return opError("cork", "", ErrInvalidHandle)
	}
	if err := setIntOption(h, unix.IPPROTO_TCP, unix.TCP_CORK, 1); err != nil {
		return opError("cork", "", fmt.Errorf("%w: %w", ErrOption, err))
	}
	return nil
}

// Uncork releases a Cork hint so buffered small writes flush to the wire.
func Uncork(h Handle) error {
	if h == InvalidHandle {
		return opError("uncork", "", ErrInvalidHandle)
	}
	if err := setIntOption(h, unix.IPPROTO_TCP, unix.TCP_CORK, 0); err != nil {
		return opError("uncork", "", fmt.Errorf("%w: %w", ErrOption, err))
	}
	return nil
}
