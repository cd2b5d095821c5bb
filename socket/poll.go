package socket

import "time"

// WaitReadable reports whether h can be read without blocking, waiting up
// to timeout for it to become so. A zero timeout returns the current
// readiness immediately; a negative timeout blocks until readiness or an OS
// error. An exceptional condition reported by the OS on the handle is
// returned as an error rather than readiness, since on stream sockets it
// almost always means the connection is beyond recovery.
//
// Polling works for arbitrarily large handle values; there is no cap on
// the handle number the way bitmask-based select imposes on POSIX systems.
func WaitReadable(h Handle, timeout time.Duration) (bool, error) {
	if h == InvalidHandle {
		return false, opError("poll", "", ErrInvalidHandle)
	}
	ready, err := sysWaitReadable(h, timeout)
	if err != nil {
		return false, opError("poll", "", err)
	}
	return ready, nil
}
