package socket

import (
	"errors"
	"fmt"
)

// Error taxonomy for socket operations. Callers match with errors.Is;
// every error returned by this package wraps exactly one of these.
var (
	// ErrResource indicates the OS could not create a socket.
	ErrResource = errors.New("socket creation failed")

	// ErrResolution indicates a host name could not be resolved to an
	// IPv4 address. Distinct from ErrConnect: the peer was never reached.
	ErrResolution = errors.New("host resolution failed")

	// ErrBind indicates binding to the requested address failed,
	// commonly because another process holds the port.
	ErrBind = errors.New("bind failed")

	// ErrListen indicates the listen call was rejected.
	ErrListen = errors.New("listen failed")

	// ErrConnect indicates the peer refused, was unreachable, or the
	// OS-level connect timed out.
	ErrConnect = errors.New("connect failed")

	// ErrRead indicates a hard read failure, including end-of-stream
	// before the requested length on ReadAll.
	ErrRead = errors.New("read failed")

	// ErrWrite indicates a hard write failure or a peer-closed stream.
	ErrWrite = errors.New("write failed")

	// ErrOption indicates at least one field of a TCPOptions apply
	// failed. Fields already applied are not rolled back.
	ErrOption = errors.New("socket option apply failed")

	// ErrInvalidHandle indicates an operation on the InvalidHandle
	// sentinel.
	ErrInvalidHandle = errors.New("invalid socket handle")
)

// errExceptional marks an OS-reported exceptional condition on a polled
// handle, which on stream sockets indicates an unrecoverable connection
// fault rather than a readable event.
var errExceptional = errors.New("exceptional condition on socket")

// SockError carries the operation and address context for a failure.
type SockError struct {
	Op   string // operation that caused the error
	Addr string // address if relevant
	Err  error  // underlying error, wraps one of the sentinels above
}

func (e *SockError) Error() string {
	if e.Addr != "" {
		return fmt.Sprintf("coresock %s %s: %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("coresock %s: %v", e.Op, e.Err)
}

func (e *SockError) Unwrap() error {
	return e.Err
}

// opError creates a new SockError.
func opError(op, addr string, err error) *SockError {
	return &SockError{
		Op:   op,
		Addr: addr,
		Err:  err,
	}
}
