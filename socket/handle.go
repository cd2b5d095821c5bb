package socket

import "sync"

// Kind selects the transport protocol for Open.
type Kind int

const (
	// Stream is a connection-oriented TCP socket.
	Stream Kind = iota
	// Datagram is a connectionless UDP socket.
	Datagram
)

func (k Kind) String() string {
	switch k {
	case Stream:
		return "stream"
	case Datagram:
		return "datagram"
	default:
		return "unknown"
	}
}

// initOnce guards the process-wide socket subsystem bootstrap. Concurrent
// first use from multiple goroutines runs platformStartup exactly once.
var initOnce sync.Once

// ensureInitialized performs the one-time platform socket bootstrap
// (WSAStartup on Windows, nothing on POSIX). Every lifecycle entry point
// calls it before touching the OS, so callers never need to.
func ensureInitialized() {
	initOnce.Do(platformStartup)
}
