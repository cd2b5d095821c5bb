// Package socket provides a uniform way to open, configure, connect, accept,
// read from, write to, and tear down TCP and UDP sockets across POSIX and
// Windows socket stacks, hiding the platform differences in error reporting,
// interrupted-call handling, and option names.
//
// # Architecture
//
// The package deals in opaque Handle values backed by raw OS sockets rather
// than net.Conn, because callers need control the net package does not give
// them: readiness polling with partial-timeout reads, keepalive cadence
// tuning, corking, and a handle representation that can cross API boundaries
// as a plain scalar. A distinguished InvalidHandle sentinel means "no
// socket"; every operation on it fails with ErrInvalidHandle instead of
// crashing, so defensive double-close is always safe.
//
// A typical exchange:
//
//	l, port, err := socket.ListenTCP(0, "", 5, true, nil)
//	// ... hand port to the peer ...
//	c, err := socket.ConnectTCP("localhost", port, "", nil)
//	a, ok, err := socket.PollAccept(l, 10*time.Second)
//	n, err := socket.WriteAll(a, payload)
//	n, err = socket.ReadAll(c, buf)
//	socket.Close(a)
//	socket.Close(c)
//	socket.Close(l)
//
// # Blocking model
//
// Every call is synchronous: it returns immediately or blocks the calling
// goroutine until completion, timeout, or error. The package spawns no
// goroutines and keeps no per-handle state; callers wanting concurrency run
// one handle per goroutine. Driving the same handle from two goroutines at
// once is not supported, and neither is closing a handle while another
// goroutine blocks on it (whether the blocked call wakes with an error or
// hangs is platform-dependent).
//
// Interrupted system calls are never surfaced: read, write, poll, and accept
// loops retry EINTR transparently, recomputing any remaining timeout against
// an absolute deadline so repeated interruption cannot inflate a timeout.
//
// # Timeouts
//
// Operations taking a time.Duration treat zero as "poll once, do not block"
// and a negative duration as "block indefinitely". A timeout on ReadDeadline
// is not an error: the call returns the bytes accumulated so far with a nil
// error, and only a peer-closed or failed connection produces ErrRead.
package socket
