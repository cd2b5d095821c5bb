package socket

import (
	"fmt"
	"time"

	"github.com/opd-ai/coresock/timeutil"
)

// WriteAll sends the whole buffer on h, looping over as many OS-level
// writes as it takes. Interrupted calls are retried and count neither as
// progress nor as failure. A zero-byte completion means the peer closed the
// stream; it is reported as ErrWrite alongside the bytes sent so far. On
// success the returned count equals len(buf).
func WriteAll(h Handle, buf []byte) (int, error) {
	if h == InvalidHandle {
		return 0, opError("write", "", ErrInvalidHandle)
	}
	sofar := 0
	for sofar < len(buf) {
		n, err := sysWrite(h, buf[sofar:])
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			return sofar, opError("write", "", fmt.Errorf("%w: %w", ErrWrite, err))
		}
		if n == 0 {
			return sofar, opError("write", "", fmt.Errorf("%w: connection closed by peer", ErrWrite))
		}
		sofar += n
	}
	return sofar, nil
}

// ReadAll fills buf completely from h, looping over as many OS-level reads
// as it takes and retrying interrupted calls. End-of-stream before len(buf)
// bytes is a hard ErrRead carrying the bytes obtained so far, never a
// silent short count; callers needing partial-read tolerance must use
// ReadDeadline. A zero-length buf returns immediately without touching the
// OS, since some platforms block forever on a zero-length read.
func ReadAll(h Handle, buf []byte) (int, error) {
	if h == InvalidHandle {
		return 0, opError("read", "", ErrInvalidHandle)
	}
	if len(buf) == 0 {
		return 0, nil
	}
	sofar := 0
	for sofar < len(buf) {
		n, err := sysRead(h, buf[sofar:])
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			return sofar, opError("read", "", fmt.Errorf("%w: %w", ErrRead, err))
		}
		if n == 0 {
			return sofar, opError("read", "", fmt.Errorf("%w: end of stream after %d bytes", ErrRead, sofar))
		}
		sofar += n
	}
	return sofar, nil
}

// ReadDeadline reads up to len(buf) bytes from h, giving up once timeout
// has elapsed. The timeout is converted to an absolute deadline up front,
// so elapsed time is subtracted across repeated poll and read attempts
// instead of re-applying the original duration after each interruption.
//
// A zero timeout polls once without blocking; a negative timeout means no
// deadline. Reaching the deadline is not an error: the call returns however
// many bytes arrived, possibly zero, with a nil error. A short count with a
// nil error therefore always means timeout, while a peer-closed connection
// is reported as ErrRead (still carrying the bytes read before the close).
//
// A socket that reports readable but then yields a zero-byte read is dead:
// it will report readable forever without ever producing data, so that case
// fails immediately with ErrRead rather than looping until the deadline.
func ReadDeadline(h Handle, buf []byte, timeout time.Duration) (int, error) {
	if h == InvalidHandle {
		return 0, opError("read", "", ErrInvalidHandle)
	}
	if len(buf) == 0 {
		return 0, nil
	}

	tp := timeutil.DefaultTimeProvider()
	hasDeadline := timeout >= 0
	var deadline time.Time
	if hasDeadline {
		deadline = tp.Now().Add(timeout)
	}

	sofar := 0
	for sofar < len(buf) {
		remaining := time.Duration(-1)
		if hasDeadline {
			remaining = remainingUntil(tp, deadline)
		}

		ready, err := WaitReadable(h, remaining)
		if err != nil {
			return sofar, opError("read", "", fmt.Errorf("%w: %w", ErrRead, err))
		}
		if !ready && remaining == 0 {
			// Nothing arrived within a zero-length poll: the deadline
			// has been spent. This is the timeout-with-partial-result
			// path, not an error.
			return sofar, nil
		}

		// Re-check the absolute deadline; the poll may have consumed the
		// rest of our budget even if it claimed readiness.
		if hasDeadline && remainingUntil(tp, deadline) == 0 {
			return sofar, nil
		}
		if !ready {
			continue
		}

		n, err := sysRead(h, buf[sofar:])
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			return sofar, opError("read", "", fmt.Errorf("%w: %w", ErrRead, err))
		}
		if n == 0 {
			return sofar, opError("read", "", fmt.Errorf("%w: socket readable but returned no data after %d bytes", ErrRead, sofar))
		}
		sofar += n
	}
	return sofar, nil
}

// remainingUntil computes the non-negative time left until deadline on the
// given clock.
func remainingUntil(tp timeutil.TimeProvider, deadline time.Time) time.Duration {
	r := deadline.Sub(tp.Now())
	if r < 0 {
		return 0
	}
	return r
}
