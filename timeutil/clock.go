package timeutil

import (
	"sync"
	"time"
)

// clockBase holds the one-time pairing of a wall-clock reading with a
// monotonic reading. All later calls to Now extend the monotonic clock from
// this base, so the wall offset is applied consistently for the whole
// process lifetime.
var (
	clockOnce sync.Once
	wallBase  time.Time // wall clock at capture, monotonic reading stripped
	monoBase  time.Time // monotonic anchor taken at the same instant
)

func captureClockBase() {
	now := time.Now()
	// Round(0) strips the monotonic reading, leaving the pure wall clock.
	wallBase = now.Round(0)
	monoBase = now
}

// Now returns the current wall-clock time computed as the cached wall base
// plus the monotonic time elapsed since the base was captured. Unlike
// time.Now, successive calls can never step backwards when the system clock
// is adjusted, which keeps deadline arithmetic in the socket layer stable.
func Now() time.Time {
	clockOnce.Do(captureClockBase)
	return wallBase.Add(time.Since(monoBase))
}

// UsecTime returns the current time as microseconds since the Unix epoch,
// using the same cached-offset clock as Now.
func UsecTime() int64 {
	return Now().UnixMicro()
}

// Remaining reports how much time is left until deadline, clamped at zero.
// A zero result means the deadline has arrived or passed.
func Remaining(deadline time.Time) time.Duration {
	r := deadline.Sub(Now())
	if r < 0 {
		return 0
	}
	return r
}
