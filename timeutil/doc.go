// Package timeutil provides the clock primitives used by the socket layer's
// deadline tracking: a wall clock derived from a single monotonic reading
// plus a process-lifetime cached offset, microsecond timestamps, and
// remaining-time computation against absolute deadlines.
//
// The offset between the monotonic clock and the wall clock is captured
// exactly once, under a sync.Once, the first time any function in this
// package needs it. There is deliberately no way to invalidate the cached
// offset: the socket layer assumes it is stable for the life of the process,
// so repeated deadline computations stay consistent with each other even if
// the system wall clock is stepped mid-operation.
//
// TimeProvider allows a mock clock to be injected for deterministic testing
// of deadline behavior.
package timeutil
