package timeutil

import "time"

// TimeProvider is an interface for getting the current time.
// This allows injecting a mock time provider for deterministic testing
// of deadline-bounded operations.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time
}

// RealTimeProvider implements TimeProvider using the cached-offset clock.
type RealTimeProvider struct{}

// Now returns the current time from the cached-offset clock.
func (RealTimeProvider) Now() time.Time {
	return Now()
}

// defaultTimeProvider is the package-level default time provider.
var defaultTimeProvider TimeProvider = RealTimeProvider{}

// SetDefaultTimeProvider sets the package-level default time provider.
// Passing nil restores the real clock. This is primarily useful for testing.
func SetDefaultTimeProvider(tp TimeProvider) {
	if tp == nil {
		tp = RealTimeProvider{}
	}
	defaultTimeProvider = tp
}

// DefaultTimeProvider returns the package-level default time provider.
func DefaultTimeProvider() TimeProvider {
	return defaultTimeProvider
}
