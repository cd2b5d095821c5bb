package socket

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// TCPOptions is the structured set of TCP tuning parameters applied by
// ApplyTCPOptions. A negative value for any of the keepalive cadence fields
// leaves that parameter at the OS default.
type TCPOptions struct {
	// KeepAlive enables periodic keepalive probing of idle connections.
	// Enabling it also disables Nagle batching (TCP_NODELAY) so probes
	// and small writes go out promptly.
	KeepAlive bool

	// KeepCount is the number of unanswered probes before the connection
	// is declared dead. Negative leaves the OS default.
	KeepCount int

	// KeepIdle is the seconds a connection sits idle before the first
	// probe. Negative leaves the OS default.
	KeepIdle int

	// KeepInterval is the seconds between successive probes. Negative
	// leaves the OS default.
	KeepInterval int

	// UserTimeout is the seconds an unacknowledged send may remain
	// outstanding before the connection times out. Zero keeps the OS
	// default behavior.
	UserTimeout int

	// IgnoreSIGPIPE suppresses the broken-pipe signal for writes to a
	// closed peer where the platform delivers one, so WriteAll observes
	// failures as ordinary error returns.
	IgnoreSIGPIPE bool
}

// DefaultTCPOptions returns the options applied to sockets that want
// keepalive liveness detection with the cadence left to the OS.
func DefaultTCPOptions() TCPOptions {
	return TCPOptions{
		KeepAlive:     true,
		KeepCount:     -1,
		KeepIdle:      -1,
		KeepInterval:  -1,
		UserTimeout:   0,
		IgnoreSIGPIPE: false,
	}
}

// ApplyTCPOptions applies each field of opts to h independently. A failed
// field is logged with its name and recorded, but the remaining fields are
// still attempted: configuration is best effort, not transactional, and
// nothing already applied is rolled back. The returned error wraps
// ErrOption and every per-field failure; it is nil only when every
// attempted field succeeded.
func ApplyTCPOptions(h Handle, opts TCPOptions) error {
	if h == InvalidHandle {
		return opError("setopt", "", ErrInvalidHandle)
	}

	var failed []error
	record := func(field string, err error) {
		logrus.WithFields(logrus.Fields{
			"function": "ApplyTCPOptions",
			"field":    field,
			"error":    err.Error(),
		}).Error("Socket option apply failed")
		failed = append(failed, fmt.Errorf("%s: %w", field, err))
	}
	unsupported := func(field string) {
		logrus.WithFields(logrus.Fields{
			"function": "ApplyTCPOptions",
			"field":    field,
		}).Warn("Socket option not supported on this platform")
	}

	if opts.KeepCount >= 0 {
		if err := setKeepCount(h, opts.KeepCount); err != nil {
			record("keepCount", err)
		}
	}
	if opts.KeepIdle >= 0 {
		if supported, err := setKeepIdle(h, opts.KeepIdle); !supported {
			unsupported("keepIdle")
		} else if err != nil {
			record("keepIdle", err)
		}
	}
	if opts.KeepInterval >= 0 {
		if err := setKeepInterval(h, opts.KeepInterval); err != nil {
			record("keepInterval", err)
		}
	}
	if supported, err := setUserTimeout(h, opts.UserTimeout); supported && err != nil {
		record("userTimeout", err)
	}
	if opts.KeepAlive {
		if err := setKeepAlive(h); err != nil {
			record("keepAlive", err)
		}
		if err := setNoDelay(h, true); err != nil {
			record("noDelay", err)
		}
	}
	if opts.IgnoreSIGPIPE {
		if err := setIgnoreSIGPIPE(h); err != nil {
			record("ignoreSIGPIPE", err)
		}
	}

	if len(failed) > 0 {
		return opError("setopt", "", fmt.Errorf("%w: %w", ErrOption, errors.Join(failed...)))
	}
	return nil
}
