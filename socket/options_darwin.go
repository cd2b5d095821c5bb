//go:build darwin

package socket

import "golang.org/x/sys/unix"

func setKeepAlive(h Handle) error {
	return setIntOption(h, unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
}

func setNoDelay(h Handle, on bool) error {
	v := 0
	if on {
		v = 1
	}
	return setIntOption(h, unix.IPPROTO_TCP, unix.TCP_NODELAY, v)
}

func setKeepCount(h Handle, n int) error {
	return setIntOption(h, unix.IPPROTO_TCP, unix.TCP_KEEPCNT, n)
}

// setKeepIdle uses TCP_KEEPALIVE, Darwin's name for the idle-seconds knob.
func setKeepIdle(h Handle, secs int) (bool, error) {
	return true, setIntOption(h, unix.IPPROTO_TCP, unix.TCP_KEEPALIVE, secs)
}

func setKeepInterval(h Handle, secs int) error {
	return setIntOption(h, unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, secs)
}

// setUserTimeout reports unsupported: Darwin has no TCP_USER_TIMEOUT.
func setUserTimeout(h Handle, secs int) (bool, error) {
	return false, nil
}

// setIgnoreSIGPIPE suppresses SIGPIPE per socket via SO_NOSIGPIPE.
func setIgnoreSIGPIPE(h Handle) error {
	return setIntOption(h, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1)
}
