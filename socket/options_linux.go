//go:build linux

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

func setKeepIdle(h Handle, secs int) (bool, error) {
	return true, setIntOption(h, unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, secs)
}

func setKeepInterval(h Handle, secs int) error {
	return setIntOption(h, unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, secs)
}

// setUserTimeout applies TCP_USER_TIMEOUT, which the kernel takes in
// milliseconds.
func setUserTimeout(h Handle, secs int) (bool, error) {
	return true, setIntOption(h, unix.IPPROTO_TCP, unix.TCP_USER_TIMEOUT, secs*1000)
}

// setIgnoreSIGPIPE is a no-op on Linux: the Go runtime already swallows
// SIGPIPE for descriptors other than stdout and stderr, so socket writes to
// a closed peer surface as EPIPE error returns.
func setIgnoreSIGPIPE(h Handle) error {
	return nil
}
