//go:build windows

package socket

import "golang.org/x/sys/windows"

// Keepalive cadence options exist on Windows 10 1709 and later but have no
// named constants in x/sys/windows; values from ws2ipdef.h.
const (
	winTCPKeepIdle  = 3
	winTCPKeepCnt   = 16
	winTCPKeepIntvl = 17
)

func setKeepAlive(h Handle) error {
	return setIntOption(h, windows.SOL_SOCKET, windows.SO_KEEPALIVE, 1)
}

func setNoDelay(h Handle, on bool) error {
	v := 0
	if on {
		v = 1
	}
	return setIntOption(h, windows.IPPROTO_TCP, windows.TCP_NODELAY, v)
}

func setKeepCount(h Handle, n int) error {
	return setIntOption(h, windows.IPPROTO_TCP, winTCPKeepCnt, n)
}

func setKeepIdle(h Handle, secs int) (bool, error) {
	return true, setIntOption(h, windows.IPPROTO_TCP, winTCPKeepIdle, secs)
}

func setKeepInterval(h Handle, secs int) error {
	return setIntOption(h, windows.IPPROTO_TCP, winTCPKeepIntvl, secs)
}

// setUserTimeout reports unsupported: Winsock has no TCP_USER_TIMEOUT.
func setUserTimeout(h Handle, secs int) (bool, error) {
	return false, nil
}

// setIgnoreSIGPIPE is a no-op: Windows has no SIGPIPE.
func setIgnoreSIGPIPE(h Handle) error {
	return nil
}
