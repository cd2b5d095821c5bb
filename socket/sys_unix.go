//go:build linux || darwin

package socket

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/opd-ai/coresock/timeutil"
)

// Handle identifies an open socket. On Unix platforms it is the file
// descriptor; callers must treat it as opaque apart from equality checks.
type Handle int

// InvalidHandle is the reserved sentinel meaning "no socket".
const InvalidHandle Handle = -1

// platformStartup is a no-op: POSIX sockets need no process-wide bootstrap.
func platformStartup() {}

func kindToType(kind Kind) int {
	if kind == Datagram {
		return unix.SOCK_DGRAM
	}
	return unix.SOCK_STREAM
}

func sysSocket(kind Kind) (Handle, error) {
	fd, err := unix.Socket(unix.AF_INET, kindToType(kind), 0)
	if err != nil {
		return InvalidHandle, err
	}
	return Handle(fd), nil
}

func sysSetReuse(h Handle) error {
	if err := unix.SetsockoptInt(int(h), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return err
	}
	return unix.SetsockoptInt(int(h), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
}

func sysBind(h Handle, ip [4]byte, port uint16) error {
	return unix.Bind(int(h), &unix.SockaddrInet4{Port: int(port), Addr: ip})
}

func sysConnect(h Handle, ip [4]byte, port uint16) error {
	return unix.Connect(int(h), &unix.SockaddrInet4{Port: int(port), Addr: ip})
}

func sysListen(h Handle, backlog int) error {
	return unix.Listen(int(h), backlog)
}

func sysAccept(h Handle) (Handle, error) {
	for {
		nfd, _, err := unix.Accept(int(h))
		if err != nil {
			if isInterrupted(err) {
				continue
			}
			return InvalidHandle, err
		}
		return Handle(nfd), nil
	}
}

func sysClose(h Handle) error {
	return unix.Close(int(h))
}

func sysShutdown(h Handle) error {
	return unix.Shutdown(int(h), unix.SHUT_RDWR)
}

// sysLocalName reports the bound local IPv4 address and port of h.
func sysLocalName(h Handle) ([4]byte, uint16, error) {
	var ip [4]byte
	sa, err := unix.Getsockname(int(h))
	if err != nil {
		return ip, 0, err
	}
	sa4, ok := sa.(*unix.SockaddrInet4)
	if !ok {
		return ip, 0, unix.EAFNOSUPPORT
	}
	return sa4.Addr, uint16(sa4.Port), nil
}

func sysRead(h Handle, p []byte) (int, error) {
	return unix.Read(int(h), p)
}

func sysWrite(h Handle, p []byte) (int, error) {
	return unix.Write(int(h), p)
}

func setIntOption(h Handle, level, opt, value int) error {
	return unix.SetsockoptInt(int(h), level, opt, value)
}

func isInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}

// sysWaitReadable polls h for readability. A zero timeout reports current
// readiness immediately, a negative timeout blocks until readiness or an OS
// error. Exceptional conditions (POLLERR, POLLHUP, POLLNVAL) are reported
// as errExceptional. Interrupts restart the poll with the time remaining
// until the original absolute stop time, so interruption never extends the
// total wait.
func sysWaitReadable(h Handle, timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = timeutil.Now().Add(timeout)
	}
	remaining := timeout
	for {
		ms := -1
		if timeout >= 0 {
			// Round a sub-millisecond remainder up so the final slice of
			// the budget is slept, not spun through with zero-length polls.
			// The caller re-checks its absolute deadline, so the at most
			// 1ms overshoot never inflates a total wait.
			ms = int(remaining / time.Millisecond)
			if remaining%time.Millisecond != 0 {
				ms++
			}
		}
		fds := []unix.PollFd{{Fd: int32(h), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, ms)
		if err != nil {
			if isInterrupted(err) {
				if timeout > 0 {
					remaining = timeutil.Remaining(deadline)
					if remaining == 0 {
						return false, nil
					}
				}
				continue
			}
			return false, err
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
			return false, errExceptional
		}
		return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
	}
}
