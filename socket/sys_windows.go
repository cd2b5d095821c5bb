//go:build windows

package socket

import (
	"errors"
	"time"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/opd-ai/coresock/timeutil"
)

// Handle identifies an open socket. On Windows it is the underlying SOCKET
// value; callers must treat it as opaque apart from equality checks.
type Handle uintptr

// InvalidHandle is the reserved sentinel meaning "no socket". It mirrors
// INVALID_SOCKET.
const InvalidHandle = ^Handle(0)

// accept and select have no exported wrappers in x/sys/windows (Accept is
// an EWINDOWS stub there), so both come straight from ws2_32.dll.
var (
	modws2_32  = windows.NewLazySystemDLL("ws2_32.dll")
	procaccept = modws2_32.NewProc("accept")
	procselect = modws2_32.NewProc("select")
)

// platformStartup runs WSAStartup once before any socket call.
func platformStartup() {
	var data windows.WSAData
	if err := windows.WSAStartup(uint32(0x0202), &data); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "platformStartup",
			"error":    err.Error(),
		}).Error("WSAStartup failed; socket calls will not work")
	}
}

func kindToType(kind Kind) int {
	if kind == Datagram {
		return windows.SOCK_DGRAM
	}
	return windows.SOCK_STREAM
}

func sysSocket(kind Kind) (Handle, error) {
	s, err := windows.Socket(windows.AF_INET, kindToType(kind), 0)
	if err != nil {
		return InvalidHandle, err
	}
	return Handle(s), nil
}

// sysSetReuse enables address reuse. Windows has no SO_REUSEPORT.
func sysSetReuse(h Handle) error {
	return windows.SetsockoptInt(windows.Handle(h), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
}

func sysBind(h Handle, ip [4]byte, port uint16) error {
	return windows.Bind(windows.Handle(h), &windows.SockaddrInet4{Port: int(port), Addr: ip})
}

func sysConnect(h Handle, ip [4]byte, port uint16) error {
	return windows.Connect(windows.Handle(h), &windows.SockaddrInet4{Port: int(port), Addr: ip})
}

func sysListen(h Handle, backlog int) error {
	return windows.Listen(windows.Handle(h), backlog)
}

func sysAccept(h Handle) (Handle, error) {
	for {
		r, _, errno := procaccept.Call(uintptr(h), 0, 0)
		if Handle(r) != InvalidHandle {
			return Handle(r), nil
		}
		if isInterrupted(errno) {
			continue
		}
		return InvalidHandle, errno
	}
}

func sysClose(h Handle) error {
	return windows.Closesocket(windows.Handle(h))
}

func sysShutdown(h Handle) error {
	return windows.Shutdown(windows.Handle(h), windows.SHUT_RDWR)
}

// sysLocalName reports the bound local IPv4 address and port of h.
func sysLocalName(h Handle) ([4]byte, uint16, error) {
	var ip [4]byte
	sa, err := windows.Getsockname(windows.Handle(h))
	if err != nil {
		return ip, 0, err
	}
	sa4, ok := sa.(*windows.SockaddrInet4)
	if !ok {
		return ip, 0, windows.WSAEAFNOSUPPORT
	}
	return sa4.Addr, uint16(sa4.Port), nil
}

func sysRead(h Handle, p []byte) (int, error) {
	var buf windows.WSABuf
	buf.Len = uint32(len(p))
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	var qty, flags uint32
	if err := windows.WSARecv(windows.Handle(h), &buf, 1, &qty, &flags, nil, nil); err != nil {
		return 0, err
	}
	return int(qty), nil
}

func sysWrite(h Handle, p []byte) (int, error) {
	var buf windows.WSABuf
	buf.Len = uint32(len(p))
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	var qty uint32
	if err := windows.WSASend(windows.Handle(h), &buf, 1, &qty, 0, nil, nil); err != nil {
		return 0, err
	}
	return int(qty), nil
}

func setIntOption(h Handle, level, opt, value int) error {
	return windows.SetsockoptInt(windows.Handle(h), level, opt, value)
}

func isInterrupted(err error) bool {
	return errors.Is(err, windows.WSAEINTR)
}

// fdSet matches the winsock fd_set layout for a single descriptor. The
// Windows fd_set is an array of SOCKET values plus a count, not a bitmask,
// so it handles arbitrarily large handle values; the FD_SETSIZE cap only
// limits how many sockets fit into one set, and we never poll more than one.
type fdSet struct {
	count uint32
	array [1]uintptr
}

func fdIsSet(s *fdSet, h Handle) bool {
	for i := uint32(0); i < s.count && i < uint32(len(s.array)); i++ {
		if s.array[i] == uintptr(h) {
			return true
		}
	}
	return false
}

// sysWaitReadable waits for readability via select. Windows is kept on
// select deliberately: its poll implementation (WSAPoll) misbehaves in some
// circumstances, and select with a single descriptor has none of the
// bitmask limits the POSIX version does. Any descriptor flagged in the
// except set is reported as errExceptional.
func sysWaitReadable(h Handle, timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = timeutil.Now().Add(timeout)
	}
	remaining := timeout
	for {
		readfds := fdSet{count: 1, array: [1]uintptr{uintptr(h)}}
		exceptfds := readfds
		var tvptr *windows.Timeval
		var tv windows.Timeval
		if timeout >= 0 {
			tv = windows.NsecToTimeval(remaining.Nanoseconds())
			tvptr = &tv
		}
		r, _, errno := procselect.Call(
			uintptr(1), // nfds, ignored by winsock
			uintptr(unsafe.Pointer(&readfds)),
			0,
			uintptr(unsafe.Pointer(&exceptfds)),
			uintptr(unsafe.Pointer(tvptr)),
		)
		if int32(r) < 0 {
			if isInterrupted(errno) {
				if timeout > 0 {
					remaining = timeutil.Remaining(deadline)
					if remaining == 0 {
						return false, nil
					}
				}
				continue
			}
			return false, errno
		}
		if fdIsSet(&exceptfds, h) {
			return false, errExceptional
		}
		return fdIsSet(&readfds, h), nil
	}
}
