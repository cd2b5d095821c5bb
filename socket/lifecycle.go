package socket

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// rendezvousPort is the quasi-random remote port used by the UDP probe in
// DiscoverLocalAddress; no traffic is ever sent to it.
const rendezvousPort = 3883

// Open creates a socket of the given kind, optionally enables address
// reuse, and binds it to nic (wildcard when empty) and port (OS-chosen when
// zero). It returns the handle and the port actually bound, discovered from
// the socket's local name so "any port" callers learn their assignment.
func Open(kind Kind, port uint16, nic string, reuse bool) (Handle, uint16, error) {
	ensureInitialized()

	s, err := sysSocket(kind)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Open",
			"kind":     kind.String(),
			"error":    err.Error(),
		}).Error("Cannot create socket")
		return InvalidHandle, 0, opError("open", "", fmt.Errorf("%w: %w", ErrResource, err))
	}

	if reuse {
		// Reuse failures are logged but not fatal; binding may still work.
		if err := sysSetReuse(s); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Open",
				"error":    err.Error(),
			}).Warn("Enabling address reuse failed")
		}
	}

	ip, err := resolveIPv4(nic)
	if err != nil {
		sysClose(s)
		return InvalidHandle, 0, opError("open", nic, err)
	}

	if err := sysBind(s, ip, port); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Open",
			"nic":      nic,
			"port":     port,
			"error":    err.Error(),
		}).Error("Cannot bind address; another process probably has the port open")
		sysClose(s)
		return InvalidHandle, 0, opError("open", nic, fmt.Errorf("%w: port %d: %w", ErrBind, port, err))
	}

	_, bound, err := sysLocalName(s)
	if err != nil {
		sysClose(s)
		return InvalidHandle, 0, opError("open", nic, fmt.Errorf("%w: cannot get socket name: %w", ErrBind, err))
	}
	return s, bound, nil
}

// OpenTCP opens and binds a stream socket. See Open.
func OpenTCP(port uint16, nic string, reuse bool) (Handle, uint16, error) {
	return Open(Stream, port, nic, reuse)
}

// OpenUDP opens and binds a datagram socket. See Open.
func OpenUDP(port uint16, nic string, reuse bool) (Handle, uint16, error) {
	return Open(Datagram, port, nic, reuse)
}

// ListenTCP opens a stream socket on port (zero for OS-chosen), applies
// opts when non-nil, and starts listening with the given backlog. On any
// failure after the socket is created it is closed before the error
// returns, so no partially configured listener ever escapes.
func ListenTCP(port uint16, nic string, backlog int, reuse bool, opts *TCPOptions) (Handle, uint16, error) {
	s, bound, err := Open(Stream, port, nic, reuse)
	if err != nil {
		return InvalidHandle, 0, err
	}

	if opts != nil {
		if err := ApplyTCPOptions(s, *opts); err != nil {
			sysClose(s)
			return InvalidHandle, 0, err
		}
	}

	if err := sysListen(s, backlog); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ListenTCP",
			"port":     bound,
			"error":    err.Error(),
		}).Error("Listen rejected")
		sysClose(s)
		return InvalidHandle, 0, opError("listen", nic, fmt.Errorf("%w: %w", ErrListen, err))
	}
	return s, bound, nil
}

// ConnectTCP opens a stream socket bound to nic (any interface when empty),
// applies opts when non-nil, and performs a blocking connect to host:port.
// The socket is closed before any error returns.
func ConnectTCP(host string, port uint16, nic string, opts *TCPOptions) (Handle, error) {
	s, _, err := Open(Stream, 0, nic, false)
	if err != nil {
		return InvalidHandle, err
	}

	if opts != nil {
		if err := ApplyTCPOptions(s, *opts); err != nil {
			sysClose(s)
			return InvalidHandle, err
		}
	}

	ip, err := resolveIPv4(host)
	if err != nil {
		sysClose(s)
		return InvalidHandle, opError("connect", host, err)
	}

	if err := sysConnect(s, ip, port); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ConnectTCP",
			"address":  dottedQuad(ip),
			"port":     port,
			"error":    err.Error(),
		}).Error("Cannot connect to peer")
		sysClose(s)
		return InvalidHandle, opError("connect", host, fmt.Errorf("%w: %w", ErrConnect, err))
	}
	return s, nil
}

// ConnectUDP opens a datagram socket bound to nic and associates it with
// host:port, so plain reads and writes exchange datagrams with that peer.
func ConnectUDP(host string, port uint16, nic string) (Handle, error) {
	s, _, err := Open(Datagram, 0, nic, false)
	if err != nil {
		return InvalidHandle, err
	}

	ip, err := resolveIPv4(host)
	if err != nil {
		sysClose(s)
		return InvalidHandle, opError("connect", host, err)
	}

	if err := sysConnect(s, ip, port); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ConnectUDP",
			"address":  dottedQuad(ip),
			"port":     port,
			"error":    err.Error(),
		}).Error("Cannot associate UDP socket")
		sysClose(s)
		return InvalidHandle, opError("connect", host, fmt.Errorf("%w: %w", ErrConnect, err))
	}
	return s, nil
}

// PollAccept waits up to timeout for an incoming connection on the
// listening handle l. On readiness it accepts and returns the new handle
// with accepted true. An elapsed deadline with nobody connecting is not an
// error: it returns (InvalidHandle, false, nil). Timeout semantics follow
// WaitReadable: zero polls once, negative blocks indefinitely.
func PollAccept(l Handle, timeout time.Duration) (Handle, bool, error) {
	if l == InvalidHandle {
		return InvalidHandle, false, opError("accept", "", ErrInvalidHandle)
	}
	ready, err := WaitReadable(l, timeout)
	if err != nil {
		return InvalidHandle, false, opError("accept", "", fmt.Errorf("%w: %w", ErrResource, err))
	}
	if !ready {
		return InvalidHandle, false, nil
	}
	a, err := sysAccept(l)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "PollAccept",
			"error":    err.Error(),
		}).Error("Accept failed after readiness")
		return InvalidHandle, false, opError("accept", "", fmt.Errorf("%w: %w", ErrResource, err))
	}
	return a, true, nil
}

// Close releases the OS resource behind h. Closing InvalidHandle is a
// distinguished no-op error, never a crash, so defensive double-close of a
// handle variable reset to InvalidHandle is always safe.
func Close(h Handle) error {
	if h == InvalidHandle {
		return opError("close", "", ErrInvalidHandle)
	}
	if err := sysClose(h); err != nil {
		return opError("close", "", err)
	}
	return nil
}

// Shutdown performs a full-duplex shutdown of h without releasing the
// handle; the caller still owns it and must Close it.
func Shutdown(h Handle) error {
	if h == InvalidHandle {
		return opError("shutdown", "", ErrInvalidHandle)
	}
	if err := sysShutdown(h); err != nil {
		return opError("shutdown", "", err)
	}
	return nil
}

// LocalIP reports this host's IP as a dotted quad. A non-empty nic override
// is returned as given. Otherwise, a valid handle's bound interface is
// inspected; failing that, the host name is resolved. The handle form is
// the reliable one on multi-homed hosts, where the name lookup may pick an
// interface the peer cannot reach.
func LocalIP(nic string, h Handle) (string, error) {
	if nic != "" {
		return nic, nil
	}
	if h != InvalidHandle {
		ip, _, err := sysLocalName(h)
		if err != nil {
			return "", opError("localip", "", fmt.Errorf("%w: cannot get socket name: %w", ErrResolution, err))
		}
		return dottedQuad(ip), nil
	}
	s, err := localHostIP()
	if err != nil {
		return "", opError("localip", "", err)
	}
	return s, nil
}

// DiscoverLocalAddress finds the local outbound IP by opening a throwaway
// UDP association to remoteHost and reading back the local endpoint the OS
// chose. No packet is sent. When the probe cannot be set up, it returns
// "0.0.0.0" with a nil error so callers fall back to listening on all
// interfaces.
func DiscoverLocalAddress(remoteHost string) (string, error) {
	s, err := ConnectUDP(remoteHost, rendezvousPort, "")
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "DiscoverLocalAddress",
			"remote":   remoteHost,
			"error":    err.Error(),
		}).Warn("UDP probe failed; reporting wildcard address")
		return "0.0.0.0", nil
	}
	defer sysClose(s)

	ip, _, err := sysLocalName(s)
	if err != nil {
		return "", opError("discover", remoteHost, fmt.Errorf("%w: cannot get socket name: %w", ErrResolution, err))
	}
	return dottedQuad(ip), nil
}

// RequestCallback lobs a rendezvous datagram on the connected UDP handle,
// announcing "<ip> <port>" (NUL-terminated) so the remote server knows
// where to connect back. The handle stays owned by the caller regardless of
// outcome.
func RequestCallback(udp Handle, localPort uint16, nic string) error {
	if udp == InvalidHandle {
		return opError("callback", "", ErrInvalidHandle)
	}
	ip, err := LocalIP(nic, udp)
	if err != nil {
		return err
	}
	msg := append([]byte(fmt.Sprintf("%s %d", ip, localPort)), 0)
	if _, err := WriteAll(udp, msg); err != nil {
		return err
	}
	return nil
}
