package socket

import (
	"fmt"
	"net"
	"os"
)

// resolveIPv4 maps host to a 4-byte IPv4 address. An empty host means the
// wildcard address. Dotted-decimal strings are parsed directly; anything
// else goes through a name lookup, avoiding the slow resolver path for
// literal addresses.
func resolveIPv4(host string) ([4]byte, error) {
	var addr [4]byte
	if host == "" {
		return addr, nil
	}
	if ip := net.ParseIP(host); ip != nil {
		v4 := ip.To4()
		if v4 == nil {
			return addr, fmt.Errorf("%w: %s is not an IPv4 address", ErrResolution, host)
		}
		copy(addr[:], v4)
		return addr, nil
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return addr, fmt.Errorf("%w: %s: %w", ErrResolution, host, err)
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			copy(addr[:], v4)
			return addr, nil
		}
	}
	return addr, fmt.Errorf("%w: no IPv4 address for %s", ErrResolution, host)
}

// dottedQuad formats a 4-byte address as "a.b.c.d".
func dottedQuad(ip [4]byte) string {
	return fmt.Sprintf("%d.%d.%d.%d", ip[0], ip[1], ip[2], ip[3])
}

// localHostIP resolves this host's own name to a dotted-quad IPv4 string.
func localHostIP() (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("%w: cannot determine local hostname: %w", ErrResolution, err)
	}
	ip, err := resolveIPv4(name)
	if err != nil {
		return "", err
	}
	return dottedQuad(ip), nil
}
