// Package netaddr finds the address other devices on the LAN can use to reach
// this machine.
package netaddr

import (
	"net"
	"os"
	"strconv"

	"github.com/samber/lo"
)

// Loopback is returned when no better address is found.
var Loopback = net.IPv4(127, 0, 0, 1)

// LocalIP returns the IPv4 address of this host as seen from the LAN.
//
// The host name is resolved first. When that only yields loopback
// addresses (common on Debian, where the host name maps to 127.0.1.1), the
// interface addresses are scanned instead. The result is only displayed; the
// server always binds the configured host.
func LocalIP() net.IP {
	var candidates []net.IP
	if host, err := os.Hostname(); err == nil {
		if ips, err := net.LookupIP(host); err == nil {
			candidates = append(candidates, ips...)
		}
	}
	if ip, ok := Pick(candidates); ok {
		return ip
	}

	if addrs, err := net.InterfaceAddrs(); err == nil {
		if ip, ok := Pick(interfaceIPs(addrs)); ok {
			return ip
		}
	}
	return Loopback
}

// Pick returns the first IPv4 address that is neither loopback, link-local
// nor unspecified.
func Pick(ips []net.IP) (net.IP, bool) {
	return lo.Find(ips, func(ip net.IP) bool {
		return ip.To4() != nil &&
			!ip.IsLoopback() &&
			!ip.IsLinkLocalUnicast() &&
			!ip.IsUnspecified()
	})
}

func interfaceIPs(addrs []net.Addr) []net.IP {
	return lo.FilterMap(addrs, func(addr net.Addr, _ int) (net.IP, bool) {
		switch a := addr.(type) {
		case *net.IPNet:
			return a.IP, true
		case *net.IPAddr:
			return a.IP, true
		}
		return nil, false
	})
}

// IsLoopbackHost reports whether binding host only accepts connections from
// this machine.
func IsLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// URL formats the http URL for ip and port.
func URL(ip net.IP, port int) string {
	return "http://" + net.JoinHostPort(ip.String(), strconv.Itoa(port))
}
