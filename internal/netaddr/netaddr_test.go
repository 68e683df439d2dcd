package netaddr

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name string
		ips  []net.IP
		want net.IP
	}{
		{
			name: "Empty",
			ips:  nil,
		},
		{
			name: "Only loopback",
			ips:  []net.IP{net.ParseIP("127.0.0.1"), net.ParseIP("127.0.1.1"), net.ParseIP("::1")},
		},
		{
			name: "Skips IPv6 and link-local",
			ips: []net.IP{
				net.ParseIP("fe80::1"),
				net.ParseIP("2001:db8::1"),
				net.ParseIP("169.254.10.1"),
				net.ParseIP("192.168.1.20"),
			},
			want: net.ParseIP("192.168.1.20"),
		},
		{
			name: "First match wins",
			ips:  []net.IP{net.ParseIP("127.0.1.1"), net.ParseIP("10.0.0.5"), net.ParseIP("192.168.1.20")},
			want: net.ParseIP("10.0.0.5"),
		},
		{
			name: "Unspecified",
			ips:  []net.IP{net.IPv4zero},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(tt.ips)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestInterfaceIPs(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("192.168.1.20"), Mask: net.CIDRMask(24, 32)},
		&net.IPAddr{IP: net.ParseIP("10.0.0.5")},
		&net.TCPAddr{IP: net.ParseIP("172.16.0.1"), Port: 80},
	}

	got := interfaceIPs(addrs)

	assert.Len(t, got, 2)
	assert.Equal(t, "192.168.1.20", got[0].String())
	assert.Equal(t, "10.0.0.5", got[1].String())
}

func TestLocalIP(t *testing.T) {
	ip := LocalIP()

	assert.NotNil(t, ip.To4())
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://192.168.1.20:8000", URL(net.ParseIP("192.168.1.20"), 8000))
	assert.Equal(t, "http://[2001:db8::1]:8000", URL(net.ParseIP("2001:db8::1"), 8000))
}

func TestIsLoopbackHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"127.0.0.1", true},
		{"127.0.1.1", true},
		{"::1", true},
		{"localhost", true},
		{"0.0.0.0", false},
		{"::", false},
		{"192.168.1.20", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLoopbackHost(tt.host))
		})
	}
}
