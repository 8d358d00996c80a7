package netaddr

import (
	"net"

	xe "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/errors"
)

// DefaultProbeTarget is used to measure the local IP when no parent
// server is configured. No packet is ever sent; dialing UDP only selects
// the local endpoint the OS would route from.
const DefaultProbeTarget = "8.8.8.8:80"

// LocalIP reports the local IP address the OS would use to reach target.
//
// target is a "host:port" address. When host has no port, port 80 is assumed.
func LocalIP(target string) (string, error) {
	if _, _, err := net.SplitHostPort(target); err != nil {
		target = net.JoinHostPort(target, "80")
	}

	conn, err := net.Dial("udp", target)
	if err != nil {
		return "", xe.Wrap(err)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", xe.New("udp probe: local address is not UDP")
	}
	return local.IP.String(), nil
}
