package helpers

import (
	"fmt"
	"net"
)

// GlobalUnicastIPString returns the first global unicast IP address of this
// host as a string. Used by cmd/myregistrar when HOST_IP is not configured:
// the registry needs an address reachable by discovery consumers, so
// loopback, link-local and multicast addresses are skipped.
func GlobalUnicastIPString() (string, error) {
	ip, err := globalUnicastIP()
	if err != nil {
		return "", err
	}
	return ip.String(), nil
}

func globalUnicastIP() (net.IP, error) {
	for _, ip := range allIPs() {
		if ip.IsUnspecified() || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		if ip.IsMulticast() || ip.IsLinkLocalMulticast() || ip.IsInterfaceLocalMulticast() {
			continue
		}
		if ip.IsGlobalUnicast() {
			return ip, nil
		}
	}
	return nil, fmt.Errorf("no global unicast IP found")
}

func allIPs() []net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	var ips []net.IP
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ip := extractIP(addr)
			if len(ip) == 0 {
				continue
			}
			ips = append(ips, ip)
		}
	}
	return ips
}

func extractIP(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.IPAddr:
		return v.IP
	case *net.IPNet:
		return v.IP
	case *net.TCPAddr:
		return v.IP
	case *net.UDPAddr:
		return v.IP
	default:
		return nil
	}
}
