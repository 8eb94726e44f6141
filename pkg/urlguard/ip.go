package urlguard

import "net/netip"

// isForbiddenIPHost reports whether hostname is an IP literal in a
// private/reserved range. Non-IP hostnames return false; they are screened by
// the pattern list instead. IPv4-mapped IPv6 addresses are unmapped first so
// ::ffff:192.168.1.1 classifies the same as 192.168.1.1.
func isForbiddenIPHost(hostname string) bool {
	addr, err := netip.ParseAddr(hostname)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	if addr.IsLoopback() || addr.IsUnspecified() || addr.IsPrivate() {
		return true
	}
	if addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() {
		return true
	}

	if addr.Is4() {
		octets := addr.As4()
		// 0.0.0.0/8, "this network"
		if octets[0] == 0 {
			return true
		}
		// 100.64.0.0/10, carrier-grade NAT
		if octets[0] == 100 && octets[1] >= 64 && octets[1] <= 127 {
			return true
		}
		return false
	}

	// fc00::/7, IPv6 unique local
	raw := addr.As16()
	return raw[0]&0xfe == 0xfc
}
