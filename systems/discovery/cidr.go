// Package discovery finds miners in local networks.
package discovery

import (
	"net"

	"github.com/pkg/errors"
)

// Smallest prefix which is scanned, bigger networks are narrowed down.
const minPrefix = 22

// ParseCIDR parses CIDR and returns all host addresses of the range.
// Network and broadcast addresses are excluded.
func ParseCIDR(cidr string) ([]string, error) {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid CIDR")
	}

	if nil == ip.To4() {
		return nil, errors.Errorf("only IPv4 networks are supported: %s", cidr)
	}

	if ones, _ := ipnet.Mask.Size(); ones < minPrefix {
		ipnet = &net.IPNet{IP: ip.To4(), Mask: net.CIDRMask(minPrefix, 32)}
		ipnet.IP = ipnet.IP.Mask(ipnet.Mask)
	}

	ips := make([]string, 0)
	for cur := dup(ipnet.IP.Mask(ipnet.Mask)); ipnet.Contains(cur); incIP(cur) {
		ips = append(ips, cur.String())
	}

	if len(ips) > 2 {
		return ips[1 : len(ips)-1], nil
	}

	return ips, nil
}

// Copies IP.
func dup(ip net.IP) net.IP {
	res := make(net.IP, len(ip))
	copy(res, ip)
	return res
}

// Increments IP address by one.
func incIP(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

// LocalNetworks returns IPv4 networks of the active non-loopback adapters.
func LocalNetworks(addrs func() ([]net.Addr, error)) ([]string, error) {
	list, err := addrs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list adapters")
	}

	res := make([]string, 0)
	seen := make(map[string]bool)
	for _, a := range list {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || nil == ipnet.IP.To4() {
			continue
		}

		n := (&net.IPNet{IP: ipnet.IP.Mask(ipnet.Mask), Mask: ipnet.Mask}).String()
		if seen[n] {
			continue
		}

		seen[n] = true
		res = append(res, n)
	}

	return res, nil
}

// Lists addresses of the up adapters.
func interfaceAddrs() ([]net.Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	res := make([]net.Addr, 0)
	for _, i := range ifaces {
		if i.Flags&net.FlagUp == 0 || i.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := i.Addrs()
		if err != nil {
			continue
		}

		res = append(res, addrs...)
	}

	return res, nil
}
