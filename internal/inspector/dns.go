package inspector

import (
	"context"
	"net"
)

// Resolver is the subset of net.Resolver used by the aggregator, split out
// so DNS outcomes can be injected in tests.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// hostDNSInfo resolves the server's own hostname to its full address list.
// This describes the host the inspector runs on, not the client.
// Returns an empty (never nil) slice on any failure.
func (a *Aggregator) hostDNSInfo(ctx context.Context) []DNSAddress {
	name, err := a.hostname()
	if err != nil || name == "" {
		return []DNSAddress{}
	}

	ips, err := a.resolver.LookupIP(ctx, "ip", name)
	if err != nil {
		return []DNSAddress{}
	}

	info := make([]DNSAddress, 0, len(ips))
	for _, ip := range ips {
		family := "IPv6"
		if ip.To4() != nil {
			family = "IPv4"
		}
		info = append(info, DNSAddress{Address: ip.String(), Family: family})
	}
	return info
}
