package inspector

import (
	"context"
	"strings"
)

// DefaultTorExitZone is the Tor Project exit-list DNS zone queried by the
// Tor check.
const DefaultTorExitZone = "exitlist.torproject.org"

// isTorExit checks a client IP against the configured Tor exit-list zone.
// The check resolves <ip>.<zone>; membership is assumed when the lookup
// succeeds with at least one result. Every lookup error, NXDOMAIN included,
// means "not Tor". This is the one derivation that needs a network round
// trip and is typically the slowest step of an aggregation.
func (a *Aggregator) isTorExit(ctx context.Context, ip string) bool {
	if ip == "" {
		return false
	}

	// IPv4-mapped IPv6 form (::ffff:1.2.3.4) queries as plain IPv4.
	ip = strings.TrimPrefix(ip, "::ffff:")

	names, err := a.resolver.LookupHost(ctx, ip+"."+a.torZone)
	return err == nil && len(names) > 0
}
