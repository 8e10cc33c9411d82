package inspector

import "fmt"

// summaryUnknown substitutes fields the record does not carry.
const summaryUnknown = "unknown"

// Summary renders a record as a single human-readable line, e.g.
//
//	IP: 1.2.3.4, User-Agent: X, Proxy: true, Tor: false, Location: US
//
// A nil record yields a fixed error string instead of failing.
func Summary(info *ClientInfo) string {
	if info == nil {
		return "invalid client info record"
	}

	ip := info.IP
	if ip == "" {
		ip = summaryUnknown
	}
	ua := info.UserAgent
	if ua == "" {
		ua = summaryUnknown
	}
	location := summaryUnknown
	if info.GeoLocation != nil && info.GeoLocation.Country != "" {
		location = info.GeoLocation.Country
	}

	return fmt.Sprintf("IP: %s, User-Agent: %s, Proxy: %t, Tor: %t, Location: %s",
		ip, ua, info.IsProxy, info.IsTor, location)
}
