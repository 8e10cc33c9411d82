package inspector

// ClientInfo is the aggregated per-request snapshot. It is built fresh for
// every request, never mutated after construction, and owned by the caller.
type ClientInfo struct {
	RequestID      string              `json:"request_id"`
	IP             string              `json:"ip,omitempty"`         // empty if no forwarded-for header and no socket address
	UserAgent      string              `json:"user_agent,omitempty"` // raw header value, unparsed
	Browser        string              `json:"browser,omitempty"`
	OS             string              `json:"os,omitempty"`
	Device         string              `json:"device,omitempty"`
	DNSInfo        []DNSAddress        `json:"dns_info"` // server host addresses; empty on failure, never nil
	IsProxy        bool                `json:"is_proxy"`
	IsTor          bool                `json:"is_tor"`
	RequestHeaders map[string][]string `json:"request_headers"`
	GeoLocation    *GeoLocation        `json:"geo_location,omitempty"`
	System         SystemInfo          `json:"system"`
	Timestamp      string              `json:"timestamp"`       // RFC 3339, set once at construction
	TimezoneOffset int                 `json:"timezone_offset"` // host clock offset in minutes
	IsHTTPS        bool                `json:"is_https"`
}

// DNSAddress is one resolved address of the server's own hostname.
type DNSAddress struct {
	Address string `json:"address"`
	Family  string `json:"family"` // "IPv4" or "IPv6"
}

// GeoLocation is the result of an offline IP-to-location lookup.
type GeoLocation struct {
	Country     string  `json:"country"` // ISO 3166-1 alpha-2 code
	CountryName string  `json:"country_name,omitempty"`
	City        string  `json:"city,omitempty"`
	TimeZone    string  `json:"time_zone,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// SystemInfo is a snapshot of the host the server runs on.
// Collection is all-or-nothing: on any probe failure the whole snapshot is
// replaced with UnknownSystemInfo().
type SystemInfo struct {
	Platform          string             `json:"platform"`
	CPUArch           string             `json:"cpu_arch"`
	CPUCores          int                `json:"cpu_cores"`
	TotalMemory       uint64             `json:"total_memory"`
	FreeMemory        uint64             `json:"free_memory"`
	NetworkInterfaces []NetworkInterface `json:"network_interfaces"`
}

// NetworkInterface is one entry of the host interface table.
type NetworkInterface struct {
	Name      string   `json:"name"`
	MAC       string   `json:"mac,omitempty"`
	Addresses []string `json:"addresses"`
}

// UnknownSystemInfo returns the fixed fallback snapshot used when host
// queries fail.
func UnknownSystemInfo() SystemInfo {
	return SystemInfo{
		Platform:          "unknown",
		CPUArch:           "unknown",
		CPUCores:          0,
		TotalMemory:       0,
		FreeMemory:        0,
		NetworkInterfaces: []NetworkInterface{},
	}
}
