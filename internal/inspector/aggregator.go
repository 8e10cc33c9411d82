package inspector

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrAggregationFailed is the single error surfaced by Aggregate. The
// sub-derivations all degrade to neutral defaults, so this only fires if
// something escapes that design; callers get no partial record.
var ErrAggregationFailed = errors.New("client info aggregation failed")

// Config holds aggregator dependencies. Zero values select working
// defaults, so Config{} is a usable configuration (without geolocation).
type Config struct {
	// Resolver performs the forward and exit-list DNS lookups.
	// Defaults to net.DefaultResolver.
	Resolver Resolver

	// Geo is the offline IP-to-location database. Nil disables
	// geolocation; records then carry a nil GeoLocation.
	Geo GeoLookup

	// TorExitZone is the DNS zone of the Tor exit list.
	// Defaults to DefaultTorExitZone.
	TorExitZone string

	// Hostname returns the server's own hostname for the DNS info
	// collector. Defaults to os.Hostname.
	Hostname func() (string, error)

	// ReadSystem takes the host system snapshot.
	// Defaults to ReadSystemInfo.
	ReadSystem func(ctx context.Context) SystemInfo

	// Now supplies record timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Aggregator builds Client Info Records from inbound requests.
type Aggregator struct {
	resolver   Resolver
	geo        GeoLookup
	torZone    string
	hostname   func() (string, error)
	readSystem func(ctx context.Context) SystemInfo
	now        func() time.Time
}

// New creates an aggregator from cfg, filling in defaults for unset fields.
func New(cfg Config) *Aggregator {
	a := &Aggregator{
		resolver:   cfg.Resolver,
		geo:        cfg.Geo,
		torZone:    cfg.TorExitZone,
		hostname:   cfg.Hostname,
		readSystem: cfg.ReadSystem,
		now:        cfg.Now,
	}
	if a.resolver == nil {
		a.resolver = net.DefaultResolver
	}
	if a.torZone == "" {
		a.torZone = DefaultTorExitZone
	}
	if a.hostname == nil {
		a.hostname = os.Hostname
	}
	if a.readSystem == nil {
		a.readSystem = ReadSystemInfo
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// Aggregate derives every record field from the request and merges them
// with a freshly captured timestamp. The Tor check depends on the resolved
// client IP; the two DNS lookups run concurrently, all other derivations
// are synchronous. The returned record is complete even under partial
// lookup failure; only an unexpected internal fault produces
// ErrAggregationFailed, and then no record at all.
func (a *Aggregator) Aggregate(ctx context.Context, r *http.Request) (info *ClientInfo, err error) {
	defer func() {
		if recover() != nil {
			info = nil
			err = ErrAggregationFailed
		}
	}()

	if r == nil {
		return nil, ErrAggregationFailed
	}

	now := a.now()
	_, offsetSeconds := now.Zone()

	ip := ClientIP(r)
	ua := parseUserAgent(r.Header.Get("User-Agent"))

	var (
		isTor   bool
		dnsInfo []DNSAddress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		isTor = a.isTorExit(gctx, ip)
		return nil
	})
	g.Go(func() error {
		dnsInfo = a.hostDNSInfo(gctx)
		return nil
	})
	_ = g.Wait() // the lookups degrade internally and never return errors

	var geo *GeoLocation
	if a.geo != nil && ip != "" {
		geo = a.geo.Lookup(ip)
	}

	headers := make(map[string][]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = append([]string(nil), values...)
	}

	return &ClientInfo{
		RequestID:      uuid.New().String(),
		IP:             ip,
		UserAgent:      r.Header.Get("User-Agent"),
		Browser:        ua.browser,
		OS:             ua.os,
		Device:         ua.device,
		DNSInfo:        dnsInfo,
		IsProxy:        IsProxied(r),
		IsTor:          isTor,
		RequestHeaders: headers,
		GeoLocation:    geo,
		System:         a.readSystem(ctx),
		Timestamp:      now.UTC().Format(time.RFC3339Nano),
		TimezoneOffset: offsetSeconds / 60,
		IsHTTPS:        r.TLS != nil,
	}, nil
}
