package inspector

import (
	"net"

	"github.com/oschwald/geoip2-golang"
)

// GeoLookup resolves an IP to a location. Implementations return nil for
// unresolvable IPs and lookup misses; they never perform network calls.
type GeoLookup interface {
	Lookup(ip string) *GeoLocation
}

// GeoDB wraps a bundled MaxMind City database.
type GeoDB struct {
	reader *geoip2.Reader
}

// OpenGeoDB opens a MaxMind City database file.
func OpenGeoDB(path string) (*GeoDB, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &GeoDB{reader: reader}, nil
}

// Lookup resolves an IP offline. Returns nil when the IP does not parse,
// the database has no entry, or the entry carries no country.
func (g *GeoDB) Lookup(ip string) *GeoLocation {
	if g == nil || g.reader == nil {
		return nil
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil
	}

	rec, err := g.reader.City(parsed)
	if err != nil || rec == nil || rec.Country.IsoCode == "" {
		return nil
	}

	return &GeoLocation{
		Country:     rec.Country.IsoCode,
		CountryName: rec.Country.Names["en"],
		City:        rec.City.Names["en"],
		TimeZone:    rec.Location.TimeZone,
		Latitude:    rec.Location.Latitude,
		Longitude:   rec.Location.Longitude,
	}
}

// Close releases the underlying database file.
func (g *GeoDB) Close() error {
	if g == nil || g.reader == nil {
		return nil
	}
	return g.reader.Close()
}
