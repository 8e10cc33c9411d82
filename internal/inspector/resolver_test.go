package inspector

import (
	"context"
	"errors"
	"net"
	"sync"
)

// fakeResolver scripts DNS outcomes for tests. The zero value answers every
// lookup with errNXDomain.
type fakeResolver struct {
	mu      sync.Mutex
	hosts   map[string][]string // LookupHost answers by hostname
	ips     map[string][]net.IP // LookupIP answers by hostname
	queried []string
}

var errNXDomain = errors.New("no such host")

func (f *fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	f.mu.Lock()
	f.queried = append(f.queried, host)
	f.mu.Unlock()

	if addrs, ok := f.hosts[host]; ok {
		return addrs, nil
	}
	return nil, errNXDomain
}

func (f *fakeResolver) LookupIP(_ context.Context, _ string, host string) ([]net.IP, error) {
	f.mu.Lock()
	f.queried = append(f.queried, host)
	f.mu.Unlock()

	if ips, ok := f.ips[host]; ok {
		return ips, nil
	}
	return nil, errNXDomain
}

func (f *fakeResolver) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queried) == 0 {
		return ""
	}
	return f.queried[len(f.queried)-1]
}
