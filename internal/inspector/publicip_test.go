package inspector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPublicIPFetcher_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("203.0.113.99\n"))
	}))
	defer ts.Close()

	f := NewPublicIPFetcher(ts.Client(), ts.URL)
	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "203.0.113.99" {
		t.Errorf("Fetch() = %q, want %q", got, "203.0.113.99")
	}
}

func TestPublicIPFetcher_NonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	f := NewPublicIPFetcher(ts.Client(), ts.URL)
	if _, err := f.Fetch(context.Background()); !errors.Is(err, ErrPublicIPFetch) {
		t.Errorf("Fetch() error = %v, want ErrPublicIPFetch", err)
	}
}

func TestPublicIPFetcher_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	f := NewPublicIPFetcher(nil, ts.URL)
	if _, err := f.Fetch(context.Background()); !errors.Is(err, ErrPublicIPFetch) {
		t.Errorf("Fetch() error = %v, want ErrPublicIPFetch", err)
	}
}

func TestPublicIPFetcher_Defaults(t *testing.T) {
	f := NewPublicIPFetcher(nil, "")
	if f.client != http.DefaultClient {
		t.Error("nil client should default to http.DefaultClient")
	}
	if f.endpoint != DefaultPublicIPEndpoint {
		t.Errorf("endpoint = %q, want %q", f.endpoint, DefaultPublicIPEndpoint)
	}
}
