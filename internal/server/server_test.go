package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muliwe/go-client-inspector/internal/inspector"
)

// stubResolver fails every lookup so handler tests never touch the network.
type stubResolver struct{}

func (stubResolver) LookupHost(context.Context, string) ([]string, error) {
	return nil, context.Canceled
}

func (stubResolver) LookupIP(context.Context, string, string) ([]net.IP, error) {
	return nil, context.Canceled
}

func testAggregator() *inspector.Aggregator {
	return inspector.New(inspector.Config{
		Resolver: stubResolver{},
		Hostname: func() (string, error) { return "test-host", nil },
		ReadSystem: func(context.Context) inspector.SystemInfo {
			return inspector.UnknownSystemInfo()
		},
	})
}

func newTestHandler(pub *inspector.PublicIPFetcher) *Handler {
	h := NewHandler(testAggregator(), pub, nil) // nil file logger
	h.SetQuiet(true)
	return h
}

func TestHandleInspect(t *testing.T) {
	handler := newTestHandler(nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("User-Agent", "curl/8.0.1")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec := httptest.NewRecorder()

	handler.HandleInspect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ClientInfo == nil {
		t.Fatal("response carries no client info")
	}
	if resp.ClientInfo.IP != "203.0.113.7" {
		t.Errorf("IP = %q, want %q", resp.ClientInfo.IP, "203.0.113.7")
	}
	if !resp.ClientInfo.IsProxy {
		t.Error("IsProxy = false, want true")
	}
	if resp.Summary == "" {
		t.Error("Summary is empty")
	}
	if resp.Version != version {
		t.Errorf("Version = %q, want %q", resp.Version, version)
	}
}

func TestHandleInspect_NotFoundOffRoot(t *testing.T) {
	handler := newTestHandler(nil)

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()

	handler.HandleInspect(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(nil)

	rec := httptest.NewRecorder()
	handler.HandleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want %q", resp.Status, "ok")
	}
}

func TestHandleMyIP(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("203.0.113.99"))
	}))
	defer upstream.Close()

	handler := newTestHandler(inspector.NewPublicIPFetcher(upstream.Client(), upstream.URL))

	rec := httptest.NewRecorder()
	handler.HandleMyIP(rec, httptest.NewRequest("GET", "/myip", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp MyIPResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.IP != "203.0.113.99" {
		t.Errorf("IP = %q, want %q", resp.IP, "203.0.113.99")
	}
}

func TestHandleMyIP_FetchFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	handler := newTestHandler(inspector.NewPublicIPFetcher(nil, upstream.URL))

	rec := httptest.NewRecorder()
	handler.HandleMyIP(rec, httptest.NewRequest("GET", "/myip", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestHandleDebug(t *testing.T) {
	handler := newTestHandler(nil)

	req := httptest.NewRequest("GET", "/debug", nil)
	req.Header.Set("User-Agent", "curl/8.0.1")
	rec := httptest.NewRecorder()

	handler.HandleDebug(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var info inspector.ClientInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if info.UserAgent != "curl/8.0.1" {
		t.Errorf("UserAgent = %q, want %q", info.UserAgent, "curl/8.0.1")
	}
}
