package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/muliwe/go-client-inspector/internal/inspector"
	"github.com/muliwe/go-client-inspector/internal/logger"
)

const version = "0.1.0"

// Response represents the API response
type Response struct {
	ClientInfo *inspector.ClientInfo `json:"client_info"`
	Summary    string                `json:"summary"`
	Version    string                `json:"version"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// MyIPResponse represents the public-IP endpoint response
type MyIPResponse struct {
	IP string `json:"ip"`
}

// ErrorResponse represents a generic error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	aggregator *inspector.Aggregator
	publicIP   *inspector.PublicIPFetcher
	logger     *logger.Logger
	quiet      bool // suppress console logging (useful for tests)
}

// NewHandler creates a new handler with dependencies
func NewHandler(agg *inspector.Aggregator, pub *inspector.PublicIPFetcher, l *logger.Logger) *Handler {
	return &Handler{
		aggregator: agg,
		publicIP:   pub,
		logger:     l,
		quiet:      false,
	}
}

// SetQuiet enables or disables console logging
func (h *Handler) SetQuiet(quiet bool) {
	h.quiet = quiet
}

// HandleInspect handles the main inspection endpoint
func (h *Handler) HandleInspect(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	info, err := h.aggregator.Aggregate(r.Context(), r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "aggregation failed")
		return
	}

	responseTime := time.Since(startTime).Milliseconds()

	if h.logger != nil {
		if err := h.logger.LogRecord(info, r.RemoteAddr, responseTime); err != nil {
			log.Printf("Error logging record: %v", err)
		}
	}

	if !h.quiet {
		log.Printf("[%s] %s %s - %s - %dms",
			r.RemoteAddr,
			r.Method,
			r.URL.Path,
			inspector.Summary(info),
			responseTime,
		)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Response{
		ClientInfo: info,
		Summary:    inspector.Summary(info),
		Version:    version,
	}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// HandleHealth handles the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:  "ok",
		Version: version,
	}); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}

// HandleMyIP reports the server's externally visible IP address
func (h *Handler) HandleMyIP(w http.ResponseWriter, r *http.Request) {
	ip, err := h.publicIP.Fetch(r.Context())
	if err != nil {
		if !h.quiet {
			log.Printf("Public IP fetch error: %v", err)
		}
		writeJSONError(w, http.StatusBadGateway, "public ip fetch failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(MyIPResponse{IP: ip}); err != nil {
		log.Printf("Error encoding myip response: %v", err)
	}
}

// HandleDebug returns the indented full record for debugging (optional endpoint)
func (h *Handler) HandleDebug(w http.ResponseWriter, r *http.Request) {
	info, err := h.aggregator.Aggregate(r.Context(), r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "aggregation failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(info); err != nil {
		log.Printf("Error encoding debug response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}
