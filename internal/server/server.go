package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muliwe/go-client-inspector/internal/inspector"
	"github.com/muliwe/go-client-inspector/internal/logger"
)

// Config holds server configuration
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	EnableDebug  bool
	LoggerConfig logger.Config

	// GeoDBPath points at a bundled MaxMind City database.
	// Empty disables geolocation.
	GeoDBPath string

	// PublicIPEndpoint overrides the what-is-my-ip endpoint.
	PublicIPEndpoint string

	// TLS configuration
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		EnableDebug:  true,
		LoggerConfig: logger.DefaultConfig(),
		TLSEnabled:   false,
	}
}

// Server represents the HTTP server
type Server struct {
	cfg        Config
	httpServer *http.Server
	handler    *Handler
	logger     *logger.Logger
	geo        *inspector.GeoDB
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Initialize logger
	l, err := logger.New(cfg.LoggerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Geolocation is optional; without a database records carry no location
	var geo *inspector.GeoDB
	if cfg.GeoDBPath != "" {
		geo, err = inspector.OpenGeoDB(cfg.GeoDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open geo database: %w", err)
		}
	}

	// Initialize components
	aggCfg := inspector.Config{}
	if geo != nil {
		aggCfg.Geo = geo
	}
	agg := inspector.New(aggCfg)
	pub := inspector.NewPublicIPFetcher(nil, cfg.PublicIPEndpoint)
	handler := NewHandler(agg, pub, l)

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.HandleInspect)
	mux.HandleFunc("/health", handler.HandleHealth)
	mux.HandleFunc("/myip", handler.HandleMyIP)
	if cfg.EnableDebug {
		mux.HandleFunc("/debug", handler.HandleDebug)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.TLSEnabled {
		httpServer.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2", "http/1.1"}, // Enable HTTP/2
		}
	}

	return &Server{
		cfg:        cfg,
		httpServer: httpServer,
		handler:    handler,
		logger:     l,
		geo:        geo,
	}, nil
}

// Start starts the server and blocks until shutdown
func (s *Server) Start() error {
	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		protocol := "HTTP"
		if s.cfg.TLSEnabled {
			protocol = "HTTPS"
		}
		log.Printf("Client Inspector Server starting on %s (%s)", s.cfg.Addr, protocol)
		log.Printf("Endpoints: / (inspect), /health (health check), /myip (server public IP)")
		if s.cfg.EnableDebug {
			log.Printf("Debug endpoint enabled: /debug")
		}
		if s.cfg.GeoDBPath != "" {
			log.Printf("Geo database: %s", s.cfg.GeoDBPath)
		}
		log.Printf("Logs: %s", s.logger.LogPath())

		var err error
		if s.cfg.TLSEnabled {
			err = s.httpServer.ListenAndServeTLS(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.geo != nil {
		if err := s.geo.Close(); err != nil {
			log.Printf("Error closing geo database: %v", err)
		}
	}

	if err := s.logger.Close(); err != nil {
		log.Printf("Error closing logger: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	if s.geo != nil {
		_ = s.geo.Close()
	}

	return s.logger.Close()
}
