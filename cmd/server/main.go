package main

import (
	"log"
	"os"

	"github.com/muliwe/go-client-inspector/internal/server"
)

func main() {
	cfg := server.DefaultConfig()

	// Allow port override from environment
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	// Enable debug endpoint in development
	if os.Getenv("DEBUG") == "true" {
		cfg.EnableDebug = true
	}

	// Bundled MaxMind City database for offline geolocation
	if geoDB := os.Getenv("GEOIP_DB"); geoDB != "" {
		cfg.GeoDBPath = geoDB
	}

	// What-is-my-ip endpoint override
	if endpoint := os.Getenv("PUBLIC_IP_ENDPOINT"); endpoint != "" {
		cfg.PublicIPEndpoint = endpoint
	}

	// TLS configuration from environment
	tlsCert := os.Getenv("TLS_CERT")
	tlsKey := os.Getenv("TLS_KEY")
	if tlsCert != "" && tlsKey != "" {
		cfg.TLSEnabled = true
		cfg.TLSCertFile = tlsCert
		cfg.TLSKeyFile = tlsKey
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
