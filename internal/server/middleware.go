package server

import (
	"log"
	"net/http"

	"github.com/muliwe/go-client-inspector/internal/inspector"
)

// Middleware aggregates a Client Info Record per request and attaches it to
// the request context before invoking next. Aggregation failure is logged
// and suppressed: next always runs, with or without a record, so the
// pipeline is never blocked by inspection.
func Middleware(agg *inspector.Aggregator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, err := agg.Aggregate(r.Context(), r)
		if err != nil {
			log.Printf("client info middleware: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ClientInfoToContext(r.Context(), info)))
	})
}
