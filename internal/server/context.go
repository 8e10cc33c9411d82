package server

import (
	"context"
	"net/http"

	"github.com/muliwe/go-client-inspector/internal/inspector"
)

type contextKey string

// clientInfoKey is the conventional context key the middleware stores the
// aggregated record under.
const clientInfoKey contextKey = "client_info"

// ClientInfoToContext attaches an aggregated record to a context.
func ClientInfoToContext(ctx context.Context, info *inspector.ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey, info)
}

// ClientInfoFromContext retrieves the record stored by the middleware.
// Returns nil when no record was attached.
func ClientInfoFromContext(ctx context.Context) *inspector.ClientInfo {
	if info, ok := ctx.Value(clientInfoKey).(*inspector.ClientInfo); ok {
		return info
	}
	return nil
}

// ClientInfoFromRequest retrieves the record from the HTTP request context.
func ClientInfoFromRequest(r *http.Request) *inspector.ClientInfo {
	return ClientInfoFromContext(r.Context())
}
