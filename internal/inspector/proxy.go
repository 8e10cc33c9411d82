package inspector

import "net/http"

// proxyHeaders are the headers whose mere presence marks a request as
// proxied. Values are not validated.
var proxyHeaders = []string{
	"Via",
	"X-Forwarded-For",
	"Forwarded",
	"Proxy-Connection",
}

// IsProxied reports whether any proxy-indicating header is present on the
// request. This is a presence check only, not a verified proxy
// determination.
func IsProxied(r *http.Request) bool {
	if r == nil {
		return false
	}
	for _, h := range proxyHeaders {
		if len(r.Header.Values(h)) > 0 {
			return true
		}
	}
	return false
}
