package inspector

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

// ClientIP resolves the client address of a request.
// A single X-Forwarded-For value wins: its first comma-separated entry,
// trimmed. Otherwise the socket's remote address is used, with the port
// stripped when present. Returns "" when neither is available.
//
// The forwarded-for header is client-supplied and untrusted by nature; this
// function reports what the request claims, it does not verify it.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}

	if fwd := r.Header.Values("X-Forwarded-For"); len(fwd) == 1 {
		first, _, _ := strings.Cut(fwd[0], ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if r.RemoteAddr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// IsPrivateIP reports whether a dotted-quad IPv4 string falls in
// 10.0.0.0/8, 172.16.0.0/12 or 192.168.0.0/16.
// Malformed input never errors: non-numeric octets simply match nothing.
func IsPrivateIP(ip string) bool {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return false
	}

	octet := func(i int) int {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 || n > 255 {
			return -1
		}
		return n
	}

	switch {
	case octet(0) == 10:
		return true
	case octet(0) == 172 && octet(1) >= 16 && octet(1) <= 31:
		return true
	case octet(0) == 192 && octet(1) == 168:
		return true
	}
	return false
}
