package inspector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultPublicIPEndpoint answers with the caller's address as a plain text
// body.
const DefaultPublicIPEndpoint = "https://api.ipify.org"

// ErrPublicIPFetch is returned when the public-IP endpoint cannot be
// reached or answers with a non-200 status. There is no retry.
var ErrPublicIPFetch = errors.New("public ip fetch failed")

// PublicIPFetcher queries a what-is-my-ip endpoint for the server's
// externally visible address.
type PublicIPFetcher struct {
	client   *http.Client
	endpoint string
}

// NewPublicIPFetcher creates a fetcher. A nil client uses
// http.DefaultClient; an empty endpoint uses DefaultPublicIPEndpoint.
func NewPublicIPFetcher(client *http.Client, endpoint string) *PublicIPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultPublicIPEndpoint
	}
	return &PublicIPFetcher{client: client, endpoint: endpoint}
}

// Fetch issues a single GET and returns the trimmed response body.
// Any transport or status failure maps to ErrPublicIPFetch.
func (f *PublicIPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublicIPFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublicIPFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrPublicIPFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublicIPFetch, err)
	}

	return strings.TrimSpace(string(body)), nil
}
