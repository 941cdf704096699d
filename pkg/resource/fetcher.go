package resource

import (
	"fmt"

	stdnet "unveil/std/net"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches resources over HTTP/HTTPS, resolving relative URIs
// against a base URL.
type DefaultFetcher struct {
	baseURL string
}

// NewFetcher creates a DefaultFetcher with the given base URL.
// Relative URIs passed to Fetch will be resolved against this base.
func NewFetcher(baseURL string) *DefaultFetcher {
	return &DefaultFetcher{baseURL: baseURL}
}

// Fetch retrieves the resource at the given URI.
// Relative URIs are resolved against the fetcher's base URL.
func (f *DefaultFetcher) Fetch(uri string) ([]byte, string, error) {
	resolved := uri
	if !stdnet.IsNetworkURL(uri) && f.baseURL != "" {
		resolved = stdnet.ResolveURL(f.baseURL, uri)
	}
	if !stdnet.IsNetworkURL(resolved) {
		return nil, "", fmt.Errorf("cannot fetch non-network URI: %s", resolved)
	}
	return stdnet.Fetch(resolved)
}
