package pageindex

import (
	"context"
	"strings"
)

// Fetcher retrieves a source document from a URL.
type Fetcher interface {
	// Fetch returns the raw bytes at url. The context controls timeout
	// and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// IsURL reports whether source names a remote document rather than a
// local file.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
