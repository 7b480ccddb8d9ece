package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/chaofengc/scholar/internal/cache"
)

// Provider names, as reported by Chain.Fetch and build logs.
const (
	sourceNetwork = "network"
	sourceCache   = "cache"
	sourceFile    = "file"
	sourceBuiltin = "builtin"
)

// DefaultTimeout is the HTTP timeout for remote resource fetches.
const DefaultTimeout = 10 * time.Second

// maxBody caps remote resource reads at 8 MiB.
const maxBody = 8 << 20

// HTTPSource fetches a resource over HTTP(S).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates a network source for the given URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		URL:    url,
		Client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return sourceNetwork }

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", s.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.URL, err)
	}

	return string(body), nil
}

// CacheSource reads the most recently cached copy of a resource.
type CacheSource struct {
	DB   *cache.DB
	Slot string
}

// Name implements Source.
func (s *CacheSource) Name() string { return sourceCache }

// Fetch implements Source.
func (s *CacheSource) Fetch(ctx context.Context) (string, error) {
	body, _, err := s.DB.GetResource(s.Slot)
	return body, err
}

// FileSource reads a resource from the local site directory.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s *FileSource) Name() string { return sourceFile }

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return string(data), nil
}

// BuiltinSource serves a built-in body and never fails. Placed last in a
// chain, it guarantees a build is never left without data.
type BuiltinSource struct {
	Body string
}

// Name implements Source.
func (s *BuiltinSource) Name() string { return sourceBuiltin }

// Fetch implements Source.
func (s *BuiltinSource) Fetch(ctx context.Context) (string, error) {
	return s.Body, nil
}
