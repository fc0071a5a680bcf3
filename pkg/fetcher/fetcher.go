// Package fetcher retrieves manifest and content documents from the
// course's asset store.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StatusError reports a non-2xx response for an asset.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s, status code: %d", e.URL, e.StatusCode)
}

// Source abstracts where course assets come from: the production host
// over HTTP, or a local directory on localhost deployments.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// ForBase returns an HTTPSource when baseURL is set and a FileSource
// rooted at assetsDir otherwise.
func ForBase(baseURL, assetsDir string) Source {
	if baseURL == "" {
		return NewFileSource(assetsDir)
	}
	return NewHTTPSource(baseURL)
}

// HTTPSource fetches assets from {baseURL}/{path}. Every request carries
// no-cache headers plus a t={now} query parameter; the parameter is
// redundant with the headers but defeats HTTP-level caches that ignore
// them.
type HTTPSource struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewHTTPSource creates an HTTPSource for the given base URL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		client:  &http.Client{},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s?t=%d", s.baseURL, strings.TrimPrefix(path, "/"), s.now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// FileSource reads assets from a local directory; it replaces HTTPSource
// when the configured base resolves to localhost. Missing files surface
// as a 404 StatusError so callers keep one failure path for both sources.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir. An empty dir means
// the current working directory.
func NewFileSource(dir string) *FileSource {
	if dir == "" {
		dir = "."
	}
	return &FileSource{dir: dir}
}

func (s *FileSource) Fetch(_ context.Context, path string) ([]byte, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StatusError{URL: full, StatusCode: http.StatusNotFound}
		}
		return nil, fmt.Errorf("failed to read %s: %w", full, err)
	}
	return data, nil
}
