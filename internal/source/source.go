// Package source acquires the raw workout export, either from a local file
// or over HTTP (the export typically lives in a Git repository and is
// fetched from its raw URL).
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// defaultTimeout bounds the HTTP fetch of a remote export.
const defaultTimeout = 30 * time.Second

// Source opens the configured workout export. Exactly one of Path or URL
// is expected to be set; URL wins when both are.
type Source struct {
	Path   string
	URL    string
	client *http.Client
	logger *slog.Logger
}

// New creates a Source for the given file path or URL.
func New(path, url string, logger *slog.Logger) *Source {
	return &Source{
		Path:   path,
		URL:    url,
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// Open returns a reader over the raw export. The caller closes it.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.URL != "" {
		return s.fetch(ctx)
	}
	if s.Path == "" {
		return nil, fmt.Errorf("source: no file path or URL configured")
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source: opening %s: %w", s.Path, err)
	}
	s.logger.Debug("source: opened local export", "path", s.Path)
	return f, nil
}

func (s *Source) fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("source: building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: fetching %s: %w", s.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("source: fetching %s: unexpected status %s", s.URL, resp.Status)
	}

	s.logger.Debug("source: fetched remote export", "url", s.URL)
	return resp.Body, nil
}
