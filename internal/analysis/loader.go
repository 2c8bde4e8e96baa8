package analysis

import "context"

// Loader produces a fresh snapshot from the current input. The serve and
// MCP surfaces depend on this interface so the pipeline behind it (source,
// ingest, filters) stays swappable in tests.
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*Snapshot, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (*Snapshot, error) { return f(ctx) }
