package driving

import (
	"context"
	"io"
)

// MirrorService fills the local article mirror.
type MirrorService interface {
	// Import reads JSON Lines articles from r and stores them.
	Import(ctx context.Context, r io.Reader) (*ImportReport, error)

	// Pull fetches the given slugs from the upstream source and stores them.
	Pull(ctx context.Context, slugs []string, concurrency int) (*PullReport, error)

	// Remove deletes the given slugs from the mirror and reports how many
	// articles were actually removed.
	Remove(ctx context.Context, slugs []string) (int, error)

	// Count returns the number of mirrored articles.
	Count(ctx context.Context) (int, error)
}

// ImportReport summarises an Import run.
type ImportReport struct {
	Imported int
	Skipped  int
}

// PullReport summarises a Pull run.
type PullReport struct {
	Stored  []string
	Missing []string
	Failed  map[string]error
}
