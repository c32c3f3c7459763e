package repositories

import "context"

// VideoRepository is the append-only catalog of stored filenames.
type VideoRepository interface {
	Append(ctx context.Context, filename string) error

	// List returns the catalog in append order. An empty catalog is a
	// normal result, not an error.
	List(ctx context.Context) ([]string, error)
}
