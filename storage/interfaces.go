package storage

import (
	"context"

	"github.com/poiesic/papyrus/core"
)

// PaperRepository provides operations for managing papers.
// Implementations must be thread-safe.
type PaperRepository interface {
	// AddPaper adds a paper to storage.
	// For papers with Id=0, derives the ID from the Source content hash.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the paper with ID and timestamps populated.
	AddPaper(ctx context.Context, paper *core.Paper) (*core.Paper, error)

	// GetPaper retrieves a single paper by ID.
	// Returns ErrNotFound if the paper doesn't exist.
	GetPaper(ctx context.Context, id core.ID) (*core.Paper, error)

	// UpdatePaper updates an existing paper.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the paper doesn't exist.
	UpdatePaper(ctx context.Context, paper *core.Paper) (*core.Paper, error)

	// DeletePaper removes a paper by ID.
	// Returns ErrNotFound if the paper doesn't exist.
	DeletePaper(ctx context.Context, id core.ID) error

	// ListPapers returns all stored papers, ordered by ID.
	ListPapers(ctx context.Context) ([]*core.Paper, error)

	// Close closes the repository and releases resources.
	Close() error
}

// BlobStore stores raw document payloads (PDF bytes, source files) and
// returns URLs the rest of the system can hand to collaborators.
type BlobStore interface {
	// Upload stores data under name and returns a URL for it.
	// Uploading the same name twice overwrites the previous payload.
	Upload(ctx context.Context, data []byte, name string) (string, error)

	// GetURL returns the URL for a previously uploaded path.
	// Returns ErrNotFound if nothing was uploaded under the path.
	GetURL(ctx context.Context, path string) (string, error)
}
