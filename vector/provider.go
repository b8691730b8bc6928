package vector

import (
	"context"

	"github.com/poiesic/papyrus/core"
)

// Provider abstracts a vector database holding one or more named
// indices. Implementations must be thread-safe for concurrent use.
type Provider interface {
	// CreateIndex creates a named index with the given dimension and
	// metric. Creating an index that already exists with the same
	// descriptor is not an error.
	CreateIndex(ctx context.Context, desc core.IndexDescriptor) error

	// ListIndexes returns the names of all existing indices.
	ListIndexes(ctx context.Context) ([]string, error)

	// DescribeIndex returns the descriptor of a named index.
	// Returns ErrIndexNotFound if the index does not exist.
	DescribeIndex(ctx context.Context, name string) (*core.IndexDescriptor, error)

	// Upsert writes records into the named index under a namespace.
	// Writing an existing record id overwrites the previous record.
	Upsert(ctx context.Context, index, namespace string, records []core.VectorRecord) error

	// Query returns up to topK nearest records from the named index,
	// restricted to namespace when one is supplied. An empty namespace
	// queries across all namespaces.
	Query(ctx context.Context, index, namespace string, vec []float32, topK int) ([]core.QueryMatch, error)

	// DeleteNamespace removes all records under a namespace from the
	// named index. Deleting an absent namespace is not an error.
	DeleteNamespace(ctx context.Context, index, namespace string) error

	// Close releases resources held by the provider.
	Close() error
}
