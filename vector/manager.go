// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/papyrus/core"
)

const (
	// DefaultUpsertBatchSize caps how many records go to the provider
	// per upsert call.
	DefaultUpsertBatchSize = 100

	// DefaultDimension is the declared dimension of the primary index
	// when the caller does not specify one.
	DefaultDimension = 1536
)

// Manager owns the active index and the per-namespace write/query path.
// It batches upserts, normalizes vectors to unit length before writes,
// and runs the dimension-mismatch fallback protocol: when a vector's
// dimension differs from the active index's declared dimension, the
// manager finds or creates a fallback index named "<base>-d<dim>",
// adopts it as the active index for the rest of the process, and
// serves the operation from the fallback.
type Manager struct {
	provider  Provider
	baseName  string
	batchSize int
	logger    *slog.Logger

	mu     sync.Mutex
	active core.IndexDescriptor
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerConfig) error

type managerConfig struct {
	dimension int
	batchSize int
}

// WithDimension sets the primary index's declared dimension.
func WithDimension(dim int) ManagerOption {
	return func(c *managerConfig) error {
		if dim <= 0 {
			return fmt.Errorf("%w: %d", core.ErrInvalidDimension, dim)
		}
		c.dimension = dim
		return nil
	}
}

// WithUpsertBatchSize sets the per-call record cap for upserts.
func WithUpsertBatchSize(size int) ManagerOption {
	return func(c *managerConfig) error {
		if size <= 0 {
			return fmt.Errorf("upsert batch size must be positive, got %d", size)
		}
		c.batchSize = size
		return nil
	}
}

// NewManager creates a manager over provider, ensuring the primary
// index named baseName exists at the configured dimension.
func NewManager(ctx context.Context, provider Provider, baseName string, opts ...ManagerOption) (*Manager, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if baseName == "" {
		return nil, fmt.Errorf("base index name cannot be empty")
	}

	cfg := &managerConfig{
		dimension: DefaultDimension,
		batchSize: DefaultUpsertBatchSize,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	primary := core.IndexDescriptor{
		Name:      baseName,
		Dimension: cfg.dimension,
		Metric:    core.MetricCosine,
	}
	if err := provider.CreateIndex(ctx, primary); err != nil {
		return nil, fmt.Errorf("failed to ensure primary index %s: %w", baseName, err)
	}

	// The index may predate this process with a different dimension;
	// trust the provider's answer over our configuration.
	desc, err := provider.DescribeIndex(ctx, baseName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe primary index %s: %w", baseName, err)
	}

	return &Manager{
		provider:  provider,
		baseName:  baseName,
		batchSize: cfg.batchSize,
		logger:    slog.Default().With("component", "vector-manager"),
		active:    *desc,
	}, nil
}

// ActiveIndex returns the descriptor of the index currently receiving
// writes.
func (m *Manager) ActiveIndex() core.IndexDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Describe returns the descriptor of a named index.
func (m *Manager) Describe(ctx context.Context, name string) (*core.IndexDescriptor, error) {
	return m.provider.DescribeIndex(ctx, name)
}

// Upsert writes records under namespace to the active index, in
// batches of at most the configured batch size. Vectors are normalized
// to unit length first. Records whose dimension does not match the
// active index trigger the fallback protocol.
func (m *Manager) Upsert(ctx context.Context, namespace string, records []core.VectorRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	dim := len(records[0].Vector)
	if dim == 0 {
		return ErrEmptyVector
	}
	for i := range records {
		if len(records[i].Vector) != dim {
			return fmt.Errorf("%w: record %s has dimension %d, batch has %d",
				core.ErrInvalidDimension, records[i].Id, len(records[i].Vector), dim)
		}
		records[i].Vector = NormalizeVector(records[i].Vector)
	}

	index, err := m.resolveIndex(ctx, dim)
	if err != nil {
		return err
	}

	for start := 0; start < len(records); start += m.batchSize {
		end := start + m.batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := m.provider.Upsert(ctx, index, namespace, records[start:end]); err != nil {
			return fmt.Errorf("failed to upsert batch [%d:%d] into %s: %w", start, end, index, err)
		}
	}

	m.logger.Debug("upserted records",
		"index", index,
		"namespace", namespace,
		"count", len(records))
	return nil
}

// Query returns up to topK nearest records from the active index,
// restricted to namespace when one is supplied. A query vector whose
// dimension does not match the active index triggers the fallback
// protocol, so queries issued after a fallback adoption are served
// from the fallback index.
func (m *Manager) Query(ctx context.Context, namespace string, vec []float32, topK int) ([]core.QueryMatch, error) {
	if len(vec) == 0 {
		return nil, ErrEmptyVector
	}
	if topK <= 0 {
		topK = 10
	}

	index, err := m.resolveIndex(ctx, len(vec))
	if err != nil {
		return nil, err
	}

	matches, err := m.provider.Query(ctx, index, namespace, NormalizeVector(vec), topK)
	if err != nil {
		return nil, fmt.Errorf("query against %s failed: %w", index, err)
	}
	return matches, nil
}

// Delete removes all records under namespace from the active index.
func (m *Manager) Delete(ctx context.Context, namespace string) error {
	m.mu.Lock()
	index := m.active.Name
	m.mu.Unlock()

	if err := m.provider.DeleteNamespace(ctx, index, namespace); err != nil {
		return fmt.Errorf("failed to delete namespace %s from %s: %w", namespace, index, err)
	}
	return nil
}

// resolveIndex returns the index that can hold vectors of dimension
// dim, running the fallback protocol when the active index cannot.
// The fallback switch is process-wide and sticky: once adopted, the
// fallback stays active for all subsequent traffic.
func (m *Manager) resolveIndex(ctx context.Context, dim int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active.Dimension == dim {
		return m.active.Name, nil
	}

	fallbackName := fmt.Sprintf("%s-d%d", m.baseName, dim)
	m.logger.Warn("dimension mismatch with active index, switching to fallback",
		"active", m.active.Name,
		"active_dimension", m.active.Dimension,
		"vector_dimension", dim,
		"fallback", fallbackName)

	desc, err := m.provider.DescribeIndex(ctx, fallbackName)
	if err == nil {
		if desc.Dimension != dim {
			return "", fmt.Errorf("%w: fallback index %s exists with dimension %d, need %d",
				ErrDimensionUnresolved, fallbackName, desc.Dimension, dim)
		}
		m.active = *desc
		return m.active.Name, nil
	}

	fallback := core.IndexDescriptor{
		Name:      fallbackName,
		Dimension: dim,
		Metric:    core.MetricCosine,
	}
	if err := m.provider.CreateIndex(ctx, fallback); err != nil {
		return "", fmt.Errorf("%w: failed to create fallback index %s: %w",
			ErrDimensionUnresolved, fallbackName, err)
	}

	m.active = fallback
	return m.active.Name, nil
}

// Close releases the underlying provider.
func (m *Manager) Close() error {
	return m.provider.Close()
}
