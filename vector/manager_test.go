package vector

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/papyrus/core"
)

// fakeProvider is an in-memory Provider recording every call.
type fakeProvider struct {
	mu      sync.Mutex
	indexes map[string]core.IndexDescriptor
	// data[index][namespace][id]
	data        map[string]map[string]map[string]core.VectorRecord
	upsertCalls [][]core.VectorRecord
	queryIndex  []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		indexes: make(map[string]core.IndexDescriptor),
		data:    make(map[string]map[string]map[string]core.VectorRecord),
	}
}

func (f *fakeProvider) CreateIndex(_ context.Context, desc core.IndexDescriptor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.indexes[desc.Name]; !ok {
		f.indexes[desc.Name] = desc
		f.data[desc.Name] = make(map[string]map[string]core.VectorRecord)
	}
	return nil
}

func (f *fakeProvider) ListIndexes(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.indexes))
	for name := range f.indexes {
		names = append(names, name)
	}
	return names, nil
}

func (f *fakeProvider) DescribeIndex(_ context.Context, name string) (*core.IndexDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	desc, ok := f.indexes[name]
	if !ok {
		return nil, ErrIndexNotFound
	}
	return &desc, nil
}

func (f *fakeProvider) Upsert(_ context.Context, index, namespace string, records []core.VectorRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch := make([]core.VectorRecord, len(records))
	copy(batch, records)
	f.upsertCalls = append(f.upsertCalls, batch)

	ns, ok := f.data[index]
	if !ok {
		return ErrIndexNotFound
	}
	if ns[namespace] == nil {
		ns[namespace] = make(map[string]core.VectorRecord)
	}
	for _, r := range records {
		ns[namespace][r.Id] = r
	}
	return nil
}

func (f *fakeProvider) Query(_ context.Context, index, namespace string, vec []float32, topK int) ([]core.QueryMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryIndex = append(f.queryIndex, index)

	ns, ok := f.data[index]
	if !ok {
		return nil, ErrIndexNotFound
	}

	var matches []core.QueryMatch
	for nsName, records := range ns {
		if namespace != "" && nsName != namespace {
			continue
		}
		for id, r := range records {
			var score float32
			for i := range vec {
				if i < len(r.Vector) {
					score += vec[i] * r.Vector[i]
				}
			}
			matches = append(matches, core.QueryMatch{
				Id:       id,
				Score:    score,
				Text:     r.Metadata.TextPreview,
				Metadata: r.Metadata,
			})
		}
	}
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (f *fakeProvider) DeleteNamespace(_ context.Context, index, namespace string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ns, ok := f.data[index]; ok {
		delete(ns, namespace)
	}
	return nil
}

func (f *fakeProvider) Close() error { return nil }

func makeRecords(n, dim int) []core.VectorRecord {
	records := make([]core.VectorRecord, n)
	for i := range records {
		vec := make([]float32, dim)
		vec[i%dim] = 1.0
		records[i] = core.VectorRecord{
			Id:     fmt.Sprintf("7:%d:0", i),
			Vector: vec,
			Metadata: core.ChunkMetadata{
				PaperId:      core.ID(7),
				SectionIndex: i,
				TextPreview:  fmt.Sprintf("chunk %d", i),
			},
		}
	}
	return records
}

func TestManager_UpsertBatching(t *testing.T) {
	provider := newFakeProvider()
	mgr, err := NewManager(context.Background(), provider, "papers", WithDimension(8))
	require.NoError(t, err)

	err = mgr.Upsert(context.Background(), "7", makeRecords(250, 8))
	require.NoError(t, err)

	require.Len(t, provider.upsertCalls, 3)
	assert.Len(t, provider.upsertCalls[0], 100)
	assert.Len(t, provider.upsertCalls[1], 100)
	assert.Len(t, provider.upsertCalls[2], 50)
}

func TestManager_UpsertNormalizes(t *testing.T) {
	provider := newFakeProvider()
	mgr, err := NewManager(context.Background(), provider, "papers", WithDimension(2))
	require.NoError(t, err)

	records := []core.VectorRecord{{Id: "1:0:0", Vector: []float32{3, 4}}}
	require.NoError(t, mgr.Upsert(context.Background(), "1", records))

	stored := provider.data["papers"]["1"]["1:0:0"]
	var magnitude float64
	for _, v := range stored.Vector {
		magnitude += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(magnitude), 0.001)
	assert.InDelta(t, 0.6, stored.Vector[0], 0.001)
	assert.InDelta(t, 0.8, stored.Vector[1], 0.001)
}

func TestManager_DimensionFallback(t *testing.T) {
	provider := newFakeProvider()
	mgr, err := NewManager(context.Background(), provider, "papers", WithDimension(3072))
	require.NoError(t, err)

	// Provider returns 1536-dimension vectors; the 3072 primary can't
	// hold them.
	err = mgr.Upsert(context.Background(), "7", makeRecords(5, 1536))
	require.NoError(t, err)

	fallback, err := provider.DescribeIndex(context.Background(), "papers-d1536")
	require.NoError(t, err)
	assert.Equal(t, 1536, fallback.Dimension)
	assert.Equal(t, "papers-d1536", mgr.ActiveIndex().Name)

	// A subsequent query at the fallback dimension is served from the
	// fallback index.
	query := make([]float32, 1536)
	query[0] = 1.0
	matches, err := mgr.Query(context.Background(), "7", query, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
	assert.Equal(t, "papers-d1536", provider.queryIndex[len(provider.queryIndex)-1])
}

func TestManager_FallbackIsSticky(t *testing.T) {
	provider := newFakeProvider()
	mgr, err := NewManager(context.Background(), provider, "papers", WithDimension(3072))
	require.NoError(t, err)

	require.NoError(t, mgr.Upsert(context.Background(), "1", makeRecords(2, 1536)))
	require.NoError(t, mgr.Upsert(context.Background(), "2", makeRecords(2, 1536)))

	assert.Equal(t, "papers-d1536", mgr.ActiveIndex().Name)

	// Only one fallback index exists after repeated writes.
	names, err := provider.ListIndexes(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestManager_NamespaceIsolation(t *testing.T) {
	provider := newFakeProvider()
	mgr, err := NewManager(context.Background(), provider, "papers", WithDimension(4))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, mgr.Upsert(ctx, "paper-a", makeRecords(3, 4)))

	other := makeRecords(3, 4)
	for i := range other {
		other[i].Id = fmt.Sprintf("9:%d:0", i)
		other[i].Metadata.PaperId = core.ID(9)
	}
	require.NoError(t, mgr.Upsert(ctx, "paper-b", other))

	matches, err := mgr.Query(ctx, "paper-a", []float32{1, 0, 0, 0}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for _, match := range matches {
		assert.Equal(t, core.ID(7), match.Metadata.PaperId,
			"query scoped to paper-a returned a record from another namespace")
	}
}

func TestManager_DeleteNamespace(t *testing.T) {
	provider := newFakeProvider()
	mgr, err := NewManager(context.Background(), provider, "papers", WithDimension(4))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, mgr.Upsert(ctx, "7", makeRecords(3, 4)))
	require.NoError(t, mgr.Delete(ctx, "7"))

	matches, err := mgr.Query(ctx, "7", []float32{1, 0, 0, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestManager_UpsertValidation(t *testing.T) {
	provider := newFakeProvider()
	mgr, err := NewManager(context.Background(), provider, "papers", WithDimension(4))
	require.NoError(t, err)

	err = mgr.Upsert(context.Background(), "7", nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	err = mgr.Upsert(context.Background(), "7", []core.VectorRecord{{Id: "x"}})
	assert.ErrorIs(t, err, ErrEmptyVector)

	mixed := makeRecords(2, 4)
	mixed[1].Vector = []float32{1, 0}
	err = mgr.Upsert(context.Background(), "7", mixed)
	assert.ErrorIs(t, err, core.ErrInvalidDimension)
}

func TestNormalizeVector(t *testing.T) {
	normalized := NormalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, normalized[0], 0.001)
	assert.InDelta(t, 0.8, normalized[1], 0.001)

	zero := NormalizeVector([]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0}, zero)

	assert.Empty(t, NormalizeVector(nil))
}
