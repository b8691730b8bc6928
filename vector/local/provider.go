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


// Package local implements vector.Provider on an embedded Badger
// store. Nearest-neighbor search is a brute-force scan over the
// requested namespace, which is appropriate at the scale of a single
// researcher's paper library and keeps the default deployment free of
// any external vector database.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/poiesic/papyrus/core"
	"github.com/poiesic/papyrus/storage"
	storagebadger "github.com/poiesic/papyrus/storage/badger"
	"github.com/poiesic/papyrus/vector"
)

const (
	indexPrefix  = "vidx"
	recordPrefix = "vrec"
)

func makeIndexKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", indexPrefix, name))
}

func makeRecordKey(index, namespace, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:%s", recordPrefix, index, namespace, id))
}

func makeNamespacePrefix(index, namespace string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:", recordPrefix, index, namespace))
}

func makeIndexDataPrefix(index string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", recordPrefix, index))
}

// Provider is a Badger-backed vector.Provider.
type Provider struct {
	backend *storagebadger.Backend
	logger  *slog.Logger
}

// NewProvider creates a local vector provider on an open backend.
// The backend may be shared with the paper repository.
func NewProvider(backend *storagebadger.Backend) (vector.Provider, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}
	return &Provider{
		backend: backend,
		logger:  slog.Default().With("component", "local-vector-provider"),
	}, nil
}

var _ vector.Provider = (*Provider)(nil)

// CreateIndex stores an index descriptor. Existing descriptors are left
// untouched so a restart never resizes an index.
func (p *Provider) CreateIndex(_ context.Context, desc core.IndexDescriptor) error {
	if err := core.ValidateIndexDescriptor(desc); err != nil {
		return err
	}
	return p.backend.WithTx(func(tx *badger.Txn) error {
		key := makeIndexKey(desc.Name)
		if _, err := tx.Get(key); err == nil {
			return nil
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		if err := tx.Set(key, storage.MarshalIndexDescriptor(desc)); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		p.logger.Info("created vector index", "name", desc.Name, "dimension", desc.Dimension)
		return nil
	}, true)
}

// ListIndexes returns the names of all stored indices.
func (p *Provider) ListIndexes(_ context.Context) ([]string, error) {
	var names []string
	err := p.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(indexPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			names = append(names, strings.TrimPrefix(key, indexPrefix+":"))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DescribeIndex returns a stored index descriptor.
func (p *Provider) DescribeIndex(_ context.Context, name string) (*core.IndexDescriptor, error) {
	var desc core.IndexDescriptor
	err := p.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndexKey(name))
		if err == badger.ErrKeyNotFound {
			return vector.ErrIndexNotFound
		} else if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			d, err := storage.UnmarshalIndexDescriptor(val)
			if err != nil {
				return err
			}
			desc = d
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return &desc, nil
}

// Upsert writes records under the namespace. Record ids are part of
// the key, so rewrites overwrite rather than duplicate.
func (p *Provider) Upsert(ctx context.Context, index, namespace string, records []core.VectorRecord) error {
	if _, err := p.DescribeIndex(ctx, index); err != nil {
		return err
	}
	return p.backend.WithTx(func(tx *badger.Txn) error {
		for i := range records {
			key := makeRecordKey(index, namespace, records[i].Id)
			if err := tx.Set(key, storage.MarshalVectorRecord(&records[i])); err != nil {
				return fmt.Errorf("failed to write record %s: %w", records[i].Id, err)
			}
		}
		return tx.Commit()
	}, true)
}

// Query scans the namespace (or the whole index when namespace is
// empty) and returns the topK records by dot product. Vectors are
// stored normalized, so dot product equals cosine similarity.
func (p *Provider) Query(ctx context.Context, index, namespace string, vec []float32, topK int) ([]core.QueryMatch, error) {
	if _, err := p.DescribeIndex(ctx, index); err != nil {
		return nil, err
	}

	prefix := makeIndexDataPrefix(index)
	if namespace != "" {
		prefix = makeNamespacePrefix(index, namespace)
	}

	var matches []core.QueryMatch
	err := p.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalVectorRecord(val)
				if err != nil {
					return err
				}
				matches = append(matches, core.QueryMatch{
					Id:       record.Id,
					Score:    dotProduct(vec, record.Vector),
					Text:     record.Metadata.TextPreview,
					Metadata: record.Metadata,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// DeleteNamespace removes every record under the namespace.
func (p *Provider) DeleteNamespace(_ context.Context, index, namespace string) error {
	prefix := makeNamespacePrefix(index, namespace)

	// Collect keys first; deleting while iterating invalidates the
	// iterator.
	var keys [][]byte
	err := p.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	return p.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the backend owns the database handle.
func (p *Provider) Close() error {
	return nil
}

func dotProduct(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
