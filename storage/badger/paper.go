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


package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/papyrus/core"
	"github.com/poiesic/papyrus/storage"
)

// PaperRepository implements storage.PaperRepository for BadgerDB.
type PaperRepository struct {
	backend *Backend
}

var _ storage.PaperRepository = (*PaperRepository)(nil)

// NewPaperRepository creates a new PaperRepository.
func NewPaperRepository(backend *Backend) (storage.PaperRepository, error) {
	return &PaperRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *PaperRepository) Close() error {
	return nil
}

// AddPaper adds a paper to storage.
// For papers with Id=0, derives the ID from the Source content hash so
// resubmitting the same source always targets the same record.
func (r *PaperRepository) AddPaper(ctx context.Context, paper *core.Paper) (*core.Paper, error) {
	if err := core.ValidatePaper(paper); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if paper.Id == 0 {
			paper.Id = core.IDFromContent(paper.Source)
		}

		paper.InsertedAt = time.Now().UTC()
		paper.UpdatedAt = paper.InsertedAt

		key := makePaperKey(paper.Id)
		value := storage.MarshalPaper(paper)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return paper, err
}

// GetPaper retrieves a single paper by ID.
func (r *PaperRepository) GetPaper(ctx context.Context, id core.ID) (*core.Paper, error) {
	var paper *core.Paper

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		paper, err = r.readPaper(tx, makePaperKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, storage.ErrNotFound
	}

	return paper, nil
}

// UpdatePaper updates an existing paper.
func (r *PaperRepository) UpdatePaper(ctx context.Context, paper *core.Paper) (*core.Paper, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePaperKey(paper.Id)

		old, err := r.readPaper(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		paper.UpdatedAt = time.Now().UTC()
		if paper.InsertedAt.IsZero() {
			paper.InsertedAt = old.InsertedAt
		}

		value := storage.MarshalPaper(paper)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return paper, err
}

// DeletePaper removes a paper by ID.
func (r *PaperRepository) DeletePaper(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makePaperKey(id)

		existing, err := r.readPaper(tx, key)
		if err != nil {
			return err
		}
		if existing == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListPapers returns all stored papers, ordered by key (ID).
func (r *PaperRepository) ListPapers(ctx context.Context) ([]*core.Paper, error) {
	var papers []*core.Paper

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(paperRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var paper *core.Paper
			err := item.Value(func(val []byte) error {
				var err error
				paper, err = storage.UnmarshalPaper(val)
				return err
			})
			if err != nil {
				return err
			}
			if paper != nil {
				papers = append(papers, paper)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return papers, nil
}

// readPaper reads a paper by key within a transaction.
// Returns nil (no error) if the key does not exist.
func (r *PaperRepository) readPaper(tx *badger.Txn, key []byte) (*core.Paper, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var paper *core.Paper
	err = item.Value(func(val []byte) error {
		var err error
		paper, err = storage.UnmarshalPaper(val)
		return err
	})
	if err != nil {
		return nil, err
	}

	return paper, nil
}
