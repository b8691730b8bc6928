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


// Package fsblob implements storage.BlobStore on a local directory.
// Uploaded payloads are written under the store root and addressed by
// file:// URLs, which keeps single-node deployments free of any cloud
// bucket dependency.
package fsblob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/papyrus/storage"
)

// Store is a filesystem-backed blob store rooted at a single directory.
type Store struct {
	root string
}

// NewStore creates a blob store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("fsblob: empty root directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve blob root: %w", err)
	}
	return &Store{root: abs}, nil
}

var _ storage.BlobStore = (*Store)(nil)

// Upload writes data under name inside the store root and returns a
// file:// URL for it. Name may contain slashes; intermediate
// directories are created. Path traversal outside the root is rejected.
func (s *Store) Upload(_ context.Context, data []byte, name string) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	return "file://" + path, nil
}

// GetURL returns the file:// URL for a previously uploaded name.
func (s *Store) GetURL(_ context.Context, name string) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("blob %s: %w", name, storage.ErrNotFound)
		}
		return "", fmt.Errorf("failed to stat blob %s: %w", name, err)
	}
	return "file://" + path, nil
}

func (s *Store) resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("fsblob: empty blob name")
	}
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("fsblob: invalid blob name %q", name)
	}
	return filepath.Join(s.root, clean), nil
}
