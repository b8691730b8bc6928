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


package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// acquireTimeout bounds a single source download. A timeout is a
// recoverable stage failure, not a process crash.
const acquireTimeout = 30 * time.Second

// maxDownloadSize caps how much is read from a remote source.
const maxDownloadSize = 64 << 20 // 64 MiB

// Acquirer fetches the raw bytes of a paper from its source reference.
type Acquirer interface {
	// Acquire fetches the payload behind source.
	Acquire(ctx context.Context, source string) ([]byte, error)
}

// HTTPAcquirer downloads papers over HTTP(S).
type HTTPAcquirer struct {
	client *http.Client
}

// NewHTTPAcquirer creates an acquirer with a bounded request timeout.
func NewHTTPAcquirer() *HTTPAcquirer {
	return &HTTPAcquirer{
		client: &http.Client{Timeout: acquireTimeout},
	}
}

// Acquire downloads the source URL.
func (a *HTTPAcquirer) Acquire(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrAcquisition, source, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrAcquisition, source, err)
	}
	return data, nil
}

// FileAcquirer reads papers from the local filesystem.
type FileAcquirer struct{}

// NewFileAcquirer creates an acquirer for local paths and file:// URLs.
func NewFileAcquirer() *FileAcquirer {
	return &FileAcquirer{}
}

// Acquire reads the file behind source.
func (a *FileAcquirer) Acquire(_ context.Context, source string) ([]byte, error) {
	path := strings.TrimPrefix(source, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	return data, nil
}

// SourceAcquirer dispatches to HTTP or file acquisition based on the
// source's scheme.
type SourceAcquirer struct {
	http *HTTPAcquirer
	file *FileAcquirer
}

// NewSourceAcquirer creates the default acquirer.
func NewSourceAcquirer() *SourceAcquirer {
	return &SourceAcquirer{
		http: NewHTTPAcquirer(),
		file: NewFileAcquirer(),
	}
}

var _ Acquirer = (*SourceAcquirer)(nil)

// Acquire fetches source via the scheme-appropriate acquirer.
func (a *SourceAcquirer) Acquire(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return a.http.Acquire(ctx, source)
	case strings.HasPrefix(source, "file://"), strings.HasPrefix(source, "/"), strings.HasPrefix(source, "./"):
		return a.file.Acquire(ctx, source)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, source)
	}
}
