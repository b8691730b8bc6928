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
	"log/slog"
)

// Fallback is one strategy in an ordered degradation chain.
type Fallback struct {
	// Name identifies the strategy in logs.
	Name string

	// Run executes the strategy.
	Run func(ctx context.Context) error
}

// runWithFallbacks executes strategies in order until one succeeds.
// The index of the succeeding strategy is returned so the caller can
// tell whether a degraded path was taken. When every strategy fails,
// the last error is wrapped in ErrAllFallbacksFailed.
func runWithFallbacks(ctx context.Context, logger *slog.Logger, stage string, fallbacks []Fallback) (int, error) {
	var lastErr error
	for i, fb := range fallbacks {
		if err := fb.Run(ctx); err != nil {
			lastErr = err
			logger.Warn("fallback strategy failed",
				"stage", stage,
				"strategy", fb.Name,
				"attempt", i+1,
				"err", err)
			continue
		}
		if i > 0 {
			logger.Info("stage succeeded on fallback strategy",
				"stage", stage,
				"strategy", fb.Name)
		}
		return i, nil
	}
	return -1, fmt.Errorf("%w: stage %s: %w", ErrAllFallbacksFailed, stage, lastErr)
}
