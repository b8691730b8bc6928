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


package segment

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/poiesic/papyrus/core"
)

const (
	// DefaultMaxChunkSize is the target upper bound on chunk length.
	DefaultMaxChunkSize = 1000
	// DefaultOverlap is the trailing/leading context shared between
	// adjacent chunks.
	DefaultOverlap = 100
)

// chunkSeparators are tried highest priority first; the empty string
// means a raw character boundary as the last resort.
var chunkSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Semantic flag keyword lists, matched against normalized section
// titles.
var (
	abstractKeywords     = []string{"abstract"}
	introductionKeywords = []string{"introduction", "background"}
	methodologyKeywords  = []string{"method", "approach", "experiment"}
	resultsKeywords      = []string{"result", "finding", "evaluation"}
	discussionKeywords   = []string{"discussion"}
	conclusionKeywords   = []string{"conclusion", "discussion", "summary"}
)

// Chunker produces chunks from raw paper text.
type Chunker struct {
	detector     SectionDetector
	maxChunkSize int
	overlap      int
}

// ChunkerOption configures a Chunker.
type ChunkerOption func(*Chunker) error

// WithSectionDetector overrides the default regex section detector.
func WithSectionDetector(d SectionDetector) ChunkerOption {
	return func(c *Chunker) error {
		if d == nil {
			return fmt.Errorf("section detector cannot be nil")
		}
		c.detector = d
		return nil
	}
}

// WithMaxChunkSize sets the target upper bound on chunk length.
func WithMaxChunkSize(size int) ChunkerOption {
	return func(c *Chunker) error {
		if size <= 0 {
			return fmt.Errorf("%w: max chunk size must be positive, got %d", ErrInvalidChunkSize, size)
		}
		c.maxChunkSize = size
		return nil
	}
}

// WithOverlap sets the chunk overlap.
func WithOverlap(overlap int) ChunkerOption {
	return func(c *Chunker) error {
		if overlap < 0 {
			return fmt.Errorf("%w: overlap cannot be negative, got %d", ErrInvalidChunkSize, overlap)
		}
		c.overlap = overlap
		return nil
	}
}

// NewChunker creates a chunker with the default regex detector and
// chunk parameters, applying any options.
func NewChunker(opts ...ChunkerOption) (*Chunker, error) {
	c := &Chunker{
		detector:     NewRegexDetector(),
		maxChunkSize: DefaultMaxChunkSize,
		overlap:      DefaultOverlap,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.overlap >= c.maxChunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			ErrInvalidChunkSize, c.overlap, c.maxChunkSize)
	}
	return c, nil
}

// ChunkText segments the text of the paper identified by paperId into
// chunks. Chunk identity (section_index, chunk_index) is stable for
// identical input and parameters, which makes re-ingestion idempotent.
func (c *Chunker) ChunkText(text string, paperId core.ID) ([]core.Chunk, error) {
	sections, err := c.detector.DetectSections(text)
	if err != nil {
		return nil, err
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(c.maxChunkSize),
		textsplitter.WithChunkOverlap(c.overlap),
		textsplitter.WithSeparators(chunkSeparators),
	)

	var chunks []core.Chunk
	for _, section := range sections {
		pieces, err := splitter.SplitText(section.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to split section %q: %w", section.Title, err)
		}

		flags := classifyTitle(section.Title)
		chunkIndex := 0
		for _, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			chunk := core.Chunk{
				Text:         piece,
				PaperId:      paperId,
				SectionTitle: section.Title,
				SectionIndex: section.Index,
				ChunkIndex:   chunkIndex,
				Length:       len(piece),

				IsAbstract:     flags.abstract,
				IsIntroduction: flags.introduction,
				IsMethodology:  flags.methodology,
				IsResults:      flags.results,
				IsDiscussion:   flags.discussion,
				IsConclusion:   flags.conclusion,
			}
			chunks = append(chunks, chunk)
			chunkIndex++
		}
	}

	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}
	return chunks, nil
}

type semanticFlags struct {
	abstract     bool
	introduction bool
	methodology  bool
	results      bool
	discussion   bool
	conclusion   bool
}

// classifyTitle keyword-matches a normalized section title against
// each category list. Flags are advisory metadata for downstream
// ranking; the chunker itself never reads them.
func classifyTitle(title string) semanticFlags {
	normalized := strings.ToLower(strings.TrimSpace(title))
	return semanticFlags{
		abstract:     containsAny(normalized, abstractKeywords),
		introduction: containsAny(normalized, introductionKeywords),
		methodology:  containsAny(normalized, methodologyKeywords),
		results:      containsAny(normalized, resultsKeywords),
		discussion:   containsAny(normalized, discussionKeywords),
		conclusion:   containsAny(normalized, conclusionKeywords),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
