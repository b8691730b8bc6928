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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/papyrus/ai"
)

// metadataInputLimit bounds how much of the paper is sent for
// extraction. Title, authors, and abstract all appear near the top.
const metadataInputLimit = 8000

// MetadataExtractor implements ai.MetadataExtractor using
// OpenAI-compatible chat APIs.
type MetadataExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// paperMetadata matches the JSON structure expected from the LLM.
type paperMetadata struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Abstract string   `json:"abstract"`
}

// newMetadataExtractor is an internal constructor that returns the
// concrete type. Used by Provider to manage the instance.
func newMetadataExtractor(config *ai.Config) (*MetadataExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.LLMHost),
		openai.WithToken("none"),
		openai.WithModel(config.LLMModel),
	)
	if err != nil {
		return nil, err
	}

	return &MetadataExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-metadata"),
	}, nil
}

// NewMetadataExtractor creates a new metadata extractor using the
// provided configuration.
//
// Returns ai.MetadataExtractor interface to enforce abstraction.
func NewMetadataExtractor(config *ai.Config) (ai.MetadataExtractor, error) {
	return newMetadataExtractor(config)
}

// ExtractMetadata pulls title, authors, and abstract out of the opening
// portion of a paper's text using an LLM in JSON mode.
func (e *MetadataExtractor) ExtractMetadata(ctx context.Context, text string) (*ai.PaperMetadata, error) {
	if len(text) > metadataInputLimit {
		text = text[:metadataInputLimit]
	}

	systemPrompt := fmt.Sprintf(metadataPromptTemplate, metadataResponseSchema)
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON.
	var result paperMetadata
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return &ai.PaperMetadata{}, nil
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing metadata response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse metadata response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", ai.ErrExtractionFailed, lastErr)
	}

	meta := &ai.PaperMetadata{
		Title:    strings.TrimSpace(result.Title),
		Abstract: strings.TrimSpace(result.Abstract),
	}
	for _, a := range result.Authors {
		if a = strings.TrimSpace(a); a != "" {
			meta.Authors = append(meta.Authors, a)
		}
	}

	e.logger.Debug("extracted metadata",
		"title", meta.Title,
		"authors", len(meta.Authors),
		"abstract_length", len(meta.Abstract))

	return meta, nil
}

// stripCodeFences removes markdown code fences some models wrap around
// JSON output despite JSON mode.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
