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
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/papyrus/ai"
)

// summaryInputLimit bounds how much paper text is sent per summary call.
const summaryInputLimit = 24000

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
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

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize generates one summary per requested level. Each level is
// attempted with the full prompt first and retried once with a
// simplified prompt on failure.
func (s *Summarizer) Summarize(ctx context.Context, text string, levels []string) (map[string]string, error) {
	if len(text) > summaryInputLimit {
		text = text[:summaryInputLimit]
	}

	summaries := make(map[string]string, len(levels))
	for _, level := range levels {
		summary, err := s.summarizeLevel(ctx, text, level)
		if err != nil {
			return nil, fmt.Errorf("%w: level %s: %w", ai.ErrSummarizationFailed, level, err)
		}
		summaries[level] = summary
	}
	return summaries, nil
}

func (s *Summarizer) summarizeLevel(ctx context.Context, text, level string) (string, error) {
	summary, err := s.generate(ctx, fmt.Sprintf(summaryPromptTemplate, level), text)
	if err == nil {
		return summary, nil
	}

	s.logger.Warn("summarization failed, retrying with simplified prompt",
		"level", level, "err", err)

	return s.generate(ctx, summarySimplifiedPrompt, text)
}

func (s *Summarizer) generate(ctx context.Context, systemPrompt, text string) (string, error) {
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

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.2))
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("no choices returned from model")
	}

	summary := strings.TrimSpace(response.Choices[0].Content)
	if summary == "" {
		return "", fmt.Errorf("model returned empty summary")
	}
	return summary, nil
}
