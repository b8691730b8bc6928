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
	"regexp"
	"strings"

	"github.com/poiesic/papyrus/core"
)

// SectionDetector splits raw document text into titled sections.
// Implementations must return at least one section for non-empty input.
type SectionDetector interface {
	DetectSections(text string) ([]core.Section, error)
}

// defaultSectionTitle is used when no header is recognized anywhere in
// the document.
const defaultSectionTitle = "Introduction"

var (
	// Known academic section keywords, optionally prefixed by a
	// numbering like "3." or "3 ".
	keywordHeaderRe = regexp.MustCompile(`(?i)^(?:\d+\.?\s*)?(?:INTRODUCTION|ABSTRACT|BACKGROUND|RELATED WORK|METHODOLOGY|METHODS|EXPERIMENTS|RESULTS|DISCUSSION|CONCLUSIONS?|REFERENCES)\s*$`)

	// Short all-caps lines are treated as headers. Papers produced by
	// PDF extraction frequently lose heading markup but keep casing.
	allCapsHeaderRe = regexp.MustCompile(`^[A-Z][A-Z\s\d:&-]{1,59}$`)

	// Numbered headings such as "2. Related Work".
	numberedHeaderRe = regexp.MustCompile(`^\d+\.\s+[A-Z][a-zA-Z\s]+$`)
)

// RegexDetector recognizes section headers with a fixed set of
// heuristics tuned for academic papers: keyword headers, short
// all-caps lines, and numbered headings.
type RegexDetector struct{}

// NewRegexDetector creates the default section detector.
func NewRegexDetector() *RegexDetector {
	return &RegexDetector{}
}

var _ SectionDetector = (*RegexDetector)(nil)

// DetectSections scans the text line by line. A line matching any
// header heuristic starts a new section titled with that line; all
// following lines belong to it until the next header. When no header
// matches anywhere, the whole text becomes a single section titled
// "Introduction". Sections whose body is empty after detection are
// dropped.
func (d *RegexDetector) DetectSections(text string) ([]core.Section, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	lines := strings.Split(text, "\n")

	var sections []core.Section
	currentTitle := defaultSectionTitle
	var currentBody []string
	matched := false

	flush := func() {
		body := strings.TrimSpace(strings.Join(currentBody, "\n"))
		if body == "" {
			return
		}
		sections = append(sections, core.Section{
			Title: currentTitle,
			Body:  body,
			Index: len(sections),
		})
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && d.isHeader(trimmed) {
			flush()
			currentTitle = trimmed
			currentBody = currentBody[:0]
			matched = true
			continue
		}
		currentBody = append(currentBody, line)
	}
	flush()

	if !matched || len(sections) == 0 {
		body := strings.TrimSpace(text)
		return []core.Section{{Title: defaultSectionTitle, Body: body, Index: 0}}, nil
	}
	return sections, nil
}

func (d *RegexDetector) isHeader(line string) bool {
	if keywordHeaderRe.MatchString(line) {
		return true
	}
	if len(line) <= 60 && allCapsHeaderRe.MatchString(line) {
		return true
	}
	return numberedHeaderRe.MatchString(line)
}
