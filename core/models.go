package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing of the submitted source.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs, making
// resubmission of the same paper idempotent.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// PaperStatus is the coarse processing outcome of a paper.
type PaperStatus int

const (
	// StatusProcessing indicates ingestion is in flight.
	StatusProcessing PaperStatus = iota + 1
	// StatusCompleted indicates every stage finished.
	StatusCompleted
	// StatusError indicates an essential stage failed; terminal.
	StatusError
	// StatusPartial indicates ingestion finished with degraded content; terminal.
	StatusPartial
)

// String returns the persisted representation of the status.
func (s PaperStatus) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	case StatusPartial:
		return "partial"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ProcessingStage is a named step in the ingestion state machine.
// Stages are persisted after they complete, so a paper's Stage is always
// the last stage that finished successfully.
type ProcessingStage int

const (
	StageSubmitted ProcessingStage = iota + 1
	StageDownloading
	StageExtractingText
	StageExtractingMetadata
	StageSummarizing
	StageTextExtracted
	StageLearningGenerated
	StageCompleted
)

var stageNames = map[ProcessingStage]string{
	StageSubmitted:          "submitted",
	StageDownloading:        "downloading",
	StageExtractingText:     "extracting_text",
	StageExtractingMetadata: "extracting_metadata",
	StageSummarizing:        "summarizing",
	StageTextExtracted:      "text_extracted",
	StageLearningGenerated:  "learning_generated",
	StageCompleted:          "completed",
}

// String returns the persisted name of the stage.
func (s ProcessingStage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Paper is a submitted document and its ingestion state.
// It is owned by the ingestion pipeline while Status is StatusProcessing;
// all mutations go through stage transitions.
type Paper struct {
	Id           ID
	Source       string // URL or local path the paper was submitted as
	Status       PaperStatus
	Stage        ProcessingStage
	RawText      string // extracted full text; may be sanitized or empty
	ErrorMessage string
	Tags         []string // records of non-essential stage failures

	// Collaborator-owned fields, passed through unexamined.
	Title     string
	Authors   []string
	Abstract  string
	Summaries map[string]string

	ChunkCount int
	BlobURL    string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Namespace returns the vector-index namespace owned by this paper.
// Every vector written under it belongs to this paper alone.
func (p *Paper) Namespace() string {
	return fmt.Sprintf("%d", p.Id)
}

// Section is a titled span of a paper's text, derived transiently
// during segmentation. It is not persisted independently.
type Section struct {
	Title string
	Body  string
	Index int
}

// Chunk is a bounded span of a section's text, the unit of embedding
// and retrieval. Chunk identity is (SectionIndex, ChunkIndex) and is
// stable across re-runs with identical input and parameters.
type Chunk struct {
	Text         string
	PaperId      ID
	SectionTitle string
	SectionIndex int
	ChunkIndex   int
	Length       int

	IsAbstract     bool
	IsIntroduction bool
	IsMethodology  bool
	IsResults      bool
	IsDiscussion   bool
	IsConclusion   bool
}

// VectorID returns the stable vector-record ID for this chunk.
func (c *Chunk) VectorID() string {
	return fmt.Sprintf("%d:%d:%d", c.PaperId, c.SectionIndex, c.ChunkIndex)
}

// previewLength limits how much chunk text is copied into vector metadata.
const previewLength = 1000

// Metadata builds the typed metadata record stored alongside the
// chunk's vector.
func (c *Chunk) Metadata() ChunkMetadata {
	preview := c.Text
	if len(preview) > previewLength {
		preview = preview[:previewLength]
	}
	return ChunkMetadata{
		PaperId:        c.PaperId,
		SectionTitle:   c.SectionTitle,
		SectionIndex:   c.SectionIndex,
		ChunkIndex:     c.ChunkIndex,
		Length:         c.Length,
		TextPreview:    preview,
		IsAbstract:     c.IsAbstract,
		IsIntroduction: c.IsIntroduction,
		IsMethodology:  c.IsMethodology,
		IsResults:      c.IsResults,
		IsDiscussion:   c.IsDiscussion,
		IsConclusion:   c.IsConclusion,
	}
}

// ChunkMetadata is the typed record stored with each vector.
// Fields mirror Chunk so a retrieval hit carries enough context for
// downstream prompting without a second lookup.
type ChunkMetadata struct {
	PaperId        ID
	SectionTitle   string
	SectionIndex   int
	ChunkIndex     int
	Length         int
	TextPreview    string
	IsAbstract     bool
	IsIntroduction bool
	IsMethodology  bool
	IsResults      bool
	IsDiscussion   bool
	IsConclusion   bool
}

// VectorRecord is one embedded chunk as written to a vector index.
type VectorRecord struct {
	Id       string
	Vector   []float32
	Metadata ChunkMetadata
}

// IndexDescriptor describes a vector index held by a provider.
type IndexDescriptor struct {
	Name      string
	Dimension int
	Metric    string
}

// MetricCosine is the only metric the pipeline creates indexes with.
const MetricCosine = "cosine"

// QueryMatch is one ranked result from a similarity query.
type QueryMatch struct {
	Id       string
	Score    float32
	Text     string
	Metadata ChunkMetadata
}
