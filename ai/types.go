package ai

// PaperMetadata holds bibliographic fields extracted from a paper's
// text. Any field may be empty when extraction could not determine it.
type PaperMetadata struct {
	// Title is the paper's title as printed.
	Title string

	// Authors lists author names in citation order.
	Authors []string

	// Abstract is the paper's abstract, verbatim where possible.
	Abstract string
}

// SummaryLevels are the detail levels the default summarizer produces.
var SummaryLevels = []string{"brief", "detailed"}
