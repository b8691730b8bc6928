package segment

import "errors"

var (
	// ErrEmptyText indicates segmentation was asked to process a
	// document with no text content.
	ErrEmptyText = errors.New("document text is empty")

	// ErrInvalidChunkSize indicates a non-positive chunk size or an
	// overlap at least as large as the chunk size.
	ErrInvalidChunkSize = errors.New("invalid chunk size configuration")
)
