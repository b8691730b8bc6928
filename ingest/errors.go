package ingest

import "errors"

var (
	// ErrRepositoryRequired is returned when a paper repository is not provided.
	ErrRepositoryRequired = errors.New("paper repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrVectorManagerRequired is returned when a vector manager is not provided.
	ErrVectorManagerRequired = errors.New("vector manager required")

	// ErrAcquisition indicates the paper's source could not be fetched.
	ErrAcquisition = errors.New("acquisition failed")

	// ErrNoExtractableText indicates extraction produced no usable text.
	// This is an essential failure.
	ErrNoExtractableText = errors.New("no extractable text")

	// ErrUnsupportedSource indicates a source string no acquirer can handle.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrAllFallbacksFailed indicates every strategy in a fallback
	// chain failed.
	ErrAllFallbacksFailed = errors.New("all fallback strategies failed")
)
