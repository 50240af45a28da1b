package retrieval

import "errors"

var (
	// ErrEmptyDocument means extraction produced no usable text, so there
	// is nothing to index. Retrying will not help.
	ErrEmptyDocument = errors.New("document has no extractable text")

	// ErrEmbedding wraps provider failures during indexing or querying.
	// These are transient; callers may retry.
	ErrEmbedding = errors.New("embedding provider failed")
)
