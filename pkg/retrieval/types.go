package retrieval

import (
	"time"

	"github.com/google/uuid"
)

// Scope narrows a search to one course offering. All three fields must be
// set; retrieval never crosses course, cycle or section boundaries.
type Scope struct {
	Course  string
	Cycle   string
	Section string
}

func (s Scope) Complete() bool {
	return s.Course != "" && s.Cycle != "" && s.Section != ""
}

// Chunk is one embedded slice of a document, ready for storage.
type Chunk struct {
	DocumentID uuid.UUID
	Index      int
	Content    string
	Vector     []float32
}

// Result is one scored chunk returned from a similarity search.
type Result struct {
	DocumentID   uuid.UUID
	DocumentName string
	ChunkIndex   int
	Content      string
	Score        float64
	UploadedAt   time.Time
}
