package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content        string
	EmbeddingValue []float32
	DocumentId     uuid.UUID `gorm:"type:uuid;index"`
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
