package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document lifecycle states. A document enters pending on upload and leaves
// it either indexed or needing staff attention after repeated failures.
const (
	DocumentStatusPending        = "PENDING"
	DocumentStatusIndexed        = "INDEXED"
	DocumentStatusNeedsAttention = "NEEDS_ATTENTION"
)

type Document struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FileName   string
	Course     string
	Cycle      string
	Module     string
	Section    string
	StorageKey string
	Status     string
	Attempts   int
	LastError  string
	ChunkCount int
	UploadedAt time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
