package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName   string         `gorm:"type:varchar(255);not null"`
	Course     string         `gorm:"type:varchar(255);not null;index:idx_documents_scope"`
	Cycle      string         `gorm:"type:varchar(5);not null;index:idx_documents_scope"`
	Module     string         `gorm:"type:varchar(1);not null"`
	Section    string         `gorm:"type:varchar(32);not null;index:idx_documents_scope"`
	StorageKey string         `gorm:"type:text;not null"`
	Status     string         `gorm:"type:varchar(32);not null;default:'PENDING';index"`
	Attempts   int            `gorm:"default:0"`
	LastError  string         `gorm:"type:text"`
	ChunkCount int            `gorm:"default:0"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
