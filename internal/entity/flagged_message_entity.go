package entity

import (
	"time"

	"github.com/google/uuid"
)

type FlaggedMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    string
	Message   string
	Category  string
	Details   map[string]interface{}
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
