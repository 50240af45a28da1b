package entity

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
