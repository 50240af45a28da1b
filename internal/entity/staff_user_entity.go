package entity

import (
	"time"

	"github.com/google/uuid"
)

type StaffUser struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
