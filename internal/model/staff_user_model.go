package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffUser struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Email        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (StaffUser) TableName() string {
	return "staff_users"
}
