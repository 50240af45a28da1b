package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FlaggedMessage struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string         `gorm:"type:varchar(64);not null;index"`
	Message   string         `gorm:"type:text;not null"`
	Category  string         `gorm:"type:varchar(255)"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (FlaggedMessage) TableName() string {
	return "flagged_messages"
}
