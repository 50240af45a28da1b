package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseUpdate struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Course    string         `gorm:"type:varchar(255);not null;index:idx_updates_scope"`
	Cycle     string         `gorm:"type:varchar(5);not null;index:idx_updates_scope"`
	Module    string         `gorm:"type:varchar(1);not null"`
	Section   string         `gorm:"type:varchar(32);not null;index:idx_updates_scope"`
	Category  string         `gorm:"type:varchar(32);not null"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CourseUpdate) TableName() string {
	return "course_updates"
}
