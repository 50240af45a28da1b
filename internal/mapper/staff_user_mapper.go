package mapper

import (
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/model"

	"gorm.io/gorm"
)

type StaffUserMapper struct{}

func NewStaffUserMapper() *StaffUserMapper {
	return &StaffUserMapper{}
}

func (m *StaffUserMapper) ToEntity(e *model.StaffUser) *entity.StaffUser {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.StaffUser{
		Id:           e.Id,
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    e.DeletedAt.Valid,
	}
}

func (m *StaffUserMapper) ToModel(e *entity.StaffUser) *model.StaffUser {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.StaffUser{
		Id:           e.Id,
		Name:         e.Name,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}
