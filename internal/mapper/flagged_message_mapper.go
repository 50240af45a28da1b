package mapper

import (
	"encoding/json"
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FlaggedMessageMapper struct{}

func NewFlaggedMessageMapper() *FlaggedMessageMapper {
	return &FlaggedMessageMapper{}
}

func (m *FlaggedMessageMapper) ToEntity(e *model.FlaggedMessage) *entity.FlaggedMessage {
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

	var details map[string]interface{}
	if len(e.Details) > 0 {
		// A corrupt details blob should not hide the flag itself.
		_ = json.Unmarshal(e.Details, &details)
	}

	return &entity.FlaggedMessage{
		Id:        e.Id,
		UserId:    e.UserId,
		Message:   e.Message,
		Category:  e.Category,
		Details:   details,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *FlaggedMessageMapper) ToModel(e *entity.FlaggedMessage) *model.FlaggedMessage {
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

	var details datatypes.JSON
	if e.Details != nil {
		if raw, err := json.Marshal(e.Details); err == nil {
			details = raw
		}
	}

	return &model.FlaggedMessage{
		Id:        e.Id,
		UserId:    e.UserId,
		Message:   e.Message,
		Category:  e.Category,
		Details:   details,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *FlaggedMessageMapper) ToEntities(messages []*model.FlaggedMessage) []*entity.FlaggedMessage {
	entities := make([]*entity.FlaggedMessage, len(messages))
	for i, e := range messages {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
