package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUpdateRequest struct {
	Course  string `json:"course" validate:"required"`
	Cycle   string `json:"cycle" validate:"required,len=5"`
	Module  string `json:"module" validate:"required,oneof=A B"`
	Section string `json:"section" validate:"required"`
	Content string `json:"content" validate:"required"`
	// Category is optional; when empty the service suggests one and the
	// staff member confirms it through a second request.
	Category string `json:"category,omitempty"`
}

type CreateUpdateResponse struct {
	Id       uuid.UUID `json:"id"`
	Category string    `json:"category"`
}

type SuggestCategoryRequest struct {
	Content string `json:"content" validate:"required"`
}

type SuggestCategoryResponse struct {
	Category string `json:"category"`
}

type UpdateResponse struct {
	Id        uuid.UUID `json:"id"`
	Course    string    `json:"course"`
	Cycle     string    `json:"cycle"`
	Module    string    `json:"module"`
	Section   string    `json:"section"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
