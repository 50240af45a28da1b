package dto

import "github.com/google/uuid"

type CreateCourseRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateCourseResponse struct {
	Id uuid.UUID `json:"id"`
}

type CourseResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
