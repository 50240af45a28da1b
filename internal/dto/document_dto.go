package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	Course   string `json:"course" validate:"required"`
	Cycle    string `json:"cycle" validate:"required,len=5"`
	Module   string `json:"module" validate:"required,oneof=A B"`
	Section  string `json:"section" validate:"required"`
	FileName string `json:"file_name" validate:"required"`
	Data     []byte `json:"-"`
}

type UploadDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	Course     string    `json:"course"`
	Cycle      string    `json:"cycle"`
	Module     string    `json:"module"`
	Section    string    `json:"section"`
	Status     string    `json:"status"`
	Attempts   int       `json:"attempts"`
	LastError  string    `json:"last_error,omitempty"`
	ChunkCount int       `json:"chunk_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type DocumentDownload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PublishIndexDocumentMessage rides the internal embedding queue.
type PublishIndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
