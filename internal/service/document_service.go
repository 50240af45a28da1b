package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/internal/repository/specification"
	"course-copilot-be/internal/repository/unitofwork"
	"course-copilot-be/pkg/conversation"
	"course-copilot-be/pkg/extraction"
	"course-copilot-be/pkg/retrieval"
	"course-copilot-be/pkg/storage"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context, course, cycle, section string) ([]*dto.DocumentResponse, error)
	Download(ctx context.Context, id uuid.UUID) (*dto.DocumentDownload, error)
	ListStored(ctx context.Context, course, cycle, module, section string) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reindex(ctx context.Context, id uuid.UUID) error

	// ListDocuments names the indexed documents in a scope for the dialog
	// layer's document listing effect.
	ListDocuments(ctx context.Context, scope retrieval.Scope) ([]string, error)
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
	bucket     *storage.Bucket
	extractors *extraction.Registry
	publisher  IPublisherService
	log        logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	bucket *storage.Bucket,
	extractors *extraction.Registry,
	publisher IPublisherService,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
		bucket:     bucket,
		extractors: extractors,
		publisher:  publisher,
		log:        log,
	}
}

// Upload stores the raw file, records the document as pending and queues it
// for indexing. The upload succeeds even if indexing later fails; staff see
// the status on the document record.
func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	if !conversation.ValidCycle(req.Cycle) {
		return nil, fmt.Errorf("invalid cycle %q, expected YYYY1 or YYYY2", req.Cycle)
	}
	if !s.extractors.Supported(req.FileName) {
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(req.FileName))
	}

	contentType := mime.TypeByExtension(filepath.Ext(req.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := s.bucket.Put(ctx, storage.ObjectRef{
		Course:   req.Course,
		Cycle:    req.Cycle,
		Module:   req.Module,
		Section:  req.Section,
		FileName: req.FileName,
	}, req.Data, contentType)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document := entity.Document{
		Id:         uuid.New(),
		FileName:   req.FileName,
		Course:     req.Course,
		Cycle:      req.Cycle,
		Module:     req.Module,
		Section:    req.Section,
		StorageKey: key,
		Status:     entity.DocumentStatusPending,
		UploadedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	if err := s.queueIndexing(ctx, document.Id); err != nil {
		// The record exists with status PENDING; the reindex endpoint can
		// requeue it, so the upload is not rolled back.
		s.log.Error("Document", "Failed to queue indexing after upload", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
	}

	return &dto.UploadDocumentResponse{Id: document.Id, Status: document.Status}, nil
}

func (s *documentService) queueIndexing(ctx context.Context, documentId uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: documentId})
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, payload)
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}
	return toDocumentResponse(document), nil
}

func (s *documentService) List(ctx context.Context, course, cycle, section string) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByScope{Course: course, Cycle: cycle, Section: section},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, len(documents))
	for i, d := range documents {
		res[i] = toDocumentResponse(d)
	}
	return res, nil
}

// Download serves the stored file regardless of indexing status. Documents
// that never produced embeddings stay retrievable by staff.
func (s *documentService) Download(ctx context.Context, id uuid.UUID) (*dto.DocumentDownload, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, nil
	}

	data, err := s.bucket.Get(ctx, document.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("fetch stored file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(document.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &dto.DocumentDownload{
		FileName:    document.FileName,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// ListStored names the raw files under one bucket prefix. Comparing it with
// List lets staff spot uploads that never got a database record.
func (s *documentService) ListStored(ctx context.Context, course, cycle, module, section string) ([]string, error) {
	return s.bucket.ListSection(ctx, course, cycle, module, section)
}

// Delete removes the record, its chunks and the stored file. Chunks go
// first so search can never return a chunk whose document is gone.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.bucket.Delete(ctx, document.StorageKey); err != nil {
		// The database state is already consistent; an orphaned S3 object
		// is only a storage cost.
		s.log.Warn("Document", "Failed to delete stored file", map[string]interface{}{
			"document_id": id,
			"key":         document.StorageKey,
			"error":       err.Error(),
		})
	}
	return nil
}

// Reindex requeues a document, typically one stuck in NEEDS_ATTENTION.
func (s *documentService) Reindex(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return fmt.Errorf("document %s not found", id)
	}

	document.Status = entity.DocumentStatusPending
	document.Attempts = 0
	document.LastError = ""
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return err
	}
	return s.queueIndexing(ctx, id)
}

func (s *documentService) ListDocuments(ctx context.Context, scope retrieval.Scope) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByScope{Course: scope.Course, Cycle: scope.Cycle, Section: scope.Section},
		specification.ByStatus{Status: entity.DocumentStatusIndexed},
		specification.OrderBy{Field: "file_name"},
	)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(documents))
	for i, d := range documents {
		names[i] = d.FileName
	}
	return names, nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:         d.Id,
		FileName:   d.FileName,
		Course:     d.Course,
		Cycle:      d.Cycle,
		Module:     d.Module,
		Section:    d.Section,
		Status:     d.Status,
		Attempts:   d.Attempts,
		LastError:  d.LastError,
		ChunkCount: d.ChunkCount,
		UploadedAt: d.UploadedAt,
	}
}
