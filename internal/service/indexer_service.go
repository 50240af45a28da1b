package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/internal/pkg/mailer"
	"course-copilot-be/internal/repository/specification"
	"course-copilot-be/internal/repository/unitofwork"
	"course-copilot-be/pkg/events"
	"course-copilot-be/pkg/extraction"
	pkgNats "course-copilot-be/pkg/nats"
	"course-copilot-be/pkg/retrieval"
	"course-copilot-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

type indexerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	bucket         *storage.Bucket
	extractors     *extraction.Registry
	engine         *retrieval.Engine
	eventPublisher *pkgNats.Publisher
	mail           mailer.IEmailService
	alertEmail     string
	maxAttempts    int
	log            logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	bucket *storage.Bucket,
	extractors *extraction.Registry,
	engine *retrieval.Engine,
	eventPublisher *pkgNats.Publisher,
	mail mailer.IEmailService,
	alertEmail string,
	maxAttempts int,
	log logger.ILogger,
) IIndexerService {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &indexerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		bucket:         bucket,
		extractors:     extractors,
		engine:         engine,
		eventPublisher: eventPublisher,
		mail:           mail,
		alertEmail:     alertEmail,
		maxAttempts:    maxAttempts,
		log:            log,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("Indexer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		s.log.Error("Indexer", "Failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Retriable
		return
	}
	if document == nil {
		s.log.Warn("Indexer", "Document no longer exists", map[string]interface{}{
			"document_id": payload.DocumentId,
		})
		msg.Ack()
		return
	}

	if err := s.indexDocument(ctx, document); err != nil {
		s.recordFailure(ctx, uow, document, err)
		msg.Ack() // Retries happen via requeue, not redelivery
		return
	}

	s.log.Info("Indexer", "Document indexed", map[string]interface{}{
		"document_id": document.Id,
		"chunks":      document.ChunkCount,
	})
	s.publishEvent(ctx, events.NewDocumentIndexed(document.Id.String(), document.ChunkCount))
	msg.Ack()
}

func (s *indexerService) indexDocument(ctx context.Context, document *entity.Document) error {
	data, err := s.bucket.Get(ctx, document.StorageKey)
	if err != nil {
		return err
	}

	text, err := s.extractors.Extract(ctx, document.FileName, data)
	if err != nil {
		return err
	}

	count, err := s.engine.Index(ctx, document.Id, text)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document.Status = entity.DocumentStatusIndexed
	document.ChunkCount = count
	document.LastError = ""
	now := time.Now()
	document.UpdatedAt = &now
	return uow.DocumentRepository().Update(ctx, document)
}

// recordFailure bumps the attempt counter and requeues, or parks the
// document as NEEDS_ATTENTION once attempts run out. Permanent failures
// (empty or unreadable files) park immediately since retrying cannot help.
func (s *indexerService) recordFailure(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document, cause error) {
	document.Attempts++
	document.LastError = cause.Error()

	permanent := errors.Is(cause, retrieval.ErrEmptyDocument) || errors.Is(cause, extraction.ErrUnsupportedFormat)
	exhausted := document.Attempts >= s.maxAttempts

	if permanent || exhausted {
		document.Status = entity.DocumentStatusNeedsAttention
	}

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		s.log.Error("Indexer", "Failed to record indexing failure", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
		return
	}

	if permanent || exhausted {
		s.log.Error("Indexer", "Document needs attention", map[string]interface{}{
			"document_id": document.Id,
			"attempts":    document.Attempts,
			"cause":       cause.Error(),
		})
		s.publishEvent(ctx, events.NewDocumentFailed(document.Id.String(), cause.Error(), document.Attempts))
		if s.mail != nil && s.alertEmail != "" {
			if err := s.mail.SendIndexingAlert(s.alertEmail, document.FileName, cause.Error()); err != nil {
				s.log.Warn("Indexer", "Failed to send indexing alert", map[string]interface{}{
					"document_id": document.Id,
					"error":       err.Error(),
				})
			}
		}
		return
	}

	s.log.Warn("Indexer", "Indexing failed, requeueing", map[string]interface{}{
		"document_id": document.Id,
		"attempt":     document.Attempts,
		"cause":       cause.Error(),
	})
	payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: document.Id})
	if err != nil {
		return
	}
	requeue := message.NewMessage(document.Id.String(), payload)
	requeue.SetContext(ctx)
	if err := s.pubSub.Publish(s.topicName, requeue); err != nil {
		s.log.Error("Indexer", "Failed to requeue document", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
	}
}

func (s *indexerService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("Indexer", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
