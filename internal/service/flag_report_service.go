package service

import (
	"context"
	"time"

	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/pkg/logger"
	"course-copilot-be/internal/pkg/mailer"
	"course-copilot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IFlagReportService records flagged student messages and alerts staff.
type IFlagReportService interface {
	ReportFlagged(ctx context.Context, userID, message, category string) error
}

type flagReportService struct {
	uowFactory  unitofwork.RepositoryFactory
	mailer      mailer.IEmailService
	reportEmail string
	log         logger.ILogger
}

func NewFlagReportService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	reportEmail string,
	log logger.ILogger,
) IFlagReportService {
	return &flagReportService{
		uowFactory:  uowFactory,
		mailer:      emailService,
		reportEmail: reportEmail,
		log:         log,
	}
}

// ReportFlagged persists the flag for the audit trail and emails staff. The
// database record matters most; a failed email is only logged.
func (s *flagReportService) ReportFlagged(ctx context.Context, userID, message, category string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	flag := entity.FlaggedMessage{
		Id:       uuid.New(),
		UserId:   userID,
		Message:  message,
		Category: category,
		Details: map[string]interface{}{
			"source": "moderation_gate",
		},
		CreatedAt: time.Now(),
	}
	if err := uow.FlaggedMessageRepository().Create(ctx, &flag); err != nil {
		return err
	}

	if s.mailer != nil && s.reportEmail != "" {
		if err := s.mailer.SendFlaggedReport(s.reportEmail, userID, message, category); err != nil {
			s.log.Warn("FlagReport", "Failed to email flagged report", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}
