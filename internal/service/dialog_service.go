package service

import (
	"context"

	"course-copilot-be/internal/dto"
	"course-copilot-be/pkg/dialog"
)

// IDialogService is the transport-facing entry point for student messages.
type IDialogService interface {
	HandleMessage(ctx context.Context, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
}

type dialogService struct {
	orchestrator *dialog.Orchestrator
}

func NewDialogService(orchestrator *dialog.Orchestrator) IDialogService {
	return &dialogService{orchestrator: orchestrator}
}

func (s *dialogService) HandleMessage(ctx context.Context, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	reply, err := s.orchestrator.HandleMessage(ctx, req.UserId, req.Message)
	if err != nil {
		return nil, err
	}
	return &dto.ChatMessageResponse{Reply: reply}, nil
}
