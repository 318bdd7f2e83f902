package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const queuedMessagesLimit = 100

// ListMessagesUseCase lê a fila de mensagens mantida pelo sistema de mensageria.
type ListMessagesUseCase struct {
	Reader entity.MessageQueueReader
}

func NewListMessagesUseCase(reader entity.MessageQueueReader) *ListMessagesUseCase {
	return &ListMessagesUseCase{Reader: reader}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context) ([]entity.QueuedMessage, error) {
	if uc.Reader == nil {
		return nil, &DomainError{Code: CodeNotConfigured, Message: "message queue not configured"}
	}
	msgs, err := uc.Reader.ListQueued(ctx, queuedMessagesLimit)
	if err != nil {
		return nil, databaseError("failed to list queued messages", err)
	}
	if msgs == nil {
		msgs = []entity.QueuedMessage{}
	}
	return msgs, nil
}
