package entity

import (
	"context"
	"time"
)

// QueuedMessage is owned by the messaging system; this service only reads it.
type QueuedMessage struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageQueueReader interface {
	ListQueued(ctx context.Context, limit int) ([]QueuedMessage, error)
}
