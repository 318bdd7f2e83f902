package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) ListQueued(ctx context.Context, limit int) ([]entity.QueuedMessage, error) {
	query := `
		SELECT id, channel, recipient, body, status, created_at
		FROM queued_messages
		WHERE status = 'queued'
		ORDER BY created_at ASC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]entity.QueuedMessage, 0)
	for rows.Next() {
		var m entity.QueuedMessage
		if err := rows.Scan(&m.ID, &m.Channel, &m.Recipient, &m.Body, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
