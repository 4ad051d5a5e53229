package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-market/internal/domain/messages"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) Create(ctx context.Context, m messages.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, recipient_id, sender_id, title, content, type, is_read, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		m.ID,
		m.RecipientID,
		m.SenderID,
		m.Title,
		m.Content,
		m.Type,
		m.IsRead,
		m.CreatedAt,
	)
	return err
}

func (r *MessagesRepo) Update(ctx context.Context, m messages.Message) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = $2 WHERE id = $1`, m.ID, m.IsRead)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return messages.ErrNotFound
	}
	return nil
}

func (r *MessagesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return messages.ErrNotFound
	}
	return nil
}

func (r *MessagesRepo) GetByID(ctx context.Context, id string) (messages.Message, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return messages.Message{}, messages.ErrNotFound
	}

	var m messages.Message
	err := r.db.QueryRowContext(ctx, `
		SELECT id, recipient_id, sender_id, title, content, type, is_read, created_at
		FROM messages
		WHERE id = $1
	`, id).Scan(
		&m.ID,
		&m.RecipientID,
		&m.SenderID,
		&m.Title,
		&m.Content,
		&m.Type,
		&m.IsRead,
		&m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return messages.Message{}, messages.ErrNotFound
		}
		return messages.Message{}, err
	}
	return m, nil
}

func (r *MessagesRepo) ListByRecipient(ctx context.Context, recipientID string) ([]messages.Message, error) {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return []messages.Message{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, recipient_id, sender_id, title, content, type, is_read, created_at
		FROM messages
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]messages.Message, 0)
	for rows.Next() {
		var m messages.Message
		if err := rows.Scan(
			&m.ID,
			&m.RecipientID,
			&m.SenderID,
			&m.Title,
			&m.Content,
			&m.Type,
			&m.IsRead,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
