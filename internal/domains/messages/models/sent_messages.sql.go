package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const createSentMessage = `-- name: CreateSentMessage :exec
INSERT INTO sent_messages (
    id, template_id, template_name, flight_number, hebrew_content, english_content,
    sent_by, recipients, sms_sent, email_sent, errors, job_id, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO NOTHING
`

type CreateSentMessageParams struct {
	ID             uuid.UUID       `json:"id"`
	TemplateID     string          `json:"template_id"`
	TemplateName   string          `json:"template_name"`
	FlightNumber   string          `json:"flight_number"`
	HebrewContent  string          `json:"hebrew_content"`
	EnglishContent string          `json:"english_content"`
	SentBy         string          `json:"sent_by"`
	Recipients     int32           `json:"recipients"`
	SmsSent        int32           `json:"sms_sent"`
	EmailSent      int32           `json:"email_sent"`
	Errors         json.RawMessage `json:"errors"`
	JobID          string          `json:"job_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (q *Queries) CreateSentMessage(ctx context.Context, arg CreateSentMessageParams) error {
	_, err := q.db.ExecContext(ctx, createSentMessage,
		arg.ID,
		arg.TemplateID,
		arg.TemplateName,
		arg.FlightNumber,
		arg.HebrewContent,
		arg.EnglishContent,
		arg.SentBy,
		arg.Recipients,
		arg.SmsSent,
		arg.EmailSent,
		arg.Errors,
		arg.JobID,
		arg.CreatedAt,
	)
	return err
}

const getSentMessage = `-- name: GetSentMessage :one
SELECT id, template_id, template_name, flight_number, hebrew_content, english_content,
       sent_by, recipients, sms_sent, email_sent, errors, job_id, created_at
FROM sent_messages
WHERE id = $1
`

func (q *Queries) GetSentMessage(ctx context.Context, id uuid.UUID) (SentMessage, error) {
	row := q.db.QueryRowContext(ctx, getSentMessage, id)
	var i SentMessage
	err := row.Scan(
		&i.ID,
		&i.TemplateID,
		&i.TemplateName,
		&i.FlightNumber,
		&i.HebrewContent,
		&i.EnglishContent,
		&i.SentBy,
		&i.Recipients,
		&i.SmsSent,
		&i.EmailSent,
		&i.Errors,
		&i.JobID,
		&i.CreatedAt,
	)
	return i, err
}

const listSentMessages = `-- name: ListSentMessages :many
SELECT id, template_id, template_name, flight_number, hebrew_content, english_content,
       sent_by, recipients, sms_sent, email_sent, errors, job_id, created_at
FROM sent_messages
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListSentMessages(ctx context.Context, limit int32) ([]SentMessage, error) {
	rows, err := q.db.QueryContext(ctx, listSentMessages, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SentMessage
	for rows.Next() {
		var i SentMessage
		if err := rows.Scan(
			&i.ID,
			&i.TemplateID,
			&i.TemplateName,
			&i.FlightNumber,
			&i.HebrewContent,
			&i.EnglishContent,
			&i.SentBy,
			&i.Recipients,
			&i.SmsSent,
			&i.EmailSent,
			&i.Errors,
			&i.JobID,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
