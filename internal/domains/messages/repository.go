package messages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sangkips/flight-notify-service/internal/domains/messages/models"
)

// Repository is the remote history store. CreateMessage must be idempotent
// on ID so pending writes can be replayed.
type Repository interface {
	CreateMessage(ctx context.Context, m SentMessage) error
	GetMessage(ctx context.Context, id string) (SentMessage, error)
	ListMessages(ctx context.Context, limit int) ([]SentMessage, error)
}

type repository struct {
	q *models.Queries
}

func NewRepository(db models.DBTX) Repository {
	return &repository{q: models.New(db)}
}

func fromModel(m models.SentMessage) SentMessage {
	out := SentMessage{
		ID:             m.ID.String(),
		TemplateID:     m.TemplateID,
		TemplateName:   m.TemplateName,
		FlightNumber:   m.FlightNumber,
		HebrewContent:  m.HebrewContent,
		EnglishContent: m.EnglishContent,
		SentBy:         m.SentBy,
		Recipients:     int(m.Recipients),
		SMSSent:        int(m.SmsSent),
		EmailSent:      int(m.EmailSent),
		JobID:          m.JobID,
		CreatedAt:      m.CreatedAt,
	}
	if len(m.Errors) > 0 {
		_ = json.Unmarshal(m.Errors, &out.Errors)
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	return out
}

func (r *repository) CreateMessage(ctx context.Context, m SentMessage) error {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return fmt.Errorf("invalid message id %q: %w", m.ID, err)
	}
	errs := m.Errors
	if errs == nil {
		errs = []string{}
	}
	rawErrors, err := json.Marshal(errs)
	if err != nil {
		return err
	}
	return r.q.CreateSentMessage(ctx, models.CreateSentMessageParams{
		ID:             id,
		TemplateID:     m.TemplateID,
		TemplateName:   m.TemplateName,
		FlightNumber:   m.FlightNumber,
		HebrewContent:  m.HebrewContent,
		EnglishContent: m.EnglishContent,
		SentBy:         m.SentBy,
		Recipients:     int32(m.Recipients),
		SmsSent:        int32(m.SMSSent),
		EmailSent:      int32(m.EmailSent),
		Errors:         rawErrors,
		JobID:          m.JobID,
		CreatedAt:      m.CreatedAt,
	})
}

func (r *repository) GetMessage(ctx context.Context, id string) (SentMessage, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return SentMessage{}, ErrMessageNotFound
	}
	m, err := r.q.GetSentMessage(ctx, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return SentMessage{}, ErrMessageNotFound
	}
	if err != nil {
		return SentMessage{}, err
	}
	return fromModel(m), nil
}

func (r *repository) ListMessages(ctx context.Context, limit int) ([]SentMessage, error) {
	rows, err := r.q.ListSentMessages(ctx, int32(limit))
	if err != nil {
		return nil, err
	}
	out := make([]SentMessage, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromModel(m))
	}
	return out, nil
}
