package templates

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sangkips/flight-notify-service/internal/domains/templates/models"
)

type Repository interface {
	CreateTemplate(ctx context.Context, t Template) (Template, error)
	GetTemplate(ctx context.Context, id string) (Template, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error)
	UpdateTemplate(ctx context.Context, t Template) (Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

type repository struct {
	q *models.Queries
}

func NewRepository(db models.DBTX) Repository {
	return &repository{q: models.New(db)}
}

func fromModel(m models.Template) Template {
	return Template{
		ID:             m.ID.String(),
		Name:           m.Name,
		Content:        m.Content,
		EnglishContent: m.EnglishContent,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTemplateNotFound
	}
	return err
}

func (r *repository) CreateTemplate(ctx context.Context, t Template) (Template, error) {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return Template{}, err
	}
	m, err := r.q.CreateTemplate(ctx, models.CreateTemplateParams{
		ID:             id,
		Name:           t.Name,
		Content:        t.Content,
		EnglishContent: t.EnglishContent,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
	})
	if err != nil {
		return Template{}, err
	}
	return fromModel(m), nil
}

func (r *repository) GetTemplate(ctx context.Context, id string) (Template, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return Template{}, ErrTemplateNotFound
	}
	m, err := r.q.GetTemplate(ctx, uid)
	if err != nil {
		return Template{}, notFound(err)
	}
	return fromModel(m), nil
}

func (r *repository) ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error) {
	rows, err := r.q.ListTemplates(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]Template, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromModel(m))
	}
	return out, nil
}

func (r *repository) UpdateTemplate(ctx context.Context, t Template) (Template, error) {
	uid, err := uuid.Parse(t.ID)
	if err != nil {
		return Template{}, ErrTemplateNotFound
	}
	m, err := r.q.UpdateTemplate(ctx, models.UpdateTemplateParams{
		ID:             uid,
		Name:           t.Name,
		Content:        t.Content,
		EnglishContent: t.EnglishContent,
		IsActive:       t.IsActive,
		UpdatedAt:      t.UpdatedAt,
	})
	if err != nil {
		return Template{}, notFound(err)
	}
	return fromModel(m), nil
}

func (r *repository) DeleteTemplate(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrTemplateNotFound
	}
	n, err := r.q.DeleteTemplate(ctx, uid)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
