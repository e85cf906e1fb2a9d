package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createTemplate = `-- name: CreateTemplate :one
INSERT INTO templates (id, name, content, english_content, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING id, name, content, english_content, is_active, created_at, updated_at
`

type CreateTemplateParams struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Content        string    `json:"content"`
	EnglishContent string    `json:"english_content"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func (q *Queries) CreateTemplate(ctx context.Context, arg CreateTemplateParams) (Template, error) {
	row := q.db.QueryRowContext(ctx, createTemplate,
		arg.ID,
		arg.Name,
		arg.Content,
		arg.EnglishContent,
		arg.IsActive,
		arg.CreatedAt,
	)
	var i Template
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Content,
		&i.EnglishContent,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getTemplate = `-- name: GetTemplate :one
SELECT id, name, content, english_content, is_active, created_at, updated_at
FROM templates
WHERE id = $1
`

func (q *Queries) GetTemplate(ctx context.Context, id uuid.UUID) (Template, error) {
	row := q.db.QueryRowContext(ctx, getTemplate, id)
	var i Template
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Content,
		&i.EnglishContent,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listTemplates = `-- name: ListTemplates :many
SELECT id, name, content, english_content, is_active, created_at, updated_at
FROM templates
WHERE ($1::boolean = FALSE OR is_active = TRUE)
ORDER BY name ASC
`

func (q *Queries) ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error) {
	rows, err := q.db.QueryContext(ctx, listTemplates, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Template
	for rows.Next() {
		var i Template
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Content,
			&i.EnglishContent,
			&i.IsActive,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateTemplate = `-- name: UpdateTemplate :one
UPDATE templates
SET name = $2, content = $3, english_content = $4, is_active = $5, updated_at = $6
WHERE id = $1
RETURNING id, name, content, english_content, is_active, created_at, updated_at
`

type UpdateTemplateParams struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Content        string    `json:"content"`
	EnglishContent string    `json:"english_content"`
	IsActive       bool      `json:"is_active"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (q *Queries) UpdateTemplate(ctx context.Context, arg UpdateTemplateParams) (Template, error) {
	row := q.db.QueryRowContext(ctx, updateTemplate,
		arg.ID,
		arg.Name,
		arg.Content,
		arg.EnglishContent,
		arg.IsActive,
		arg.UpdatedAt,
	)
	var i Template
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Content,
		&i.EnglishContent,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteTemplate = `-- name: DeleteTemplate :execrows
DELETE FROM templates WHERE id = $1
`

func (q *Queries) DeleteTemplate(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTemplate, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
