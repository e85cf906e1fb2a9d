package templates

import (
	"errors"
	"time"

	"github.com/sangkips/flight-notify-service/internal/render"
)

var ErrTemplateNotFound = errors.New("template not found")

// Template is a reusable bilingual message. Fields is derived from the
// contents on read and never stored.
type Template struct {
	ID             string         `json:"id" firestore:"-"`
	Name           string         `json:"name" firestore:"name"`
	Content        string         `json:"content" firestore:"content"`
	EnglishContent string         `json:"englishContent" firestore:"englishContent"`
	IsActive       bool           `json:"isActive" firestore:"isActive"`
	CreatedAt      time.Time      `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" firestore:"updatedAt"`
	Fields         []render.Field `json:"fields" firestore:"-"`
}

// WithFields returns t with its placeholder field set filled in.
func (t Template) WithFields() Template {
	t.Fields = render.FieldsIn(t.Content, t.EnglishContent)
	return t
}

type TemplateRequest struct {
	Name           string `json:"name" validate:"notblank,max=200"`
	Content        string `json:"content" validate:"notblank"`
	EnglishContent string `json:"englishContent"`
	IsActive       *bool  `json:"isActive"`
}
