package models

import (
	"time"

	"github.com/google/uuid"
)

type Template struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Content        string    `json:"content"`
	EnglishContent string    `json:"english_content"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
