package templates

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req TemplateRequest) (Template, error) {
	now := s.now().UTC()
	t := Template{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(req.Name),
		Content:        req.Content,
		EnglishContent: req.EnglishContent,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	created, err := s.repo.CreateTemplate(ctx, t)
	if err != nil {
		return Template{}, err
	}
	return created.WithFields(), nil
}

// Get fetches a template together with the placeholder fields it uses.
func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return Template{}, err
	}
	return t.WithFields(), nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Template, error) {
	list, err := s.repo.ListTemplates(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = list[i].WithFields()
	}
	return list, nil
}

func (s *Service) Update(ctx context.Context, id string, req TemplateRequest) (Template, error) {
	current, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return Template{}, err
	}

	current.Name = strings.TrimSpace(req.Name)
	current.Content = req.Content
	current.EnglishContent = req.EnglishContent
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	current.UpdatedAt = s.now().UTC()

	updated, err := s.repo.UpdateTemplate(ctx, current)
	if err != nil {
		return Template{}, err
	}
	return updated.WithFields(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteTemplate(ctx, id)
}
