package templates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/flight-notify-service/internal/render"
)

type mockRepository struct {
	templates map[string]Template
	createErr error
	created   []Template
	updated   []Template
}

func newMockRepository(list ...Template) *mockRepository {
	m := &mockRepository{templates: map[string]Template{}}
	for _, t := range list {
		m.templates[t.ID] = t
	}
	return m
}

func (m *mockRepository) CreateTemplate(ctx context.Context, t Template) (Template, error) {
	if m.createErr != nil {
		return Template{}, m.createErr
	}
	m.created = append(m.created, t)
	m.templates[t.ID] = t
	return t, nil
}

func (m *mockRepository) GetTemplate(ctx context.Context, id string) (Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return t, nil
}

func (m *mockRepository) ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error) {
	var out []Template
	for _, t := range m.templates {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockRepository) UpdateTemplate(ctx context.Context, t Template) (Template, error) {
	if _, ok := m.templates[t.ID]; !ok {
		return Template{}, ErrTemplateNotFound
	}
	m.updated = append(m.updated, t)
	m.templates[t.ID] = t
	return t, nil
}

func (m *mockRepository) DeleteTemplate(ctx context.Context, id string) error {
	if _, ok := m.templates[id]; !ok {
		return ErrTemplateNotFound
	}
	delete(m.templates, id)
	return nil
}

var _ Repository = (*mockRepository)(nil)

func TestService_Create_DefaultsActiveAndComputesFields(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	fixed := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	got, err := svc.Create(context.Background(), TemplateRequest{
		Name:           "  Delay  ",
		Content:        "טיסה {flightNumber} נדחתה ל-{newTime}",
		EnglishContent: "Flight {flightNumber} delayed to {newTime} at {departureCity}",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got.Name != "Delay" {
		t.Errorf("Expected trimmed name 'Delay', got %q", got.Name)
	}
	if !got.IsActive {
		t.Error("Expected new template to be active")
	}
	if got.ID == "" || !got.CreatedAt.Equal(fixed) {
		t.Errorf("Expected id and creation time to be set, got %+v", got)
	}
	want := []render.Field{render.FlightNumber, render.DepartureCity, render.NewTime}
	if len(got.Fields) != len(want) {
		t.Fatalf("Expected fields %v, got %v", want, got.Fields)
	}
	for i := range want {
		if got.Fields[i] != want[i] {
			t.Errorf("Expected field %d to be %s, got %s", i, want[i], got.Fields[i])
		}
	}
}

func TestService_Create_RespectsInactive(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	inactive := false

	got, err := svc.Create(context.Background(), TemplateRequest{Name: "n", Content: "c", IsActive: &inactive})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.IsActive {
		t.Error("Expected template to be inactive")
	}
}

func TestService_Create_RepositoryError(t *testing.T) {
	repo := newMockRepository()
	repo.createErr = errors.New("db down")
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), TemplateRequest{Name: "n", Content: "c"}); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestService_Update(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newMockRepository(Template{ID: "t1", Name: "Old", Content: "old", IsActive: true, CreatedAt: created})
	svc := NewService(repo)

	got, err := svc.Update(context.Background(), "t1", TemplateRequest{Name: "New", Content: "{gate}"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Name != "New" || got.Content != "{gate}" {
		t.Errorf("Expected updated fields, got %+v", got)
	}
	if !got.IsActive {
		t.Error("Expected active flag to be kept when not supplied")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("Expected created_at to be preserved, got %v", got.CreatedAt)
	}
	if len(got.Fields) != 0 {
		t.Errorf("Expected no known fields, got %v", got.Fields)
	}
}

func TestService_NotFound(t *testing.T) {
	svc := NewService(newMockRepository())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Expected ErrTemplateNotFound from Get, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", TemplateRequest{Name: "n", Content: "c"}); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Expected ErrTemplateNotFound from Update, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Expected ErrTemplateNotFound from Delete, got %v", err)
	}
}

func TestService_ListActiveOnly(t *testing.T) {
	repo := newMockRepository(
		Template{ID: "a", Name: "A", Content: "{flightNumber}", IsActive: true},
		Template{ID: "b", Name: "B", Content: "x", IsActive: false},
	)
	svc := NewService(repo)

	list, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(list) != 1 || list[0].ID != "a" {
		t.Fatalf("Expected only active template, got %+v", list)
	}
	if len(list[0].Fields) != 1 || list[0].Fields[0] != render.FlightNumber {
		t.Errorf("Expected fields to be computed on list, got %v", list[0].Fields)
	}
}
