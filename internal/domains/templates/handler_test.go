package templates

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sangkips/flight-notify-service/internal/handlers"
)

func newTestRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/templates", NewHandler(NewService(repo)).RegisterTemplateRoutes)
	return r
}

func TestHandler_CreateTemplate(t *testing.T) {
	router := newTestRouter(newMockRepository())

	body := `{"name":"Gate change","content":"שער {gate}","englishContent":"Flight {flightNumber}"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/templates/", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Template
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Name != "Gate change" || len(got.Fields) != 1 {
		t.Errorf("Unexpected template: %+v", got)
	}
}

func TestHandler_CreateTemplate_Validation(t *testing.T) {
	router := newTestRouter(newMockRepository())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/templates/", strings.NewReader(`{"name":"","content":""}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	var body handlers.ErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if len(body.Error.Fields) != 2 {
		t.Errorf("Expected 2 field errors, got %+v", body.Error.Fields)
	}
}

func TestHandler_GetTemplate_NotFound(t *testing.T) {
	router := newTestRouter(newMockRepository())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
	var body handlers.ErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body.Error.Code != "TEMPLATE_NOT_FOUND" {
		t.Errorf("Expected TEMPLATE_NOT_FOUND, got %s", body.Error.Code)
	}
}

func TestHandler_DeleteTemplate(t *testing.T) {
	repo := newMockRepository(Template{ID: "t1", Name: "n", Content: "c"})
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/templates/t1", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}
	if _, ok := repo.templates["t1"]; ok {
		t.Error("Expected template to be deleted")
	}
}

func TestHandler_ListTemplates(t *testing.T) {
	repo := newMockRepository(
		Template{ID: "a", Name: "A", Content: "c", IsActive: true},
		Template{ID: "b", Name: "B", Content: "c", IsActive: false},
	)
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates/?active=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var body struct {
		Data []Template `json:"data"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if len(body.Data) != 1 {
		t.Errorf("Expected 1 active template, got %d", len(body.Data))
	}
}
