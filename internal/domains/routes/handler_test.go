package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/routes", NewHandler(NewService(repo), 1<<20).RegisterRouteRoutes)
	return r
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	_, _ = fw.Write([]byte(content))
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandler_ImportRoutes(t *testing.T) {
	repo := newMockRepository()
	router := newTestRouter(repo)

	body, contentType := multipartUpload(t, "routes.csv", "1,TLV,,,JFK,,,\n")
	req := httptest.NewRequest(http.MethodPost, "/routes/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result ImportResult
	_ = json.NewDecoder(rec.Body).Decode(&result)
	if result.Imported != 1 {
		t.Errorf("Expected 1 imported, got %d", result.Imported)
	}
}

func TestHandler_ImportRoutes_InvalidFile(t *testing.T) {
	router := newTestRouter(newMockRepository())

	body, contentType := multipartUpload(t, "routes.csv", "x,TLV,,,JFK,,,\n1,TLV,,,JFK,,,\n")
	req := httptest.NewRequest(http.MethodPost, "/routes/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// "x" in the first row reads as a header, so the file is still valid.
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	body, contentType = multipartUpload(t, "routes.csv", "1,TLV,,,JFK,,,\nx,TLV,,,JFK,,,\n")
	req = httptest.NewRequest(http.MethodPost, "/routes/import", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "row 2") {
		t.Errorf("Expected row number in error, got %s", rec.Body.String())
	}
}

func TestHandler_ImportRoutes_MissingFile(t *testing.T) {
	router := newTestRouter(newMockRepository())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/routes/import", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestHandler_LookupRoute(t *testing.T) {
	repo := newMockRepository(FlightRoute{ID: "r1", FlightNumber: "1", DepartureCity: "TLV", ArrivalCity: "JFK"})
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/routes/lookup/LY001", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/routes/lookup/LY999", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestHandler_CreateRoute_Validation(t *testing.T) {
	router := newTestRouter(newMockRepository())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/routes/", strings.NewReader(`{"flightNumber":"LY1","departureCity":"TLV","arrivalCity":"JFK","airline":"Arkia"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
