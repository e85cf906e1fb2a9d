package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusNotFound, "NOT_FOUND", "template not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Error.Code != "NOT_FOUND" || body.Error.Message != "template not found" {
		t.Errorf("Unexpected error body: %+v", body.Error)
	}
}

func TestDecodeJSON_Valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Dana","email":"dana@example.com"}`))

	var req sampleRequest
	if err := DecodeJSON(r, &req); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if req.Name != "Dana" {
		t.Errorf("Expected name Dana, got %s", req.Name)
	}
}

func TestDecodeJSON_ReportsJSONFieldNames(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  ","email":"nope"}`))

	var req sampleRequest
	err := DecodeJSON(r, &req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("Expected 2 field errors, got %d", len(verr.Fields))
	}
	if verr.Fields[0].Field != "name" || verr.Fields[1].Field != "email" {
		t.Errorf("Unexpected fields: %+v", verr.Fields)
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	var req sampleRequest
	err := DecodeJSON(r, &req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestRespondWithValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithValidationError(rec, NewValidationError(errors.New("bad"), FieldError{Field: "phone", Error: "this field is required"}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	var body ErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body.Error.Code != "VALIDATION_FAILED" || len(body.Error.Fields) != 1 {
		t.Errorf("Unexpected body: %+v", body.Error)
	}

	rec = httptest.NewRecorder()
	RespondWithValidationError(rec, errors.New("plain"))
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body.Error.Code != "INVALID_REQUEST" {
		t.Errorf("Expected INVALID_REQUEST, got %s", body.Error.Code)
	}
}
