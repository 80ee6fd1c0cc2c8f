package validator

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

func TestCustomValidator_ValidateReturnsValidationError(t *testing.T) {
	cv := New()

	err := cv.Validate(sampleRequest{})
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	if _, exists := ve.Errors["name"]; !exists {
		t.Errorf("expected 'name' to be in validation errors")
	}
	if _, exists := ve.Errors["phoneNumber"]; !exists {
		t.Errorf("expected 'phoneNumber' to be in validation errors")
	}

	want := "name: name is a required field; phoneNumber: phoneNumber is a required field"
	if ve.Error() != want {
		t.Errorf("expected %q, got %q", want, ve.Error())
	}
}

func TestCustomValidator_ValidPasses(t *testing.T) {
	if err := New().Validate(sampleRequest{Name: "Alice", PhoneNumber: "+15550001"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHandleValidationError_Returns400WithDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	c := e.NewContext(req, rec)

	err := New().Validate(sampleRequest{Name: "Alice"})
	if err == nil {
		t.Fatalf("expected validation error, got nil")
	}

	if err := HandleValidationError(c, err, "Name and phone number are required"); err != nil {
		t.Fatalf("HandleValidationError returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body.Status != "Error" {
		t.Errorf("expected status 'Error', got %q", body.Status)
	}
	if body.Error != "Name and phone number are required" {
		t.Errorf("unexpected error %q", body.Error)
	}
	if _, ok := body.Details["phoneNumber"]; !ok || len(body.Details) != 1 {
		t.Errorf("expected only phoneNumber in details, got %v", body.Details)
	}
}

func TestHandleValidationError_PlainErrorKeepsMessage(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/test", nil), rec)

	if err := HandleValidationError(c, errors.New("boom"), ""); err != nil {
		t.Fatalf("HandleValidationError returned error: %v", err)
	}

	var body ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if rec.Code != http.StatusBadRequest || body.Error != "boom" || body.Details != nil {
		t.Errorf("unexpected response %d %+v", rec.Code, body)
	}
}
