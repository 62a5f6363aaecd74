package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"spotmatch_server/apperrors"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid argument", apperrors.InvalidArg("venue name is required"), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"too far", apperrors.TooFar(512.3, "too far from venue"), http.StatusBadRequest, "TOO_FAR"},
		{"unauthenticated", apperrors.Unauthorized("missing credentials"), http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"not found", apperrors.NotFound("no active check-in"), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var body map[string]interface{}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != tc.wantCode {
				t.Errorf("expected error code %q, got %v", tc.wantCode, body["error"])
			}
		})
	}
}

func TestWriteErrorTooFarIncludesDistance(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperrors.TooFar(512.3, "too far from venue"))

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	distance, ok := body["distance"].(float64)
	if !ok {
		t.Fatal("expected numeric distance in body")
	}
	if distance != 512.3 {
		t.Errorf("expected distance 512.3, got %v", distance)
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	for _, err := range []error{
		errors.New("dynamodb: connection reset"),
		apperrors.Wrap(apperrors.CodeInternal, "failed to update venue", errors.New("throttled")),
	} {
		rec := httptest.NewRecorder()
		WriteError(rec, err)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["error"] != "Something went wrong" {
			t.Errorf("internal details must not leak, got %q", body["error"])
		}
	}
}
