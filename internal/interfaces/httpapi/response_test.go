package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/domain/entry"
	"github.com/mbrandall/survivor-pool/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestMapError_Taxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
		wantReason string
	}{
		{"invalid input", fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput"},
		{"quota", fmt.Errorf("%w: a@b.c", entry.ErrQuotaExceeded), http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", "quotaExceeded"},
		{"closed", usecase.ErrSubmissionsClosed, http.StatusConflict, "FAILED_PRECONDITION", "submissionsClosed"},
		{"config incomplete", fmt.Errorf("%w: no teams", catalog.ErrConfigIncomplete), http.StatusConflict, "FAILED_PRECONDITION", "configIncomplete"},
		{"player not found", fmt.Errorf("%w: QB_KC_X", usecase.ErrPlayerNotFound), http.StatusBadRequest, "INVALID_ARGUMENT", "playerNotFound"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized"},
		{"not found", fmt.Errorf("%w: entry x", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND", "notFound"},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "INTERNAL", "internalError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}

			var body map[string]any
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			errorObj, ok := body["error"].(map[string]any)
			if !ok {
				t.Fatalf("expected error object in response")
			}
			if got, _ := errorObj["status"].(string); got != tc.wantStatus {
				t.Fatalf("expected status %s, got %v", tc.wantStatus, errorObj["status"])
			}
			items, _ := errorObj["errors"].([]any)
			if len(items) != 1 {
				t.Fatalf("expected 1 error item, got %d", len(items))
			}
			item, _ := items[0].(map[string]any)
			if got, _ := item["reason"].(string); got != tc.wantReason {
				t.Fatalf("expected reason %s, got %v", tc.wantReason, item["reason"])
			}
		})
	}
}
