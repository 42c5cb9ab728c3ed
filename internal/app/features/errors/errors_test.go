package errors_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/kemahasiswaan/internal/app/features/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestLogServerError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	errLog := uierrors.NewErrorLogger(zap.New(core))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/structures/bem/2025-2026", nil)
	errLog.LogServerError(rec, req, "save structure failed", fmt.Errorf("connection reset"), "A database error occurred.")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if got := decode(t, rec); got != "A database error occurred." {
		t.Errorf("error: got %q", got)
	}

	entries := logs.FilterMessage("save structure failed").All()
	if len(entries) != 1 {
		t.Fatalf("log entries: got %d, want 1", len(entries))
	}
	if entries[0].Level != zap.ErrorLevel {
		t.Errorf("level: got %v, want error", entries[0].Level)
	}
	if got := entries[0].ContextMap()["path"]; got != "/structures/bem/2025-2026" {
		t.Errorf("path field: got %v", got)
	}
}

func TestLogBadRequestAndStatus(t *testing.T) {
	errLog := uierrors.NewErrorLogger(zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	errLog.LogBadRequest(rec, req, "bad form", nil, "Invalid form data.")
	if rec.Code != http.StatusBadRequest || decode(t, rec) != "Invalid form data." {
		t.Errorf("LogBadRequest: got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	errLog.LogStatus(rec, req, http.StatusNotFound, "missing", nil, "Structure not found.")
	if rec.Code != http.StatusNotFound || decode(t, rec) != "Structure not found." {
		t.Errorf("LogStatus: got %d %q", rec.Code, rec.Body.String())
	}
}
