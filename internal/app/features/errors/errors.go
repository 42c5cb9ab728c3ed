// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger logs a failed request and answers it with a JSON body
// {"error": "<user message>"}. The internal error is logged, never sent.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

type errorBody struct {
	Error string `json:"error"`
}

// Write sends status with msg as the error body.
func Write(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
}

// LogServerError logs at error level and answers 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg, e.fields(r, err)...)
	Write(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs at warn level and answers 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg, e.fields(r, err)...)
	Write(w, http.StatusBadRequest, userMsg)
}

// LogStatus logs at info level and answers with status; used for expected
// outcomes such as 404 or 413.
func (e *ErrorLogger) LogStatus(w http.ResponseWriter, r *http.Request, status int, logMsg string, err error, userMsg string) {
	e.log.Info(logMsg, e.fields(r, err)...)
	Write(w, status, userMsg)
}

// NotFound is a chi NotFound handler answering JSON.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Write(w, http.StatusNotFound, "Not found.")
}

// MethodNotAllowed is a chi MethodNotAllowed handler answering JSON.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Write(w, http.StatusMethodNotAllowed, "Method not allowed.")
}
