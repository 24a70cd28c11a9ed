package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
)

const maxBodyBytes = 1 << 20

type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type APIError struct {
	Error ErrorBody `json:"error"`
}

type reqIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(reqIDKey{}).(string)
	return s
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError is the single place where errors become responses. Errors
// without a kind are reported as 500 and logged.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.KindOf(err).Status()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"err", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()),
		)
	}
	WriteJSON(w, status, APIError{Error: ErrorBody{Message: apperr.Message(err), Status: status}})
}

// DecodeJSON reads a JSON body into v. A missing or malformed body is a bad
// request.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	ok, err := DecodeOptionalJSON(w, r, v)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.BadRequest("request body is required")
	}
	return nil
}

// DecodeOptionalJSON is DecodeJSON for endpoints where the body may be
// omitted; it reports whether one was present.
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) (bool, error) {
	if r.Body == nil {
		return false, nil
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, apperr.BadRequest("invalid JSON body")
	}
	return true, nil
}
