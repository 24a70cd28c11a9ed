// Package handlers adapts HTTP requests onto the domain services. Handlers
// decode and validate input, call one service method and shape the response;
// every error goes through httpx.WriteError.
package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/api/validate"
	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/middleware"
	"github.com/baharkarakas/dormshop-backend/internal/models"
)

// caller is only meaningful behind an auth guard.
func caller(r *http.Request) models.Caller {
	u, _ := middleware.FromCtx(r.Context())
	return models.Caller{Username: u.Username, IsAdmin: u.IsAdmin}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("%s must be a positive integer", name)
	}
	return id, nil
}

func queryFloat(r *http.Request, name string) (*float64, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, apperr.BadRequest("%s must be a finite number", name)
	}
	return &f, nil
}

// decode reads a JSON body into v and validates its tags.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
