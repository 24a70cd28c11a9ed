package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/apperr"
)

type UploadResolver interface {
	Resolve(name string) (path string, ok bool)
}

type UploadHandler struct {
	files UploadResolver
}

func NewUploadHandler(files UploadResolver) *UploadHandler {
	return &UploadHandler{files: files}
}

// Serve handles GET /uploads/{filename}; missing files get the default image.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	path, ok := h.files.Resolve(chi.URLParam(r, "filename"))
	if !ok {
		httpx.WriteError(w, r, apperr.NotFound("no such upload"))
		return
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, path)
}
