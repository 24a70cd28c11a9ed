package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/api/validate"
	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	"github.com/baharkarakas/dormshop-backend/internal/storage"
)

type AuthService interface {
	Register(ctx context.Context, in models.NewUser) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type AuthHandler struct {
	svc     AuthService
	uploads storage.Store
}

func NewAuthHandler(svc AuthService, uploads storage.Store) *AuthHandler {
	return &AuthHandler{svc: svc, uploads: uploads}
}

type tokenReq struct {
	Username string `json:"username" validate:"required,min=1,max=25"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenReq
	if err := decode(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	tok, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{Token: tok})
}

// Register handles POST /auth/register. The body is JSON, or a multipart
// form whose optional profilePicture file is stored as an upload.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		in = models.NewUser{
			Username:    r.FormValue("username"),
			Password:    r.FormValue("password"),
			FirstName:   r.FormValue("firstName"),
			LastName:    r.FormValue("lastName"),
			Email:       r.FormValue("email"),
			PhoneNumber: r.FormValue("phoneNumber"),
		}
		if err := validate.Struct(in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		pic, err := saveUpload(r, h.uploads, "profilePicture")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if pic != "" {
			in.ProfilePicture = &pic
		}
	} else if err := decode(w, r, &in); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	tok, err := h.svc.Register(r.Context(), in)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tokenResp{Token: tok})
}

func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(storage.MaxUploadBytes); err != nil {
		return apperr.BadRequest("invalid multipart form")
	}
	return nil
}

// saveUpload stores the file sent under field, if any, and returns its path
// or URL.
func saveUpload(r *http.Request, store storage.Store, field string) (string, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperr.BadRequest("invalid %s upload", field)
	}
	defer f.Close()

	path, err := store.Save(r.Context(), field, hdr.Filename, f)
	if errors.Is(err, storage.ErrNotImage) {
		return "", apperr.BadRequest("%s must be an image", field)
	}
	return path, err
}
