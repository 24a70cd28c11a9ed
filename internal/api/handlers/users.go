package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/models"
)

type UserService interface {
	List(ctx context.Context, f models.UserFilter) ([]models.User, error)
	Get(ctx context.Context, username string, caller models.Caller) (models.Profile, error)
	Update(ctx context.Context, username string, p models.UserPatch) (models.User, error)
	Delete(ctx context.Context, username string, caller models.Caller) error
	AddRating(ctx context.Context, buyer, seller string, rating float64, caller models.Caller) (models.UserRating, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	rating, err := queryFloat(r, "rating")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	users, err := h.svc.List(r.Context(), models.UserFilter{
		Username:  strings.TrimSpace(r.URL.Query().Get("username")),
		MinRating: rating,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "username"), caller(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": p})
}

// Update handles PATCH /users/{username}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, chi.URLParam(r, "username"))
}

// UpdateSelf handles PATCH /users, which edits the caller's own profile.
func (h *UserHandler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, caller(r).Username)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request, username string) {
	var patch models.UserPatch
	if err := decode(w, r, &patch); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	u, err := h.svc.Update(r.Context(), username, patch)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.svc.Delete(r.Context(), username, caller(r)); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": username})
}

type ratingReq struct {
	Rating *float64 `json:"rating" validate:"required"`
}

// Rate handles PATCH /users/{username}/rating/{seller}: {username} rates a
// seller they bought from.
func (h *UserHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req ratingReq
	if err := decode(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	ur, err := h.svc.AddRating(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "seller"), *req.Rating, caller(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": ur})
}
