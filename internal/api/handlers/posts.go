package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/models"
)

type PostService interface {
	Create(ctx context.Context, poster string, in models.NewPost) (models.Post, error)
	Get(ctx context.Context, id int64) (models.Post, error)
	List(ctx context.Context, f models.PostFilter) ([]models.Post, error)
	Update(ctx context.Context, id int64, username string, p models.PostPatch) (models.Post, error)
	Delete(ctx context.Context, id int64, caller models.Caller) error
}

type PostHandler struct {
	svc PostService
}

func NewPostHandler(svc PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewPost
	if err := decode(w, r, &in); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	p, err := h.svc.Create(r.Context(), caller(r).Username, in)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"post": p})
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	minRating, err := queryFloat(r, "minRating")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	q := r.URL.Query()
	posts, err := h.svc.List(r.Context(), models.PostFilter{
		ItemName:       strings.TrimSpace(q.Get("itemName")),
		PosterUsername: strings.TrimSpace(q.Get("posterUsername")),
		MinRating:      minRating,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"post": p})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var patch models.PostPatch
	if err := decode(w, r, &patch); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	p, err := h.svc.Update(r.Context(), id, caller(r).Username, patch)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"post": p})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id, caller(r)); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
