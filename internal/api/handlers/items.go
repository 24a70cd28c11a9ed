package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/api/validate"
	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	"github.com/baharkarakas/dormshop-backend/internal/storage"
)

type ItemService interface {
	Create(ctx context.Context, owner string, in models.NewItem) (models.Item, error)
	Get(ctx context.Context, id int64) (models.Item, error)
	Update(ctx context.Context, id int64, username string, p models.ItemPatch) (models.Item, error)
	Delete(ctx context.Context, id int64, username string) error
}

type ItemHandler struct {
	svc     ItemService
	uploads storage.Store
}

func NewItemHandler(svc ItemService, uploads storage.Store) *ItemHandler {
	return &ItemHandler{svc: svc, uploads: uploads}
}

// Create handles POST /items, JSON or multipart with an optional image file.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewItem
	if isMultipart(r) {
		if err := parseMultipart(w, r); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		price, err := strconv.ParseFloat(r.FormValue("price"), 64)
		if err != nil {
			httpx.WriteError(w, r, apperr.BadRequest("price must be a number"))
			return
		}
		in = models.NewItem{
			Image:       r.FormValue("image"),
			Category:    r.FormValue("category"),
			Title:       r.FormValue("title"),
			Price:       price,
			Description: r.FormValue("description"),
		}
		if err := validate.Struct(in); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		img, err := saveUpload(r, h.uploads, "image")
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		if img != "" {
			in.Image = img
		}
	} else if err := decode(w, r, &in); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	it, err := h.svc.Create(r.Context(), caller(r).Username, in)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"item": it})
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	it, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"item": it})
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var patch models.ItemPatch
	if err := decode(w, r, &patch); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	it, err := h.svc.Update(r.Context(), id, caller(r).Username, patch)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"item": it})
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id, caller(r).Username); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
