package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/models"
)

type LocationService interface {
	Create(ctx context.Context, caller string, in models.NewLocation) (models.Location, error)
	CreateGeocoded(ctx context.Context, caller string, addr models.Address) (models.Location, error)
	Get(ctx context.Context, id int64) (models.Location, error)
	List(ctx context.Context, f models.LocationFilter) ([]models.Location, error)
	Delete(ctx context.Context, id int64, caller string) error
	StaticMap(ctx context.Context, id int64, size string) ([]byte, error)
}

type LocationHandler struct {
	svc LocationService
}

func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewLocation
	if err := decode(w, r, &in); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	l, err := h.svc.Create(r.Context(), caller(r).Username, in)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"location": l})
}

// Geocode handles POST /locations/geocode: an address without coordinates.
func (h *LocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if err := decode(w, r, &addr); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	l, err := h.svc.CreateGeocoded(r.Context(), caller(r).Username, addr)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"location": l})
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ls, err := h.svc.List(r.Context(), models.LocationFilter{
		Street: strings.TrimSpace(q.Get("street")),
		City:   strings.TrimSpace(q.Get("city")),
		State:  strings.TrimSpace(q.Get("state")),
		Zip:    strings.TrimSpace(q.Get("zip")),
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"locations": ls})
}

func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"location": l})
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Map handles GET /locations/{id}/map and answers with a PNG.
func (h *LocationHandler) Map(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	img, err := h.svc.StaticMap(r.Context(), id, r.URL.Query().Get("size"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
