package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/models"
)

type TransactionService interface {
	Create(ctx context.Context, caller models.Caller, in models.NewTransaction) (models.Transaction, error)
	List(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error)
	Get(ctx context.Context, id int64, caller models.Caller) (models.Transaction, error)
	MarkRated(ctx context.Context, id int64, username string) (models.Transaction, error)
	Rate(ctx context.Context, id int64, username string, rating float64) (models.Transaction, models.UserRating, error)
}

type TransactionHandler struct {
	svc TransactionService
}

func NewTransactionHandler(svc TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.NewTransaction
	if err := decode(w, r, &in); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	t, err := h.svc.Create(r.Context(), caller(r), in)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"transaction": t})
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := transactionFilter(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	ts, err := h.svc.List(r.Context(), caller(r).Username, f)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transactions": ts})
}

func transactionFilter(r *http.Request) (models.TransactionFilter, error) {
	var f models.TransactionFilter
	var err error
	if f.MinPrice, err = queryFloat(r, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(r, "maxPrice"); err != nil {
		return f, err
	}
	q := r.URL.Query()
	f.BuyerUsername = strings.TrimSpace(q.Get("buyerUsername"))
	f.SellerUsername = strings.TrimSpace(q.Get("sellerUsername"))
	if s := strings.TrimSpace(q.Get("transactionDate")); s != "" {
		d, err := parseDate(s)
		if err != nil {
			return f, apperr.BadRequest("transactionDate must be a date like 2024-05-01")
		}
		f.TransactionDate = &d
	}
	return f, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	t, err := h.svc.Get(r.Context(), id, caller(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transaction": t})
}

type rateReq struct {
	Rating *float64 `json:"rating"`
}

// Update handles PATCH /transactions/{id}. Without a body it marks the
// transaction rated; with {"rating": r} it also rates the seller.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req rateReq
	if _, err := httpx.DecodeOptionalJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	username := caller(r).Username
	if req.Rating == nil {
		t, err := h.svc.MarkRated(r.Context(), id, username)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"transaction": t})
		return
	}

	t, seller, err := h.svc.Rate(r.Context(), id, username, *req.Rating)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"transaction": t, "user": seller})
}
