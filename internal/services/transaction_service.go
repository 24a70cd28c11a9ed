package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/metrics"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

type TransactionService struct {
	trx   repo.Transactions
	posts repo.Posts
	audit *Auditor
	m     *metrics.Metrics
}

func NewTransactionService(t repo.Transactions, p repo.Posts, a *Auditor, m *metrics.Metrics) *TransactionService {
	return &TransactionService{trx: t, posts: p, audit: a, m: m}
}

func (s *TransactionService) failed(reason string) {
	if s.m != nil {
		s.m.TransactionsFailed.WithLabelValues(reason).Inc()
	}
}

// Create records a sale of the posted item and marks the item sold.
func (s *TransactionService) Create(ctx context.Context, caller models.Caller, in models.NewTransaction) (models.Transaction, error) {
	if !caller.Can(in.BuyerUsername) {
		s.failed("unauthorized")
		return models.Transaction{}, apperr.Unauthorized("only the buyer can record a purchase")
	}
	if in.BuyerUsername == in.SellerUsername {
		s.failed("self_sale")
		return models.Transaction{}, apperr.BadRequest("buyer and seller must differ")
	}
	p, err := s.posts.Get(ctx, in.PostID)
	if err != nil {
		return models.Transaction{}, notFound(err, "get post", fmt.Sprintf("no post: %d", in.PostID))
	}
	if p.PosterUsername != in.SellerUsername {
		s.failed("wrong_seller")
		return models.Transaction{}, apperr.BadRequest("seller %s did not post %d", in.SellerUsername, in.PostID)
	}

	t, err := s.trx.Create(ctx, in)
	switch {
	case errors.Is(err, repo.ErrConflict):
		s.failed("sold")
		return models.Transaction{}, apperr.BadRequest("item for post %d is already sold", in.PostID)
	case errors.Is(err, repo.ErrInvalidReference):
		s.failed("bad_reference")
		return models.Transaction{}, apperr.BadRequest("no user: %s", in.BuyerUsername)
	case err != nil:
		return models.Transaction{}, notFound(err, "create transaction", fmt.Sprintf("no post: %d", in.PostID))
	}
	if s.m != nil {
		s.m.TransactionsCreated.Inc()
	}
	s.audit.Record(caller.Username, "transaction", t.ID, "created", map[string]any{
		"postId": t.PostID,
		"buyer":  t.BuyerUsername,
		"seller": t.SellerUsername,
		"price":  t.Price,
	})
	return t, nil
}

// List returns the transactions username took part in. An empty result is a
// NotFound.
func (s *TransactionService) List(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, apperr.BadRequest("minPrice cannot be greater than maxPrice")
	}
	ts, err := s.trx.List(ctx, username, f)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if len(ts) == 0 {
		return nil, apperr.NotFound("no transactions found")
	}
	return ts, nil
}

// Get is visible to the buyer, the seller and admins.
func (s *TransactionService) Get(ctx context.Context, id int64, caller models.Caller) (models.Transaction, error) {
	t, err := s.trx.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, notFound(err, "get transaction", fmt.Sprintf("no transaction: %d", id))
	}
	if !caller.IsAdmin && !t.Party(caller.Username) {
		return models.Transaction{}, apperr.Unauthorized("you are not part of transaction %d", id)
	}
	return t, nil
}

// checkRatable applies the rules shared by MarkRated and Rate.
func (s *TransactionService) checkRatable(ctx context.Context, id int64, username string) error {
	t, err := s.trx.Get(ctx, id)
	if err != nil {
		return notFound(err, "get transaction", fmt.Sprintf("no transaction: %d", id))
	}
	if t.Rated {
		return apperr.BadRequest("transaction %d has already been rated", id)
	}
	if t.BuyerUsername != username {
		return apperr.Unauthorized("only the buyer can rate transaction %d", id)
	}
	return nil
}

// MarkRated flips rated once, for the buyer only.
func (s *TransactionService) MarkRated(ctx context.Context, id int64, username string) (models.Transaction, error) {
	if err := s.checkRatable(ctx, id, username); err != nil {
		return models.Transaction{}, err
	}
	t, err := s.trx.MarkRated(ctx, id, username)
	if errors.Is(err, repo.ErrConflict) {
		return models.Transaction{}, apperr.BadRequest("transaction %d has already been rated", id)
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("mark rated: %w", err)
	}
	s.audit.Record(username, "transaction", id, "rated", nil)
	return t, nil
}

// Rate marks the transaction rated and applies rating to the seller in one
// step.
func (s *TransactionService) Rate(ctx context.Context, id int64, username string, rating float64) (models.Transaction, models.UserRating, error) {
	if !models.ValidRating(rating) {
		return models.Transaction{}, models.UserRating{}, apperr.BadRequest("rating must be between %.0f and %.0f", models.MinRating, models.MaxRating)
	}
	if err := s.checkRatable(ctx, id, username); err != nil {
		return models.Transaction{}, models.UserRating{}, err
	}
	t, seller, err := s.trx.Rate(ctx, id, username, rating)
	switch {
	case errors.Is(err, repo.ErrConflict):
		return models.Transaction{}, models.UserRating{}, apperr.BadRequest("transaction %d has already been rated", id)
	case err != nil:
		return models.Transaction{}, models.UserRating{}, notFound(err, "rate transaction", "seller no longer exists")
	}
	if s.m != nil {
		s.m.RatingsApplied.Inc()
	}
	s.audit.Record(username, "transaction", id, "rated", map[string]any{"rating": rating, "seller": seller.Username})
	return t, seller, nil
}
