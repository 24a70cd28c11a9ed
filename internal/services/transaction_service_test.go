package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/metrics"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

func postedByU1() *mockPosts {
	return &mockPosts{getFunc: func(ctx context.Context, id int64) (models.Post, error) {
		if id != 3 {
			return models.Post{}, repo.ErrNotFound
		}
		return models.Post{ID: 3, PosterUsername: "u1", ItemID: 1, LocationID: 1}, nil
	}}
}

var sale = models.NewTransaction{PostID: 3, BuyerUsername: "u2", SellerUsername: "u1", Price: 25}

func TestCreateTransaction(t *testing.T) {
	txns := &mockTransactions{createFunc: func(ctx context.Context, in models.NewTransaction) (models.Transaction, error) {
		return models.Transaction{ID: 10, PostID: in.PostID, BuyerUsername: in.BuyerUsername, SellerUsername: in.SellerUsername, Price: in.Price}, nil
	}}
	svc := NewTransactionService(txns, postedByU1(), nil, metrics.New())

	tx, err := svc.Create(context.Background(), models.Caller{Username: "u2"}, sale)
	require.NoError(t, err)
	assert.Equal(t, int64(10), tx.ID)
	assert.False(t, tx.Rated)
}

func TestCreateTransaction_Rules(t *testing.T) {
	txns := &mockTransactions{createFunc: func(ctx context.Context, in models.NewTransaction) (models.Transaction, error) {
		return models.Transaction{}, repo.ErrConflict
	}}
	svc := NewTransactionService(txns, postedByU1(), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Caller{Username: "u3"}, sale)
	assertKind(t, err, apperr.KindUnauthorized)

	self := sale
	self.BuyerUsername = "u1"
	_, err = svc.Create(ctx, models.Caller{Username: "u1"}, self)
	assertKind(t, err, apperr.KindBadRequest)

	missing := sale
	missing.PostID = 4
	_, err = svc.Create(ctx, models.Caller{Username: "u2"}, missing)
	assertKind(t, err, apperr.KindNotFound)

	wrongSeller := sale
	wrongSeller.SellerUsername = "u3"
	_, err = svc.Create(ctx, models.Caller{Username: "u2"}, wrongSeller)
	assertKind(t, err, apperr.KindBadRequest)

	// already sold
	_, err = svc.Create(ctx, models.Caller{Username: "root", IsAdmin: true}, sale)
	assertKind(t, err, apperr.KindBadRequest)
}

func TestListTransactions(t *testing.T) {
	rows := []models.Transaction{
		{ID: 1, BuyerUsername: "u2", SellerUsername: "u1", Price: 10},
		{ID: 2, BuyerUsername: "u2", SellerUsername: "u1", Price: 25},
		{ID: 3, BuyerUsername: "u3", SellerUsername: "u1", Price: 25},
	}
	txns := &mockTransactions{listFunc: func(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error) {
		var out []models.Transaction
		for _, r := range rows {
			if !r.Party(username) {
				continue
			}
			if f.MinPrice != nil && r.Price < *f.MinPrice || f.MaxPrice != nil && r.Price > *f.MaxPrice {
				continue
			}
			out = append(out, r)
		}
		return out, nil
	}}
	svc := NewTransactionService(txns, nil, nil, nil)
	ctx := context.Background()

	got, err := svc.List(ctx, "u2", models.TransactionFilter{MinPrice: ptr(20.0), MaxPrice: ptr(30.0)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	_, err = svc.List(ctx, "u2", models.TransactionFilter{MinPrice: ptr(30.0), MaxPrice: ptr(20.0)})
	assertKind(t, err, apperr.KindBadRequest)

	_, err = svc.List(ctx, "u4", models.TransactionFilter{})
	assertKind(t, err, apperr.KindNotFound)
}

func TestGetTransaction_Visibility(t *testing.T) {
	txns := &mockTransactions{getFunc: func(ctx context.Context, id int64) (models.Transaction, error) {
		if id != 10 {
			return models.Transaction{}, repo.ErrNotFound
		}
		return models.Transaction{ID: 10, BuyerUsername: "u2", SellerUsername: "u1"}, nil
	}}
	svc := NewTransactionService(txns, nil, nil, nil)
	ctx := context.Background()

	for _, c := range []models.Caller{{Username: "u1"}, {Username: "u2"}, {Username: "root", IsAdmin: true}} {
		_, err := svc.Get(ctx, 10, c)
		assert.NoError(t, err, c.Username)
	}
	_, err := svc.Get(ctx, 10, models.Caller{Username: "u3"})
	assertKind(t, err, apperr.KindUnauthorized)

	_, err = svc.Get(ctx, 11, models.Caller{Username: "u1"})
	assertKind(t, err, apperr.KindNotFound)
}

// statefulTxns keeps one transaction whose rated flag the mocks flip.
func statefulTxns() *mockTransactions {
	row := models.Transaction{ID: 10, PostID: 3, BuyerUsername: "u2", SellerUsername: "u1"}
	m := &mockTransactions{}
	m.getFunc = func(ctx context.Context, id int64) (models.Transaction, error) {
		if id != row.ID {
			return models.Transaction{}, repo.ErrNotFound
		}
		return row, nil
	}
	m.markRatedFunc = func(ctx context.Context, id int64, buyer string) (models.Transaction, error) {
		if row.Rated || buyer != row.BuyerUsername {
			return models.Transaction{}, repo.ErrConflict
		}
		row.Rated = true
		return row, nil
	}
	m.rateFunc = func(ctx context.Context, id int64, buyer string, rating float64) (models.Transaction, models.UserRating, error) {
		t, err := m.markRatedFunc(ctx, id, buyer)
		if err != nil {
			return models.Transaction{}, models.UserRating{}, err
		}
		mean, n := models.FoldRating(nil, 0, rating)
		return t, models.UserRating{Username: t.SellerUsername, Rating: mean, NumRatings: n}, nil
	}
	return m
}

func TestMarkRated_OnceByBuyer(t *testing.T) {
	svc := NewTransactionService(statefulTxns(), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.MarkRated(ctx, 10, "u1")
	assertKind(t, err, apperr.KindUnauthorized)

	tx, err := svc.MarkRated(ctx, 10, "u2")
	require.NoError(t, err)
	assert.True(t, tx.Rated)

	_, err = svc.MarkRated(ctx, 10, "u2")
	assertKind(t, err, apperr.KindBadRequest)

	_, err = svc.MarkRated(ctx, 11, "u2")
	assertKind(t, err, apperr.KindNotFound)
}

func TestRate_AppliesRatingOnce(t *testing.T) {
	svc := NewTransactionService(statefulTxns(), nil, nil, metrics.New())
	ctx := context.Background()

	_, _, err := svc.Rate(ctx, 10, "u2", 7)
	assertKind(t, err, apperr.KindBadRequest)

	tx, seller, err := svc.Rate(ctx, 10, "u2", 4)
	require.NoError(t, err)
	assert.True(t, tx.Rated)
	assert.Equal(t, models.UserRating{Username: "u1", Rating: 4, NumRatings: 1}, seller)

	_, _, err = svc.Rate(ctx, 10, "u2", 4)
	assertKind(t, err, apperr.KindBadRequest)
}

func TestMarkRated_LostRace(t *testing.T) {
	txns := &mockTransactions{
		getFunc: func(ctx context.Context, id int64) (models.Transaction, error) {
			return models.Transaction{ID: id, BuyerUsername: "u2", SellerUsername: "u1"}, nil
		},
		markRatedFunc: func(ctx context.Context, id int64, buyer string) (models.Transaction, error) {
			return models.Transaction{}, repo.ErrConflict
		},
	}
	svc := NewTransactionService(txns, nil, nil, nil)

	_, err := svc.MarkRated(context.Background(), 10, "u2")
	assertKind(t, err, apperr.KindBadRequest)
}
