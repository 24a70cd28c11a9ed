package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/dormshop-backend/internal/models"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

// memStore is an in-memory stand-in for the repositories the transaction and
// location scenarios touch.
type memStore struct {
	mu        sync.Mutex
	posts     map[int64]models.Post
	sold      map[int64]bool
	txns      map[int64]models.Transaction
	locations map[int64]models.Location
	ratings   map[string]models.UserRating
	nextID    int64
	inserts   int
}

func newMemStore() *memStore {
	return &memStore{
		posts:     map[int64]models.Post{},
		sold:      map[int64]bool{},
		txns:      map[int64]models.Transaction{},
		locations: map[int64]models.Location{},
		ratings:   map[string]models.UserRating{},
	}
}

type memTxns struct{ *memStore }
type memPosts struct{ *memStore }
type memLocations struct{ *memStore }

func (s memTxns) Create(ctx context.Context, in models.NewTransaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[in.PostID]
	if !ok {
		return models.Transaction{}, repo.ErrNotFound
	}
	if s.sold[p.ItemID] {
		return models.Transaction{}, repo.ErrConflict
	}
	s.sold[p.ItemID] = true
	s.nextID++
	t := models.Transaction{ID: s.nextID, PostID: in.PostID, BuyerUsername: in.BuyerUsername,
		SellerUsername: in.SellerUsername, Price: in.Price, TransactionDate: time.Now()}
	s.txns[t.ID] = t
	return t, nil
}

func (s memTxns) Get(ctx context.Context, id int64) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok {
		return models.Transaction{}, repo.ErrNotFound
	}
	return t, nil
}

func (s memTxns) List(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, t := range s.txns {
		if t.Party(username) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s memTxns) ListForUser(ctx context.Context, username string) ([]models.Transaction, error) {
	return s.List(ctx, username, models.TransactionFilter{})
}

func (s memTxns) MarkRated(ctx context.Context, id int64, buyer string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok || t.Rated || t.BuyerUsername != buyer {
		return models.Transaction{}, repo.ErrConflict
	}
	t.Rated = true
	s.txns[id] = t
	return t, nil
}

func (s memTxns) Rate(ctx context.Context, id int64, buyer string, rating float64) (models.Transaction, models.UserRating, error) {
	t, err := s.MarkRated(ctx, id, buyer)
	if err != nil {
		return models.Transaction{}, models.UserRating{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.ratings[t.SellerUsername]
	var mean *float64
	if cur.NumRatings > 0 {
		mean = &cur.Rating
	}
	next, n := models.FoldRating(mean, cur.NumRatings, rating)
	ur := models.UserRating{Username: t.SellerUsername, Rating: next, NumRatings: n}
	s.ratings[t.SellerUsername] = ur
	return t, ur, nil
}

func (s memPosts) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	return false, nil
}

func (s memPosts) Create(ctx context.Context, poster string, itemID, locationID int64) (models.Post, error) {
	return models.Post{}, repo.ErrNotFound
}

func (s memPosts) Get(ctx context.Context, id int64) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, repo.ErrNotFound
	}
	return p, nil
}

func (s memPosts) List(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	return nil, nil
}

func (s memPosts) ListByPoster(ctx context.Context, poster string) ([]models.Post, error) {
	return nil, nil
}

func (s memPosts) UpdateLocation(ctx context.Context, id int64, poster string, locationID int64) (models.Post, error) {
	return models.Post{}, repo.ErrNotFound
}

func (s memPosts) Delete(ctx context.Context, id int64, poster string) error {
	return repo.ErrNotFound
}

func (s memLocations) Create(ctx context.Context, l models.Location) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	s.nextID++
	l.ID = s.nextID
	s.locations[l.ID] = l
	return l, nil
}

func (s memLocations) Get(ctx context.Context, id int64) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locations[id]
	if !ok {
		return models.Location{}, repo.ErrNotFound
	}
	return l, nil
}

func (s memLocations) List(ctx context.Context, f models.LocationFilter) ([]models.Location, error) {
	return nil, nil
}

func (s memLocations) Delete(ctx context.Context, id int64) error {
	return repo.ErrNotFound
}
