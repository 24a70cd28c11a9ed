package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/auth"
	"github.com/baharkarakas/dormshop-backend/internal/metrics"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

type UserService struct {
	users  repo.Users
	posts  repo.Posts
	txns   repo.Transactions
	hasher *auth.Hasher
	tm     *auth.TokenManager
	audit  *Auditor
	m      *metrics.Metrics
}

func NewUserService(u repo.Users, p repo.Posts, t repo.Transactions, h *auth.Hasher, tm *auth.TokenManager, a *Auditor, m *metrics.Metrics) *UserService {
	return &UserService{users: u, posts: p, txns: t, hasher: h, tm: tm, audit: a, m: m}
}

// Register creates a non-admin user and returns a token for them.
func (s *UserService) Register(ctx context.Context, in models.NewUser) (string, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, models.User{
		Username:       strings.TrimSpace(in.Username),
		PasswordHash:   hash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		ProfilePicture: in.ProfilePicture,
		IsAdmin:        false,
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return "", apperr.BadRequest("duplicate username: %s", in.Username)
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	s.audit.RecordKey(u.Username, "user", u.Username, "registered", nil)
	return s.tm.Issue(u.Username, u.IsAdmin)
}

// Authenticate checks credentials and returns a token. Unknown users and bad
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.Get(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return "", apperr.Unauthorized("invalid username/password")
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Verify(password, u.PasswordHash); err != nil {
		return "", apperr.Unauthorized("invalid username/password")
	}
	return s.tm.Issue(u.Username, u.IsAdmin)
}

func (s *UserService) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	if f.MinRating != nil && !models.ValidRating(*f.MinRating) {
		return nil, apperr.BadRequest("rating must be between %.0f and %.0f", models.MinRating, models.MaxRating)
	}
	users, err := s.users.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns username's profile with their posts; their transactions are
// included only when the caller is that user or an admin.
func (s *UserService) Get(ctx context.Context, username string, caller models.Caller) (models.Profile, error) {
	u, err := s.users.Get(ctx, username)
	if err != nil {
		return models.Profile{}, notFound(err, "get user", "no user: "+username)
	}
	p := models.Profile{User: u}
	if p.Posts, err = s.posts.ListByPoster(ctx, username); err != nil {
		return models.Profile{}, fmt.Errorf("list posts: %w", err)
	}
	if caller.Can(username) {
		if p.Transactions, err = s.txns.ListForUser(ctx, username); err != nil {
			return models.Profile{}, fmt.Errorf("list transactions: %w", err)
		}
	}
	return p, nil
}

func (s *UserService) Update(ctx context.Context, username string, patch models.UserPatch) (models.User, error) {
	if patch.Empty() {
		return models.User{}, apperr.BadRequest("no update data given")
	}
	u, err := s.users.Update(ctx, username, patch)
	if err != nil {
		return models.User{}, notFound(err, "update user", "no user: "+username)
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, username string, caller models.Caller) error {
	if err := s.users.Delete(ctx, username); err != nil {
		return notFound(err, "delete user", "no user: "+username)
	}
	s.audit.RecordKey(caller.Username, "user", username, "deleted", nil)
	return nil
}

// AddRating lets buyer rate seller. Non-admins must hold an unrated purchase
// from seller; the oldest one is marked rated together with the rating.
// Admins fold the rating in directly.
func (s *UserService) AddRating(ctx context.Context, buyer, seller string, rating float64, caller models.Caller) (models.UserRating, error) {
	if !models.ValidRating(rating) {
		return models.UserRating{}, apperr.BadRequest("rating must be between %.0f and %.0f", models.MinRating, models.MaxRating)
	}
	if buyer == seller {
		return models.UserRating{}, apperr.BadRequest("you cannot rate yourself")
	}

	var (
		r   models.UserRating
		err error
	)
	if caller.IsAdmin {
		r, err = s.users.AddRating(ctx, seller, rating)
		if err != nil {
			return models.UserRating{}, notFound(err, "add rating", "no user: "+seller)
		}
	} else if r, err = s.rateOldestPurchase(ctx, buyer, seller, rating); err != nil {
		return models.UserRating{}, err
	}

	if s.m != nil {
		s.m.RatingsApplied.Inc()
	}
	s.audit.RecordKey(caller.Username, "user", seller, "rated", map[string]any{"rating": rating, "buyer": buyer})
	return r, nil
}

func (s *UserService) rateOldestPurchase(ctx context.Context, buyer, seller string, rating float64) (models.UserRating, error) {
	ts, err := s.txns.List(ctx, buyer, models.TransactionFilter{BuyerUsername: buyer, SellerUsername: seller})
	if err != nil {
		return models.UserRating{}, fmt.Errorf("list purchases: %w", err)
	}
	for _, t := range ts {
		if t.Rated {
			continue
		}
		_, r, err := s.txns.Rate(ctx, t.ID, buyer, rating)
		switch {
		case errors.Is(err, repo.ErrConflict):
			return models.UserRating{}, apperr.BadRequest("transaction %d has already been rated", t.ID)
		case err != nil:
			return models.UserRating{}, notFound(err, "rate purchase", "no user: "+seller)
		}
		return r, nil
	}
	return models.UserRating{}, apperr.BadRequest("%s has no unrated purchase from %s", buyer, seller)
}
