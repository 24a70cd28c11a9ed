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

type PostService struct {
	posts     repo.Posts
	items     repo.Items
	locations repo.Locations
	audit     *Auditor
	m         *metrics.Metrics
}

func NewPostService(p repo.Posts, i repo.Items, l repo.Locations, a *Auditor, m *metrics.Metrics) *PostService {
	return &PostService{posts: p, items: i, locations: l, audit: a, m: m}
}

// Create advertises one of poster's items at a pickup location. An item can
// be posted once.
func (s *PostService) Create(ctx context.Context, poster string, in models.NewPost) (models.Post, error) {
	exists, err := s.posts.ExistsForItem(ctx, in.ItemID)
	if err != nil {
		return models.Post{}, fmt.Errorf("check post: %w", err)
	}
	if exists {
		return models.Post{}, apperr.BadRequest("item %d already has a post", in.ItemID)
	}

	it, err := s.items.Get(ctx, in.ItemID)
	if err != nil {
		return models.Post{}, notFound(err, "get item", fmt.Sprintf("no item: %d", in.ItemID))
	}
	if it.OwnerUsername != poster {
		return models.Post{}, apperr.Unauthorized("you can only post your own items")
	}
	if err := s.locationExists(ctx, in.LocationID); err != nil {
		return models.Post{}, err
	}

	p, err := s.posts.Create(ctx, poster, in.ItemID, in.LocationID)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		// lost the race against a concurrent post for the same item
		return models.Post{}, apperr.BadRequest("item %d already has a post", in.ItemID)
	case errors.Is(err, repo.ErrInvalidReference):
		return models.Post{}, apperr.BadRequest("no location: %d", in.LocationID)
	case err != nil:
		return models.Post{}, notFound(err, "create post", fmt.Sprintf("no item: %d", in.ItemID))
	}
	if s.m != nil {
		s.m.PostsCreated.Inc()
	}
	s.audit.Record(poster, "post", p.ID, "created", map[string]any{"itemId": p.ItemID, "locationId": p.LocationID})
	return p, nil
}

func (s *PostService) locationExists(ctx context.Context, id int64) error {
	_, err := s.locations.Get(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.BadRequest("no location: %d", id)
	}
	if err != nil {
		return fmt.Errorf("get location: %w", err)
	}
	return nil
}

func (s *PostService) Get(ctx context.Context, id int64) (models.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return models.Post{}, notFound(err, "get post", fmt.Sprintf("no post: %d", id))
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	if f.MinRating != nil && !models.ValidRating(*f.MinRating) {
		return nil, apperr.BadRequest("minRating must be between %.0f and %.0f", models.MinRating, models.MaxRating)
	}
	posts, err := s.posts.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update moves the post to another location. Only the poster may do so.
func (s *PostService) Update(ctx context.Context, id int64, username string, patch models.PostPatch) (models.Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if p.PosterUsername != username {
		return models.Post{}, apperr.Unauthorized("only the poster can change post %d", id)
	}
	if patch.LocationID == nil {
		return models.Post{}, apperr.BadRequest("no update data given")
	}
	if err := s.locationExists(ctx, *patch.LocationID); err != nil {
		return models.Post{}, err
	}

	p, err = s.posts.UpdateLocation(ctx, id, username, *patch.LocationID)
	if errors.Is(err, repo.ErrInvalidReference) {
		return models.Post{}, apperr.BadRequest("no location: %d", *patch.LocationID)
	}
	if err != nil {
		return models.Post{}, notFound(err, "update post", fmt.Sprintf("no post: %d", id))
	}
	s.audit.Record(username, "post", id, "moved", map[string]any{"locationId": p.LocationID})
	return p, nil
}

// Delete removes a post on behalf of its poster or an admin.
func (s *PostService) Delete(ctx context.Context, id int64, caller models.Caller) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !caller.Can(p.PosterUsername) {
		return apperr.Unauthorized("only the poster or an admin can delete post %d", id)
	}

	poster := p.PosterUsername
	if caller.IsAdmin {
		poster = ""
	}
	if err := s.posts.Delete(ctx, id, poster); err != nil {
		return notFound(err, "delete post", fmt.Sprintf("no post: %d", id))
	}
	s.audit.Record(caller.Username, "post", id, "deleted", nil)
	return nil
}
