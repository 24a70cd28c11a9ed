package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

type ItemService struct {
	items repo.Items
	audit *Auditor
}

func NewItemService(i repo.Items, a *Auditor) *ItemService {
	return &ItemService{items: i, audit: a}
}

func (s *ItemService) Create(ctx context.Context, owner string, in models.NewItem) (models.Item, error) {
	it, err := s.items.Create(ctx, models.Item{
		Image:         in.Image,
		Category:      in.Category,
		Title:         in.Title,
		Price:         in.Price,
		Description:   in.Description,
		OwnerUsername: owner,
	})
	if errors.Is(err, repo.ErrInvalidReference) {
		return models.Item{}, apperr.BadRequest("no user: %s", owner)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("create item: %w", err)
	}
	s.audit.Record(owner, "item", it.ID, "created", nil)
	return it, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (models.Item, error) {
	it, err := s.items.Get(ctx, id)
	if err != nil {
		return models.Item{}, notFound(err, "get item", fmt.Sprintf("no item: %d", id))
	}
	return it, nil
}

// owned loads the item and checks username owns it.
func (s *ItemService) owned(ctx context.Context, id int64, username string) error {
	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if it.OwnerUsername != username {
		return apperr.Unauthorized("only the owner can change item %d", id)
	}
	return nil
}

func (s *ItemService) Update(ctx context.Context, id int64, username string, patch models.ItemPatch) (models.Item, error) {
	if err := s.owned(ctx, id, username); err != nil {
		return models.Item{}, err
	}
	if patch.Empty() {
		return models.Item{}, apperr.BadRequest("no update data given")
	}
	it, err := s.items.UpdateOwned(ctx, id, username, patch)
	if err != nil {
		return models.Item{}, notFound(err, "update item", fmt.Sprintf("no item: %d", id))
	}
	s.audit.Record(username, "item", id, "updated", nil)
	return it, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64, username string) error {
	if err := s.owned(ctx, id, username); err != nil {
		return err
	}
	if err := s.items.DeleteOwned(ctx, id, username); err != nil {
		return notFound(err, "delete item", fmt.Sprintf("no item: %d", id))
	}
	s.audit.Record(username, "item", id, "deleted", nil)
	return nil
}
