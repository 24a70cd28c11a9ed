package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/baharkarakas/dormshop-backend/internal/models"
)

var errNotImplemented = errors.New("not implemented")

type mockAuthService struct {
	registerFunc     func(ctx context.Context, in models.NewUser) (string, error)
	authenticateFunc func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, in models.NewUser) (string, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, in)
	}
	return "", errNotImplemented
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if m.authenticateFunc != nil {
		return m.authenticateFunc(ctx, username, password)
	}
	return "", errNotImplemented
}

type mockItemService struct {
	createFunc func(ctx context.Context, owner string, in models.NewItem) (models.Item, error)
	getFunc    func(ctx context.Context, id int64) (models.Item, error)
	updateFunc func(ctx context.Context, id int64, username string, p models.ItemPatch) (models.Item, error)
	deleteFunc func(ctx context.Context, id int64, username string) error
}

func (m *mockItemService) Create(ctx context.Context, owner string, in models.NewItem) (models.Item, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, owner, in)
	}
	return models.Item{}, errNotImplemented
}

func (m *mockItemService) Get(ctx context.Context, id int64) (models.Item, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return models.Item{}, errNotImplemented
}

func (m *mockItemService) Update(ctx context.Context, id int64, username string, p models.ItemPatch) (models.Item, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, username, p)
	}
	return models.Item{}, errNotImplemented
}

func (m *mockItemService) Delete(ctx context.Context, id int64, username string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, username)
	}
	return errNotImplemented
}

type mockStore struct {
	saveFunc func(ctx context.Context, field, filename string, r io.Reader) (string, error)
}

func (m *mockStore) Save(ctx context.Context, field, filename string, r io.Reader) (string, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, field, filename, r)
	}
	return "", errNotImplemented
}

type mockResolver struct {
	resolveFunc func(name string) (string, bool)
}

func (m *mockResolver) Resolve(name string) (string, bool) {
	if m.resolveFunc != nil {
		return m.resolveFunc(name)
	}
	return "", false
}

type mockUserService struct {
	addRatingFunc func(ctx context.Context, buyer, seller string, rating float64, caller models.Caller) (models.UserRating, error)
}

func (m *mockUserService) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	return nil, errNotImplemented
}

func (m *mockUserService) Get(ctx context.Context, username string, caller models.Caller) (models.Profile, error) {
	return models.Profile{}, errNotImplemented
}

func (m *mockUserService) Update(ctx context.Context, username string, p models.UserPatch) (models.User, error) {
	return models.User{}, errNotImplemented
}

func (m *mockUserService) Delete(ctx context.Context, username string, caller models.Caller) error {
	return errNotImplemented
}

func (m *mockUserService) AddRating(ctx context.Context, buyer, seller string, rating float64, caller models.Caller) (models.UserRating, error) {
	if m.addRatingFunc != nil {
		return m.addRatingFunc(ctx, buyer, seller, rating, caller)
	}
	return models.UserRating{}, errNotImplemented
}
