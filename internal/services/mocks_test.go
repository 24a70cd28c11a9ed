package services

import (
	"context"
	"errors"

	"github.com/baharkarakas/dormshop-backend/internal/geocode"
	"github.com/baharkarakas/dormshop-backend/internal/models"
)

var errNotImplemented = errors.New("not implemented")

// =============================================================================
// Mock Users
// =============================================================================

type mockUsers struct {
	createFunc    func(ctx context.Context, u models.User) (models.User, error)
	getFunc       func(ctx context.Context, username string) (models.User, error)
	listFunc      func(ctx context.Context, f models.UserFilter) ([]models.User, error)
	updateFunc    func(ctx context.Context, username string, p models.UserPatch) (models.User, error)
	deleteFunc    func(ctx context.Context, username string) error
	addRatingFunc func(ctx context.Context, username string, rating float64) (models.UserRating, error)
}

func (m *mockUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return models.User{}, errNotImplemented
}

func (m *mockUsers) Get(ctx context.Context, username string) (models.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, username)
	}
	return models.User{}, errNotImplemented
}

func (m *mockUsers) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *mockUsers) Update(ctx context.Context, username string, p models.UserPatch) (models.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, username, p)
	}
	return models.User{}, errNotImplemented
}

func (m *mockUsers) Delete(ctx context.Context, username string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, username)
	}
	return errNotImplemented
}

func (m *mockUsers) AddRating(ctx context.Context, username string, rating float64) (models.UserRating, error) {
	if m.addRatingFunc != nil {
		return m.addRatingFunc(ctx, username, rating)
	}
	return models.UserRating{}, errNotImplemented
}

// =============================================================================
// Mock Items
// =============================================================================

type mockItems struct {
	createFunc      func(ctx context.Context, it models.Item) (models.Item, error)
	getFunc         func(ctx context.Context, id int64) (models.Item, error)
	updateOwnedFunc func(ctx context.Context, id int64, owner string, p models.ItemPatch) (models.Item, error)
	deleteOwnedFunc func(ctx context.Context, id int64, owner string) error
}

func (m *mockItems) Create(ctx context.Context, it models.Item) (models.Item, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, it)
	}
	return models.Item{}, errNotImplemented
}

func (m *mockItems) Get(ctx context.Context, id int64) (models.Item, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return models.Item{}, errNotImplemented
}

func (m *mockItems) UpdateOwned(ctx context.Context, id int64, owner string, p models.ItemPatch) (models.Item, error) {
	if m.updateOwnedFunc != nil {
		return m.updateOwnedFunc(ctx, id, owner, p)
	}
	return models.Item{}, errNotImplemented
}

func (m *mockItems) DeleteOwned(ctx context.Context, id int64, owner string) error {
	if m.deleteOwnedFunc != nil {
		return m.deleteOwnedFunc(ctx, id, owner)
	}
	return errNotImplemented
}

// =============================================================================
// Mock Locations
// =============================================================================

type mockLocations struct {
	createFunc func(ctx context.Context, l models.Location) (models.Location, error)
	getFunc    func(ctx context.Context, id int64) (models.Location, error)
	listFunc   func(ctx context.Context, f models.LocationFilter) ([]models.Location, error)
	deleteFunc func(ctx context.Context, id int64) error
}

func (m *mockLocations) Create(ctx context.Context, l models.Location) (models.Location, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, l)
	}
	return models.Location{}, errNotImplemented
}

func (m *mockLocations) Get(ctx context.Context, id int64) (models.Location, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return models.Location{}, errNotImplemented
}

func (m *mockLocations) List(ctx context.Context, f models.LocationFilter) ([]models.Location, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *mockLocations) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errNotImplemented
}

// =============================================================================
// Mock Posts
// =============================================================================

type mockPosts struct {
	existsForItemFunc  func(ctx context.Context, itemID int64) (bool, error)
	createFunc         func(ctx context.Context, poster string, itemID, locationID int64) (models.Post, error)
	getFunc            func(ctx context.Context, id int64) (models.Post, error)
	listFunc           func(ctx context.Context, f models.PostFilter) ([]models.Post, error)
	listByPosterFunc   func(ctx context.Context, poster string) ([]models.Post, error)
	updateLocationFunc func(ctx context.Context, id int64, poster string, locationID int64) (models.Post, error)
	deleteFunc         func(ctx context.Context, id int64, poster string) error
}

func (m *mockPosts) ExistsForItem(ctx context.Context, itemID int64) (bool, error) {
	if m.existsForItemFunc != nil {
		return m.existsForItemFunc(ctx, itemID)
	}
	return false, errNotImplemented
}

func (m *mockPosts) Create(ctx context.Context, poster string, itemID, locationID int64) (models.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, poster, itemID, locationID)
	}
	return models.Post{}, errNotImplemented
}

func (m *mockPosts) Get(ctx context.Context, id int64) (models.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return models.Post{}, errNotImplemented
}

func (m *mockPosts) List(ctx context.Context, f models.PostFilter) ([]models.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f)
	}
	return nil, errNotImplemented
}

func (m *mockPosts) ListByPoster(ctx context.Context, poster string) ([]models.Post, error) {
	if m.listByPosterFunc != nil {
		return m.listByPosterFunc(ctx, poster)
	}
	return nil, errNotImplemented
}

func (m *mockPosts) UpdateLocation(ctx context.Context, id int64, poster string, locationID int64) (models.Post, error) {
	if m.updateLocationFunc != nil {
		return m.updateLocationFunc(ctx, id, poster, locationID)
	}
	return models.Post{}, errNotImplemented
}

func (m *mockPosts) Delete(ctx context.Context, id int64, poster string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, poster)
	}
	return errNotImplemented
}

// =============================================================================
// Mock Transactions
// =============================================================================

type mockTransactions struct {
	createFunc      func(ctx context.Context, t models.NewTransaction) (models.Transaction, error)
	getFunc         func(ctx context.Context, id int64) (models.Transaction, error)
	listFunc        func(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error)
	listForUserFunc func(ctx context.Context, username string) ([]models.Transaction, error)
	markRatedFunc   func(ctx context.Context, id int64, buyer string) (models.Transaction, error)
	rateFunc        func(ctx context.Context, id int64, buyer string, rating float64) (models.Transaction, models.UserRating, error)
}

func (m *mockTransactions) Create(ctx context.Context, t models.NewTransaction) (models.Transaction, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, t)
	}
	return models.Transaction{}, errNotImplemented
}

func (m *mockTransactions) Get(ctx context.Context, id int64) (models.Transaction, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return models.Transaction{}, errNotImplemented
}

func (m *mockTransactions) List(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, username, f)
	}
	return nil, errNotImplemented
}

func (m *mockTransactions) ListForUser(ctx context.Context, username string) ([]models.Transaction, error) {
	if m.listForUserFunc != nil {
		return m.listForUserFunc(ctx, username)
	}
	return nil, errNotImplemented
}

func (m *mockTransactions) MarkRated(ctx context.Context, id int64, buyer string) (models.Transaction, error) {
	if m.markRatedFunc != nil {
		return m.markRatedFunc(ctx, id, buyer)
	}
	return models.Transaction{}, errNotImplemented
}

func (m *mockTransactions) Rate(ctx context.Context, id int64, buyer string, rating float64) (models.Transaction, models.UserRating, error) {
	if m.rateFunc != nil {
		return m.rateFunc(ctx, id, buyer, rating)
	}
	return models.Transaction{}, models.UserRating{}, errNotImplemented
}

// =============================================================================
// Mock AuditLogs and Geocoder
// =============================================================================

type mockAuditLogs struct {
	createFunc func(ctx context.Context, l models.AuditLog) error
}

func (m *mockAuditLogs) Create(ctx context.Context, l models.AuditLog) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, l)
	}
	return errNotImplemented
}

type mockGeocoder struct {
	geocodeFunc   func(ctx context.Context, address string) (geocode.Point, error)
	staticMapFunc func(ctx context.Context, address, size string) ([]byte, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (geocode.Point, error) {
	if m.geocodeFunc != nil {
		return m.geocodeFunc(ctx, address)
	}
	return geocode.Point{}, errNotImplemented
}

func (m *mockGeocoder) StaticMap(ctx context.Context, address, size string) ([]byte, error) {
	if m.staticMapFunc != nil {
		return m.staticMapFunc(ctx, address, size)
	}
	return nil, errNotImplemented
}
