package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/dormshop-backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidReference is returned when a foreign key points nowhere.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConflict is returned when a conditional write lost to the current row
	// state (already rated, already sold).
	ErrConflict = errors.New("conflicting state")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	Get(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context, f models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, username string, p models.UserPatch) (models.User, error)
	Delete(ctx context.Context, username string) error
	AddRating(ctx context.Context, username string, rating float64) (models.UserRating, error)
}

type Items interface {
	Create(ctx context.Context, it models.Item) (models.Item, error)
	Get(ctx context.Context, id int64) (models.Item, error)
	// UpdateOwned applies p only when the item is owned by owner.
	UpdateOwned(ctx context.Context, id int64, owner string, p models.ItemPatch) (models.Item, error)
	DeleteOwned(ctx context.Context, id int64, owner string) error
}

type Locations interface {
	Create(ctx context.Context, l models.Location) (models.Location, error)
	Get(ctx context.Context, id int64) (models.Location, error)
	List(ctx context.Context, f models.LocationFilter) ([]models.Location, error)
	Delete(ctx context.Context, id int64) error
}

type Posts interface {
	ExistsForItem(ctx context.Context, itemID int64) (bool, error)
	// Create inserts the post only when itemID is owned by poster; ErrNotFound
	// otherwise.
	Create(ctx context.Context, poster string, itemID, locationID int64) (models.Post, error)
	Get(ctx context.Context, id int64) (models.Post, error)
	List(ctx context.Context, f models.PostFilter) ([]models.Post, error)
	ListByPoster(ctx context.Context, poster string) ([]models.Post, error)
	UpdateLocation(ctx context.Context, id int64, poster string, locationID int64) (models.Post, error)
	// Delete removes the post; a non-empty poster restricts it to that poster.
	Delete(ctx context.Context, id int64, poster string) error
}

type Transactions interface {
	// Create records the sale and marks the posted item sold in one database
	// transaction. ErrConflict when the item is already sold.
	Create(ctx context.Context, t models.NewTransaction) (models.Transaction, error)
	Get(ctx context.Context, id int64) (models.Transaction, error)
	List(ctx context.Context, username string, f models.TransactionFilter) ([]models.Transaction, error)
	ListForUser(ctx context.Context, username string) ([]models.Transaction, error)
	// MarkRated flips rated for an unrated transaction bought by buyer.
	MarkRated(ctx context.Context, id int64, buyer string) (models.Transaction, error)
	// Rate marks the transaction rated and folds rating into the seller's
	// aggregate in one database transaction.
	Rate(ctx context.Context, id int64, buyer string, rating float64) (models.Transaction, models.UserRating, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
