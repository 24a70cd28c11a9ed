package models

import "time"

type Post struct {
	ID             int64      `json:"id"`
	PosterUsername string     `json:"posterUsername"`
	ItemID         int64      `json:"itemId"`
	LocationID     int64      `json:"locationId"`
	PostedAt       *time.Time `json:"postedAt,omitempty"`
}

type PostFilter struct {
	ItemName       string
	PosterUsername string
	MinRating      *float64
}

type NewPost struct {
	ItemID     int64 `json:"itemId" validate:"required,gt=0"`
	LocationID int64 `json:"locationId" validate:"required,gt=0"`
}

// PostPatch only moves a post; the item it advertises is fixed.
type PostPatch struct {
	LocationID *int64 `json:"locationId" validate:"omitempty,gt=0"`
}
