package models

import "time"

type Transaction struct {
	ID              int64     `json:"id"`
	PostID          int64     `json:"postId"`
	BuyerUsername   string    `json:"buyerUsername"`
	SellerUsername  string    `json:"sellerUsername"`
	Price           float64   `json:"price"`
	TransactionDate time.Time `json:"transactionDate"`
	Rated           bool      `json:"rated"`
}

type NewTransaction struct {
	PostID         int64   `json:"postId" validate:"required,gt=0"`
	BuyerUsername  string  `json:"buyerUsername" validate:"required,min=1,max=25"`
	SellerUsername string  `json:"sellerUsername" validate:"required,min=1,max=25"`
	Price          float64 `json:"price" validate:"gte=0"`
}

// TransactionFilter narrows a user's transactions; zero values are ignored.
// TransactionDate matches on the calendar day.
type TransactionFilter struct {
	MinPrice        *float64
	MaxPrice        *float64
	BuyerUsername   string
	SellerUsername  string
	TransactionDate *time.Time
}

// Party reports whether username is the buyer or the seller.
func (t Transaction) Party(username string) bool {
	return username == t.BuyerUsername || username == t.SellerUsername
}
