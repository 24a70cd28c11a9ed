package models

type Item struct {
	ID            int64   `json:"id"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	IsSold        bool    `json:"isSold"`
	Description   string  `json:"description"`
	OwnerUsername string  `json:"ownerUsername"`
}

type ItemPatch struct {
	Image       *string  `json:"image" validate:"omitempty,max=255"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=50"`
	Title       *string  `json:"title" validate:"omitempty,min=1,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0,lt=100000000"`
	IsSold      *bool    `json:"isSold"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
}

func (p ItemPatch) Empty() bool {
	return p.Image == nil && p.Category == nil && p.Title == nil &&
		p.Price == nil && p.IsSold == nil && p.Description == nil
}

type NewItem struct {
	Image       string  `json:"image" validate:"max=255"`
	Category    string  `json:"category" validate:"required,min=1,max=50"`
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Price       float64 `json:"price" validate:"gte=0,lt=100000000"`
	Description string  `json:"description" validate:"max=2000"`
}
