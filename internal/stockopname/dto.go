package stockopname

import "time"

// CreateOpnameRequest is the submission payload. Stock figures carry no
// range tags; negative values are clamped by the reconcile constructor.
// Any difference or status in the payload is ignored.
type CreateOpnameRequest struct {
	UserID       int64     `json:"user_id" validate:"required,gt=0"`
	ShopID       int64     `json:"shop_id" validate:"required,gt=0"`
	ProductID    int64     `json:"product_id" validate:"required,gt=0"`
	InitialStock int64     `json:"initial_stock"`
	CountedStock int64     `json:"counted_stock"`
	Date         time.Time `json:"date" validate:"required"`
	Notes        string    `json:"notes"`
}

// ListOpnamesRequest filters the paginated listing.
type ListOpnamesRequest struct {
	ShopID    *int64
	ProductID *int64
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}
