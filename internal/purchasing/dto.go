package purchasing

import "time"

// CreatePurchaseOrderRequest is the submission payload. Monetary and
// quantity fields carry no range tags on purpose: negative values are
// clamped by the reconcile constructors rather than rejected, matching the
// lenient form behaviour. Structural rules live in the validation gate.
type CreatePurchaseOrderRequest struct {
	SupplierID int64           `json:"supplier_id" validate:"required,gt=0"`
	ShopID     int64           `json:"shop_id" validate:"required,gt=0"`
	UserID     int64           `json:"user_id" validate:"required,gt=0"`
	Date       time.Time       `json:"date" validate:"required"`
	Notes      string          `json:"notes"`
	Paid       int64           `json:"paid"`
	PruneEmpty bool            `json:"prune_empty,omitempty"`
	Details    []DetailRequest `json:"details" validate:"required,min=1,dive"`
}

// DetailRequest is one submitted line. Tax and total are ignored if sent.
type DetailRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
	Discount  int64 `json:"discount"`
}

// ListPurchaseOrdersRequest filters the paginated listing.
type ListPurchaseOrdersRequest struct {
	SupplierID *int64
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}
