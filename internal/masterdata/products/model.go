package products

import "time"

// Product is a sellable item referenced by document lines and stock counts.
// Price is whole currency units; Stock is the current book quantity that
// stock opname compares a physical count against.
type Product struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Price        int64     `json:"price"`
	Stock        int64     `json:"stock"`
	DisplayPrice string    `json:"display_price,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
