// Package stockopname records physical stock counts against booked stock
// and derives the signed variance and its badge status.
package stockopname

import (
	"time"

	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
)

// Badge labels for the list view.
const (
	StatusMatched  = "Matched"
	StatusShortage = "Shortage"
	StatusSurplus  = "Surplus"
)

// StatusLabel maps the policy status to its badge label.
func StatusLabel(s reconcile.StockStatus) string {
	switch s {
	case reconcile.StockShortage:
		return StatusShortage
	case reconcile.StockSurplus:
		return StatusSurplus
	default:
		return StatusMatched
	}
}

// CountState is the slim projection used by the recount job.
type CountState struct {
	ID           int64
	InitialStock int64
	CountedStock int64
	Difference   int64
	Status       string
}

// Opname is one stock count record. Difference and Status are derived from
// initial versus counted stock on every write, never taken from the payload.
type Opname struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ShopID       int64     `json:"shop_id"`
	ProductID    int64     `json:"product_id"`
	InitialStock int64     `json:"initial_stock"`
	CountedStock int64     `json:"counted_stock"`
	Difference   int64     `json:"difference"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
