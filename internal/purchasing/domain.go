// Package purchasing implements purchase order documents: creation,
// full-replace updates and settlement tracking, with all aggregates derived
// through the reconcile core.
package purchasing

import (
	"time"

	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
)

// Wire labels for settlement status, kept for backend compatibility.
const (
	StatusLunas      = "Lunas"
	StatusBelumLunas = "Belum Lunas"
)

// SettlementLabel maps the policy status to its wire label.
func SettlementLabel(s reconcile.SettlementStatus) string {
	if s == reconcile.SettlementSettled {
		return StatusLunas
	}
	return StatusBelumLunas
}

// PurchaseOrder is the submission shape of a purchase order. Details reuse
// the reconcile line item directly; Total, Due and Status are derived and
// recomputed server-side, never trusted from the client.
type PurchaseOrder struct {
	ID           int64                `json:"id"`
	Number       string               `json:"number"`
	SupplierID   int64                `json:"supplier_id"`
	ShopID       int64                `json:"shop_id"`
	UserID       int64                `json:"user_id"`
	Date         time.Time            `json:"date"`
	Notes        string               `json:"notes"`
	Paid         int64                `json:"paid"`
	Total        int64                `json:"total"`
	Due          int64                `json:"due"`
	Status       string               `json:"status"`
	Details      []reconcile.LineItem `json:"details,omitempty"`
	DisplayTotal string               `json:"display_total,omitempty"`
	DisplayDue   string               `json:"display_due,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// SettlementState is the slim projection used by the settlement refresh job.
type SettlementState struct {
	ID     int64
	Total  int64
	Paid   int64
	Status string
}
