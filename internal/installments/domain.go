// Package installments records payments against loan ("pinjaman") schedule
// entries and exposes a per-loan statement with the settlement roll-up.
package installments

import (
	"time"

	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
)

const (
	statusLunas      = "Lunas"
	statusBelumLunas = "Belum Lunas"
)

// Payment types on the wire.
const (
	TypeManual    = "manual"
	TypeAutomatic = "automatic"
)

// PaymentMode is the tagged payment variant. Automatic payments come from a
// gateway and must name both method and channel; manual payments accept
// free-form values, including empty ones.
type PaymentMode interface {
	Type() string
	Method() string
	Channel() string
}

// Manual is an over-the-counter payment recorded by a staff member.
type Manual struct {
	PaymentMethod  string
	PaymentChannel string
}

func (m Manual) Type() string    { return TypeManual }
func (m Manual) Method() string  { return m.PaymentMethod }
func (m Manual) Channel() string { return m.PaymentChannel }

// Automatic is a gateway-originated payment.
type Automatic struct {
	PaymentMethod  string
	PaymentChannel string
}

func (a Automatic) Type() string    { return TypeAutomatic }
func (a Automatic) Method() string  { return a.PaymentMethod }
func (a Automatic) Channel() string { return a.PaymentChannel }

// NewPaymentMode builds the variant for the given type string, enforcing the
// automatic-mode requirement at construction time.
func NewPaymentMode(typ, method, channel string) (PaymentMode, error) {
	switch typ {
	case TypeManual:
		return Manual{PaymentMethod: method, PaymentChannel: channel}, nil
	case TypeAutomatic:
		verr := &reconcile.ValidationError{}
		if method == "" {
			verr.Add("payment_method", -1, "payment method is required for automatic payments")
		}
		if channel == "" {
			verr.Add("payment_channel", -1, "payment channel is required for automatic payments")
		}
		if len(verr.Fields) > 0 {
			return nil, verr
		}
		return Automatic{PaymentMethod: method, PaymentChannel: channel}, nil
	default:
		verr := &reconcile.ValidationError{}
		verr.Add("type", -1, "type must be manual or automatic")
		return nil, verr
	}
}

// Payment is one recorded installment payment.
type Payment struct {
	ID               int64     `json:"id"`
	PinjamanID       int64     `json:"pinjaman_id"`
	PinjamanDetailID int64     `json:"pinjaman_detail_id"`
	Amount           int64     `json:"amount"`
	Type             string    `json:"type"`
	PaymentMethod    string    `json:"payment_method,omitempty"`
	PaymentChannel   string    `json:"payment_channel,omitempty"`
	DisplayAmount    string    `json:"display_amount,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ScheduleEntry is one row of a loan's repayment schedule.
type ScheduleEntry struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}

// Statement is the per-loan roll-up of schedule versus payments.
type Statement struct {
	PinjamanID   int64     `json:"pinjaman_id"`
	Total        int64     `json:"total"`
	Paid         int64     `json:"paid"`
	Due          int64     `json:"due"`
	Status       string    `json:"status"`
	DisplayTotal string    `json:"display_total,omitempty"`
	DisplayPaid  string    `json:"display_paid,omitempty"`
	DisplayDue   string    `json:"display_due,omitempty"`
	Payments     []Payment `json:"payments"`
}

func settlementLabel(s reconcile.SettlementStatus) string {
	if s == reconcile.SettlementSettled {
		return statusLunas
	}
	return statusBelumLunas
}
