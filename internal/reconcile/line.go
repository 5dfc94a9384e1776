// Package reconcile implements the financial-document reconciliation core:
// line items with derived tax/total, document-level aggregates, settlement
// and stock-count policies, and the pre-submission validation gate. The
// package is pure; it performs no I/O and never mutates its inputs.
package reconcile

// TaxRatePercent is the fixed PPN rate applied to every taxable line.
// It is not caller-editable.
const TaxRatePercent = 11

// LineItem is one priced row of a document. All monetary fields are whole
// currency units (no fractional subunits in this domain). Tax and Total are
// derived and must only be set through Recompute.
type LineItem struct {
	ProductRef int64 `json:"product_id"`
	Quantity   int64 `json:"quantity"`
	UnitPrice  int64 `json:"price"`
	Discount   int64 `json:"discount"`
	Tax        int64 `json:"tax"`
	Total      int64 `json:"total"`
}

// NewLineItem builds a line from raw form inputs. Negative quantity, price
// or discount are clamped to zero instead of failing, mirroring the lenient
// behaviour of the entry forms. The returned line has Tax and Total derived.
func NewLineItem(productRef, quantity, unitPrice, discount int64) LineItem {
	return Recompute(LineItem{
		ProductRef: productRef,
		Quantity:   clampNonNegative(quantity),
		UnitPrice:  clampNonNegative(unitPrice),
		Discount:   clampNonNegative(discount),
	})
}

// Recompute returns a copy of li with Tax and Total rederived from the
// current Quantity, UnitPrice and Discount. It is idempotent:
// Recompute(Recompute(x)) == Recompute(x).
func Recompute(li LineItem) LineItem {
	subtotal := li.Quantity*li.UnitPrice - li.Discount
	if subtotal < 0 {
		subtotal = 0
	}
	li.Tax = taxOn(subtotal)
	li.Total = subtotal + li.Tax
	return li
}

// Subtotal is the pre-tax amount of the line, never negative.
func (li LineItem) Subtotal() int64 {
	s := li.Quantity*li.UnitPrice - li.Discount
	if s < 0 {
		return 0
	}
	return s
}

// Empty reports whether the line is a transient placeholder row.
func (li LineItem) Empty() bool {
	return li.Quantity == 0
}

// taxOn rounds subtotal * 11% half up to the nearest whole currency unit,
// in exact integer arithmetic. Half-up (not banker's) is the documented
// rounding policy; the two diverge on .5 boundaries such as subtotal 150.
func taxOn(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
