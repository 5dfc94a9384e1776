package reconcile

import "time"

// PartyRef is a required reference to an external party or entity
// (supplier, shop, user, product). ID 0 means unset.
type PartyRef struct {
	Field string
	ID    int64
}

// Document is the parent financial record: party references, an ordered
// list of lines and a paid amount, with aggregates derived on demand.
// Documents are value types; every edit produces a new Document through
// Normalize, never an in-place mutation.
type Document struct {
	PartyRefs  []PartyRef
	Date       time.Time
	Notes      string
	PaidAmount int64
	Lines      []LineItem
}

// Normalize returns a copy of the document with every line recomputed and
// a negative paid amount clamped to zero. Line order is preserved.
func (d Document) Normalize() Document {
	lines := make([]LineItem, len(d.Lines))
	for i, li := range d.Lines {
		lines[i] = Recompute(li)
	}
	d.Lines = lines
	d.PaidAmount = clampNonNegative(d.PaidAmount)
	return d
}

// Totals derives the document aggregates from its current lines.
func (d Document) Totals() Totals {
	return ComputeTotals(d.Lines, d.PaidAmount)
}

// Settlement derives the settlement status from the current due balance.
func (d Document) Settlement() SettlementStatus {
	return SettlementOf(d.Totals().Due)
}

// PruneEmptyLines drops placeholder rows (quantity zero) before validation.
// Callers that want to silently discard half-filled rows use this; the
// validation gate itself flags any zero-quantity row left in place.
func PruneEmptyLines(lines []LineItem) []LineItem {
	kept := make([]LineItem, 0, len(lines))
	for _, li := range lines {
		if !li.Empty() {
			kept = append(kept, li)
		}
	}
	return kept
}

// StockCount is the stock-opname specialization: booked stock versus a
// physical count. Negative inputs are clamped by NewStockCount.
type StockCount struct {
	InitialStock int64
	CountedStock int64
}

// NewStockCount clamps negative inputs to zero, like NewLineItem.
func NewStockCount(initial, counted int64) StockCount {
	return StockCount{
		InitialStock: clampNonNegative(initial),
		CountedStock: clampNonNegative(counted),
	}
}

// Difference returns the signed variance, initial - counted.
func (s StockCount) Difference() int64 {
	return StockDifference(s.InitialStock, s.CountedStock)
}

// Status classifies the count as Shortage, Surplus or Matched.
func (s StockCount) Status() StockStatus {
	return StockStatusOf(s.Difference())
}
