package reconcile

// Totals holds the document-level aggregates derived from a set of lines
// and a paid amount. Due may be negative when the document is over-paid.
type Totals struct {
	Total   int64 `json:"total"`
	Due     int64 `json:"due"`
	Settled bool  `json:"settled"`
}

// ComputeTotals folds lines and the paid amount into document aggregates.
// An empty line list yields Total 0, which is valid while a form is being
// built; the validation gate rejects it at submission time. The input slice
// is not mutated and line totals are taken as-is, so callers that changed
// raw inputs must Recompute lines first.
func ComputeTotals(lines []LineItem, paid int64) Totals {
	var total int64
	for _, li := range lines {
		total += li.Total
	}
	due := total - paid
	return Totals{Total: total, Due: due, Settled: due <= 0}
}
