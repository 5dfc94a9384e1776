package reconcile

// SettlementStatus classifies a payable document from its due balance.
type SettlementStatus string

const (
	// SettlementSettled means the due balance is zero or negative.
	SettlementSettled SettlementStatus = "SETTLED"
	// SettlementOutstanding means a positive balance remains.
	SettlementOutstanding SettlementStatus = "OUTSTANDING"
)

// SettlementOf maps a due balance to its settlement status. The boundary
// due == 0 is Settled, not Outstanding.
func SettlementOf(due int64) SettlementStatus {
	if due <= 0 {
		return SettlementSettled
	}
	return SettlementOutstanding
}

// StockStatus classifies a stock count from its signed difference.
type StockStatus string

const (
	StockMatched  StockStatus = "MATCHED"
	StockShortage StockStatus = "SHORTAGE"
	StockSurplus  StockStatus = "SURPLUS"
)

// StockDifference returns initial - counted. A shortfall (fewer counted
// than booked) yields a positive difference; this convention is applied on
// both create and edit paths.
func StockDifference(initial, counted int64) int64 {
	return initial - counted
}

// StockStatusOf maps a signed difference to its reconciliation status.
func StockStatusOf(difference int64) StockStatus {
	switch {
	case difference > 0:
		return StockShortage
	case difference < 0:
		return StockSurplus
	default:
		return StockMatched
	}
}
