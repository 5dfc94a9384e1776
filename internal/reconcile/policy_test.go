package reconcile

import "testing"

func TestSettlementBoundary(t *testing.T) {
	cases := []struct {
		due  int64
		want SettlementStatus
	}{
		{due: 1, want: SettlementOutstanding},
		{due: 0, want: SettlementSettled},
		{due: -1, want: SettlementSettled},
	}
	for _, c := range cases {
		if got := SettlementOf(c.due); got != c.want {
			t.Fatalf("SettlementOf(%d) = %s, want %s", c.due, got, c.want)
		}
	}
}

func TestStockStatus(t *testing.T) {
	cases := []struct {
		diff int64
		want StockStatus
	}{
		{diff: 5, want: StockShortage},
		{diff: -3, want: StockSurplus},
		{diff: 0, want: StockMatched},
	}
	for _, c := range cases {
		if got := StockStatusOf(c.diff); got != c.want {
			t.Fatalf("StockStatusOf(%d) = %s, want %s", c.diff, got, c.want)
		}
	}
}

func TestStockCount(t *testing.T) {
	sc := NewStockCount(50, 55)
	if got := sc.Difference(); got != -5 {
		t.Fatalf("difference = %d, want -5", got)
	}
	if got := sc.Status(); got != StockSurplus {
		t.Fatalf("status = %s, want %s", got, StockSurplus)
	}

	sc = NewStockCount(-10, -1)
	if sc.InitialStock != 0 || sc.CountedStock != 0 {
		t.Fatalf("negative stock not clamped: %+v", sc)
	}
}
