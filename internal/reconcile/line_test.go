package reconcile

import "testing"

func TestRecomputeDerivesTaxAndTotal(t *testing.T) {
	li := NewLineItem(7, 3, 100000, 10000)
	if got := li.Subtotal(); got != 290000 {
		t.Fatalf("subtotal = %d, want 290000", got)
	}
	if li.Tax != 31900 {
		t.Fatalf("tax = %d, want 31900", li.Tax)
	}
	if li.Total != 321900 {
		t.Fatalf("total = %d, want 321900", li.Total)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	cases := []LineItem{
		{ProductRef: 1, Quantity: 3, UnitPrice: 100000, Discount: 10000},
		{ProductRef: 2, Quantity: 0, UnitPrice: 500},
		{ProductRef: 3, Quantity: 1, UnitPrice: 150},
		// Stale derived fields must be overwritten, not accumulated.
		{ProductRef: 4, Quantity: 2, UnitPrice: 1000, Tax: 999, Total: 999},
	}
	for _, c := range cases {
		once := Recompute(c)
		twice := Recompute(once)
		if once != twice {
			t.Fatalf("recompute not idempotent: %+v != %+v", once, twice)
		}
	}
}

func TestRoundHalfUpBoundary(t *testing.T) {
	// 150 * 0.11 = 16.5: half-up gives 17 where banker's rounding would
	// give 16. This is the documented divergence point.
	li := NewLineItem(1, 1, 150, 0)
	if li.Tax != 17 {
		t.Fatalf("tax on 150 = %d, want 17 (round half up)", li.Tax)
	}
	// 50 * 0.11 = 5.5 rounds to 6 either way.
	li = NewLineItem(1, 1, 50, 0)
	if li.Tax != 6 {
		t.Fatalf("tax on 50 = %d, want 6", li.Tax)
	}
}

func TestNewLineItemClampsNegativeInputs(t *testing.T) {
	li := NewLineItem(1, -5, -100, -10)
	if li.Quantity != 0 || li.UnitPrice != 0 || li.Discount != 0 {
		t.Fatalf("negative inputs not clamped: %+v", li)
	}
	if li.Tax != 0 || li.Total != 0 {
		t.Fatalf("derived fields not zero on empty line: %+v", li)
	}
}

func TestRecomputeDiscountExceedingSubtotal(t *testing.T) {
	// Oversized discount floors the subtotal at zero rather than going
	// negative; the validation gate rejects the row separately.
	li := Recompute(LineItem{ProductRef: 1, Quantity: 1, UnitPrice: 100, Discount: 500})
	if li.Tax != 0 || li.Total != 0 {
		t.Fatalf("expected zero tax/total, got %+v", li)
	}
}
