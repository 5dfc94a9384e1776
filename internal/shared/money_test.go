package shared

import "testing"

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{1500, "Rp 1.500"},
		{1250000, "Rp 1.250.000"},
		{-43800, "Rp -43.800"},
	}
	for _, c := range cases {
		if got := FormatRupiah(c.amount); got != c.want {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", c.amount, got, c.want)
		}
	}
}
