package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiah = message.NewPrinter(language.Indonesian)

// FormatRupiah renders a whole-unit amount for display, with Indonesian
// digit grouping: 1250000 becomes "Rp 1.250.000". Amounts are stored and
// computed as plain int64; this is presentation only.
func FormatRupiah(amount int64) string {
	return rupiah.Sprintf("Rp %d", amount)
}
