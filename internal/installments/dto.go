package installments

// CreatePaymentRequest is the submission payload for one installment
// payment. Amount carries no range tag; negative values are clamped and a
// zero amount is rejected by the gate with a field error.
type CreatePaymentRequest struct {
	PinjamanID       int64  `json:"pinjaman_id" validate:"required,gt=0"`
	PinjamanDetailID int64  `json:"pinjaman_detail_id" validate:"required,gt=0"`
	Amount           int64  `json:"amount"`
	Type             string `json:"type" validate:"required,oneof=manual automatic"`
	PaymentMethod    string `json:"payment_method"`
	PaymentChannel   string `json:"payment_channel"`
}
