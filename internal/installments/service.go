package installments

import (
	"context"
	"fmt"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
)

// RepositoryPort describes the storage operations used by Service.
type RepositoryPort interface {
	LoanExists(ctx context.Context, pinjamanID int64) (bool, error)
	DetailBelongsToLoan(ctx context.Context, detailID, pinjamanID int64) (bool, error)
	Schedule(ctx context.Context, pinjamanID int64) ([]ScheduleEntry, error)
	CreatePayment(ctx context.Context, p Payment) (int64, error)
	GetPayment(ctx context.Context, id int64) (Payment, error)
	ListPayments(ctx context.Context, pinjamanID int64) ([]Payment, error)
}

// Service orchestrates installment payment flows.
type Service struct {
	repo RepositoryPort
}

// NewService constructs the installments service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create records one payment against a loan schedule entry. The payment mode
// is constructed as a tagged variant so automatic payments cannot be stored
// without method and channel, and the detail reference is rechecked against
// the loan before anything is written.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (Payment, error) {
	mode, err := NewPaymentMode(req.Type, req.PaymentMethod, req.PaymentChannel)
	if err != nil {
		return Payment{}, err
	}

	amount := req.Amount
	if amount < 0 {
		amount = 0
	}
	if amount == 0 {
		verr := &reconcile.ValidationError{}
		verr.Add("amount", -1, "payment amount must be greater than zero")
		return Payment{}, verr
	}

	ok, err := s.repo.DetailBelongsToLoan(ctx, req.PinjamanDetailID, req.PinjamanID)
	if err != nil {
		return Payment{}, fmt.Errorf("verify schedule entry: %w", err)
	}
	if !ok {
		return Payment{}, fmt.Errorf("detail %d on loan %d: %w",
			req.PinjamanDetailID, req.PinjamanID, shared.ErrReferenceMismatch)
	}

	id, err := s.repo.CreatePayment(ctx, Payment{
		PinjamanID:       req.PinjamanID,
		PinjamanDetailID: req.PinjamanDetailID,
		Amount:           amount,
		Type:             mode.Type(),
		PaymentMethod:    mode.Method(),
		PaymentChannel:   mode.Channel(),
	})
	if err != nil {
		return Payment{}, fmt.Errorf("create payment: %w", err)
	}
	return s.Get(ctx, id)
}

// Get loads one payment.
func (s *Service) Get(ctx context.Context, id int64) (Payment, error) {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return Payment{}, err
	}
	p.DisplayAmount = shared.FormatRupiah(p.Amount)
	return p, nil
}

// Statement rolls a loan's schedule and payments up into totals, due and the
// settlement label. Each schedule entry contributes its amount as one line.
func (s *Service) Statement(ctx context.Context, pinjamanID int64) (Statement, error) {
	ok, err := s.repo.LoanExists(ctx, pinjamanID)
	if err != nil {
		return Statement{}, err
	}
	if !ok {
		return Statement{}, httpx.ErrNotFound
	}

	schedule, err := s.repo.Schedule(ctx, pinjamanID)
	if err != nil {
		return Statement{}, err
	}
	payments, err := s.repo.ListPayments(ctx, pinjamanID)
	if err != nil {
		return Statement{}, err
	}

	lines := make([]reconcile.LineItem, 0, len(schedule))
	for _, entry := range schedule {
		// Schedule amounts are already final figures, no tax applies.
		lines = append(lines, reconcile.LineItem{
			ProductRef: entry.ID,
			Quantity:   1,
			UnitPrice:  entry.Amount,
			Total:      entry.Amount,
		})
	}

	var paid int64
	for i := range payments {
		paid += payments[i].Amount
		payments[i].DisplayAmount = shared.FormatRupiah(payments[i].Amount)
	}

	totals := reconcile.ComputeTotals(lines, paid)
	return Statement{
		PinjamanID:   pinjamanID,
		Total:        totals.Total,
		Paid:         paid,
		Due:          totals.Due,
		Status:       settlementLabel(reconcile.SettlementOf(totals.Due)),
		DisplayTotal: shared.FormatRupiah(totals.Total),
		DisplayPaid:  shared.FormatRupiah(paid),
		DisplayDue:   shared.FormatRupiah(totals.Due),
		Payments:     payments,
	}, nil
}
