package installments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
)

type memoryRepo struct {
	schedules map[int64][]ScheduleEntry
	payments  map[int64]Payment
	nextID    int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		schedules: map[int64][]ScheduleEntry{
			7: {{ID: 70, Amount: 100000}, {ID: 71, Amount: 100000}, {ID: 72, Amount: 100000}},
		},
		payments: make(map[int64]Payment),
		nextID:   1,
	}
}

func (m *memoryRepo) LoanExists(ctx context.Context, pinjamanID int64) (bool, error) {
	_, ok := m.schedules[pinjamanID]
	return ok, nil
}

func (m *memoryRepo) DetailBelongsToLoan(ctx context.Context, detailID, pinjamanID int64) (bool, error) {
	for _, entry := range m.schedules[pinjamanID] {
		if entry.ID == detailID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) Schedule(ctx context.Context, pinjamanID int64) ([]ScheduleEntry, error) {
	return m.schedules[pinjamanID], nil
}

func (m *memoryRepo) CreatePayment(ctx context.Context, p Payment) (int64, error) {
	p.ID = m.nextID
	m.nextID++
	m.payments[p.ID] = p
	return p.ID, nil
}

func (m *memoryRepo) GetPayment(ctx context.Context, id int64) (Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return Payment{}, httpx.ErrNotFound
	}
	return p, nil
}

func (m *memoryRepo) ListPayments(ctx context.Context, pinjamanID int64) ([]Payment, error) {
	var out []Payment
	for _, p := range m.payments {
		if p.PinjamanID == pinjamanID {
			out = append(out, p)
		}
	}
	return out, nil
}

func paymentReq() CreatePaymentRequest {
	return CreatePaymentRequest{
		PinjamanID:       7,
		PinjamanDetailID: 70,
		Amount:           100000,
		Type:             TypeManual,
		PaymentMethod:    "cash",
	}
}

func TestCreateManualPayment(t *testing.T) {
	svc := NewService(newMemoryRepo())

	p, err := svc.Create(context.Background(), paymentReq())
	require.NoError(t, err)
	assert.Equal(t, TypeManual, p.Type)
	assert.Equal(t, "cash", p.PaymentMethod)
	assert.Equal(t, int64(100000), p.Amount)
	assert.Equal(t, "Rp 100.000", p.DisplayAmount)
}

func TestCreateManualAllowsEmptyMethodAndChannel(t *testing.T) {
	svc := NewService(newMemoryRepo())

	req := paymentReq()
	req.PaymentMethod = ""
	req.PaymentChannel = ""

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateAutomaticRequiresMethodAndChannel(t *testing.T) {
	svc := NewService(newMemoryRepo())

	req := paymentReq()
	req.Type = TypeAutomatic
	req.PaymentMethod = ""
	req.PaymentChannel = ""

	_, err := svc.Create(context.Background(), req)
	var verr *reconcile.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "payment_method", verr.Fields[0].Field)
	assert.Equal(t, "payment_channel", verr.Fields[1].Field)
}

func TestCreateAutomaticPayment(t *testing.T) {
	svc := NewService(newMemoryRepo())

	req := paymentReq()
	req.Type = TypeAutomatic
	req.PaymentMethod = "virtual_account"
	req.PaymentChannel = "bca"

	p, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, TypeAutomatic, p.Type)
	assert.Equal(t, "bca", p.PaymentChannel)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := NewService(newMemoryRepo())

	req := paymentReq()
	req.Type = "wire"

	_, err := svc.Create(context.Background(), req)
	var verr *reconcile.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "type", verr.Fields[0].Field)
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, amount := range []int64{0, -500} {
		req := paymentReq()
		req.Amount = amount

		_, err := svc.Create(context.Background(), req)
		var verr *reconcile.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "amount", verr.Fields[0].Field)
	}
}

func TestCreateRejectsDetailFromAnotherLoan(t *testing.T) {
	repo := newMemoryRepo()
	repo.schedules[8] = []ScheduleEntry{{ID: 80, Amount: 50000}}
	svc := NewService(repo)

	req := paymentReq()
	req.PinjamanDetailID = 80

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrReferenceMismatch)
}

func TestStatementRollsUpPayments(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, detail := range []int64{70, 71} {
		req := paymentReq()
		req.PinjamanDetailID = detail
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	st, err := svc.Statement(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), st.Total)
	assert.Equal(t, int64(200000), st.Paid)
	assert.Equal(t, int64(100000), st.Due)
	assert.Equal(t, "Belum Lunas", st.Status)
	assert.Len(t, st.Payments, 2)
}

func TestStatementExactPaymentIsLunas(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, detail := range []int64{70, 71, 72} {
		req := paymentReq()
		req.PinjamanDetailID = detail
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	st, err := svc.Statement(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Due)
	assert.Equal(t, "Lunas", st.Status)
}

func TestStatementUnknownLoan(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Statement(context.Background(), 999)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
