package stockopname

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
)

type memoryRepo struct {
	opnames map[int64]Opname
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{opnames: make(map[int64]Opname), nextID: 1}
}

func (m *memoryRepo) Create(ctx context.Context, op Opname) (int64, error) {
	op.ID = m.nextID
	m.nextID++
	m.opnames[op.ID] = op
	return op.ID, nil
}

func (m *memoryRepo) Update(ctx context.Context, op Opname) error {
	if _, ok := m.opnames[op.ID]; !ok {
		return httpx.ErrNotFound
	}
	m.opnames[op.ID] = op
	return nil
}

func (m *memoryRepo) Get(ctx context.Context, id int64) (Opname, error) {
	op, ok := m.opnames[id]
	if !ok {
		return Opname{}, httpx.ErrNotFound
	}
	return op, nil
}

func (m *memoryRepo) List(ctx context.Context, req ListOpnamesRequest) ([]Opname, int, error) {
	var out []Opname
	for _, op := range m.opnames {
		if req.Status != "" && op.Status != req.Status {
			continue
		}
		out = append(out, op)
	}
	return out, len(out), nil
}

func (m *memoryRepo) ListCountStates(ctx context.Context) ([]CountState, error) {
	var out []CountState
	for _, op := range m.opnames {
		out = append(out, CountState{
			ID:           op.ID,
			InitialStock: op.InitialStock,
			CountedStock: op.CountedStock,
			Difference:   op.Difference,
			Status:       op.Status,
		})
	}
	return out, nil
}

func (m *memoryRepo) UpdateDerived(ctx context.Context, id int64, difference int64, status string) error {
	op, ok := m.opnames[id]
	if !ok {
		return httpx.ErrNotFound
	}
	op.Difference = difference
	op.Status = status
	m.opnames[id] = op
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.opnames[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.opnames, id)
	return nil
}

type staticRefs struct {
	known map[int64]bool
}

func (s staticRefs) Exists(ctx context.Context, id int64) (bool, error) {
	return s.known[id], nil
}

func newTestService(repo *memoryRepo) *Service {
	return NewService(repo, staticRefs{known: map[int64]bool{10: true}})
}

func opnameReq() CreateOpnameRequest {
	return CreateOpnameRequest{
		UserID:       1,
		ShopID:       2,
		ProductID:    10,
		InitialStock: 50,
		CountedStock: 55,
		Date:         time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Notes:        "monthly count",
	}
}

func TestCreateDerivesSurplus(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	op, err := svc.Create(context.Background(), opnameReq())
	require.NoError(t, err)
	assert.Equal(t, int64(-5), op.Difference)
	assert.Equal(t, StatusSurplus, op.Status)
}

func TestCreateDerivesShortageAndMatched(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	req := opnameReq()
	req.CountedStock = 45
	op, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), op.Difference)
	assert.Equal(t, StatusShortage, op.Status)

	req.CountedStock = 50
	op, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), op.Difference)
	assert.Equal(t, StatusMatched, op.Status)
}

func TestCreateClampsNegativeStock(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	req := opnameReq()
	req.InitialStock = -10
	req.CountedStock = 3

	op, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), op.InitialStock)
	assert.Equal(t, int64(-3), op.Difference)
	assert.Equal(t, StatusSurplus, op.Status)
}

func TestCreateRejectsMissingReferences(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	req := opnameReq()
	req.UserID = 0
	req.Date = time.Time{}

	_, err := svc.Create(context.Background(), req)
	var verr *reconcile.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "user_id", verr.Fields[0].Field)
	assert.Equal(t, "date", verr.Fields[1].Field)
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	req := opnameReq()
	req.ProductID = 999

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrReferenceMismatch)
}

func TestUpdateRederivesDifference(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), opnameReq())
	require.NoError(t, err)

	req := opnameReq()
	req.CountedStock = 40

	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, int64(10), updated.Difference)
	assert.Equal(t, StatusShortage, updated.Status)
}

func TestUpdateMissingOpname(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.Update(context.Background(), 404, opnameReq())
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestRecountAllFixesDrift(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), opnameReq())
	require.NoError(t, err)

	// A bulk import wrote stale derived columns.
	op := repo.opnames[created.ID]
	op.Difference = 0
	op.Status = StatusMatched
	repo.opnames[created.ID] = op

	fixed, err := svc.RecountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)
	assert.Equal(t, int64(-5), repo.opnames[created.ID].Difference)
	assert.Equal(t, StatusSurplus, repo.opnames[created.ID].Status)

	fixed, err = svc.RecountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fixed)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), opnameReq())
	require.NoError(t, err)

	req := opnameReq()
	req.CountedStock = 50
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	list, total, err := svc.List(context.Background(), ListOpnamesRequest{Status: StatusSurplus})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, StatusSurplus, list[0].Status)
}
