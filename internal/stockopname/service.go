package stockopname

import (
	"context"
	"fmt"

	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
)

// RepositoryPort describes the storage operations used by Service.
type RepositoryPort interface {
	Create(ctx context.Context, op Opname) (int64, error)
	Update(ctx context.Context, op Opname) error
	Get(ctx context.Context, id int64) (Opname, error)
	List(ctx context.Context, req ListOpnamesRequest) ([]Opname, int, error)
	ListCountStates(ctx context.Context) ([]CountState, error)
	UpdateDerived(ctx context.Context, id int64, difference int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// ReferencePort answers existence checks for product references.
type ReferencePort interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service orchestrates stock opname flows.
type Service struct {
	repo     RepositoryPort
	products ReferencePort
}

// NewService constructs the stock opname service.
func NewService(repo RepositoryPort, products ReferencePort) *Service {
	return &Service{repo: repo, products: products}
}

// Create validates and persists a new stock count. The variance and its
// status come from the reconcile core, whatever the client sent.
func (s *Service) Create(ctx context.Context, req CreateOpnameRequest) (Opname, error) {
	op, err := s.build(ctx, req)
	if err != nil {
		return Opname{}, err
	}

	id, err := s.repo.Create(ctx, op)
	if err != nil {
		return Opname{}, fmt.Errorf("create stock opname: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Update is a full replacement; the variance is rederived the same way as
// on create.
func (s *Service) Update(ctx context.Context, id int64, req CreateOpnameRequest) (Opname, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Opname{}, err
	}

	op, err := s.build(ctx, req)
	if err != nil {
		return Opname{}, err
	}
	op.ID = existing.ID

	if err := s.repo.Update(ctx, op); err != nil {
		return Opname{}, fmt.Errorf("update stock opname: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Get loads one stock count.
func (s *Service) Get(ctx context.Context, id int64) (Opname, error) {
	return s.repo.Get(ctx, id)
}

// List returns stock counts for the paginated listing.
func (s *Service) List(ctx context.Context, req ListOpnamesRequest) ([]Opname, int, error) {
	return s.repo.List(ctx, req)
}

// Delete removes a stock count.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RecountAll re-derives difference and badge status for every stored count
// from its initial/counted figures and fixes rows that drifted, e.g. after
// a bulk import wrote stale derived columns. Returns the number of rows
// corrected.
func (s *Service) RecountAll(ctx context.Context) (int, error) {
	states, err := s.repo.ListCountStates(ctx)
	if err != nil {
		return 0, err
	}
	fixed := 0
	for _, st := range states {
		count := reconcile.NewStockCount(st.InitialStock, st.CountedStock)
		diff := count.Difference()
		status := StatusLabel(count.Status())
		if st.Difference == diff && st.Status == status {
			continue
		}
		if err := s.repo.UpdateDerived(ctx, st.ID, diff, status); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}

func (s *Service) build(ctx context.Context, req CreateOpnameRequest) (Opname, error) {
	verr := &reconcile.ValidationError{}
	if req.UserID <= 0 {
		verr.Add("user_id", -1, "required reference is missing")
	}
	if req.ShopID <= 0 {
		verr.Add("shop_id", -1, "required reference is missing")
	}
	if req.ProductID <= 0 {
		verr.Add("product_id", -1, "required reference is missing")
	}
	if req.Date.IsZero() {
		verr.Add("date", -1, "date is required")
	}
	if len(verr.Fields) > 0 {
		return Opname{}, verr
	}

	ok, err := s.products.Exists(ctx, req.ProductID)
	if err != nil {
		return Opname{}, fmt.Errorf("verify product: %w", err)
	}
	if !ok {
		return Opname{}, fmt.Errorf("product %d: %w", req.ProductID, shared.ErrReferenceMismatch)
	}

	count := reconcile.NewStockCount(req.InitialStock, req.CountedStock)
	return Opname{
		UserID:       req.UserID,
		ShopID:       req.ShopID,
		ProductID:    req.ProductID,
		InitialStock: count.InitialStock,
		CountedStock: count.CountedStock,
		Difference:   count.Difference(),
		Status:       StatusLabel(count.Status()),
		Date:         req.Date,
		Notes:        req.Notes,
	}, nil
}
