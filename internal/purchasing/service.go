package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
)

// RepositoryPort describes repository operations used by Service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (PurchaseOrder, error)
	List(ctx context.Context, req ListPurchaseOrdersRequest) ([]PurchaseOrder, int, error)
	ListSettlementStates(ctx context.Context) ([]SettlementState, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// TxRepository describes write operations that run inside one transaction.
type TxRepository interface {
	CreateHeader(ctx context.Context, po PurchaseOrder) (int64, error)
	UpdateHeader(ctx context.Context, po PurchaseOrder) error
	DeleteDetails(ctx context.Context, poID int64) error
	InsertDetail(ctx context.Context, poID int64, detail reconcile.LineItem) error
}

// ReferencePort answers existence checks for party/product references.
type ReferencePort interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service orchestrates purchase order flows.
type Service struct {
	repo      RepositoryPort
	suppliers ReferencePort
	products  ReferencePort
}

// NewService constructs the purchasing service.
func NewService(repo RepositoryPort, suppliers, products ReferencePort) *Service {
	return &Service{repo: repo, suppliers: suppliers, products: products}
}

// Create validates and persists a new purchase order. The submitted
// details are normalized through the reconcile core; totals and settlement
// status are derived server-side, overriding anything the client sent.
func (s *Service) Create(ctx context.Context, req CreatePurchaseOrderRequest) (PurchaseOrder, error) {
	doc, err := s.buildDocument(ctx, req)
	if err != nil {
		return PurchaseOrder{}, err
	}

	totals := doc.Totals()
	po := PurchaseOrder{
		Number:     generateNumber("PO"),
		SupplierID: req.SupplierID,
		ShopID:     req.ShopID,
		UserID:     req.UserID,
		Date:       doc.Date,
		Notes:      doc.Notes,
		Paid:       doc.PaidAmount,
		Total:      totals.Total,
		Due:        totals.Due,
		Status:     SettlementLabel(reconcile.SettlementOf(totals.Due)),
		Details:    doc.Lines,
	}

	var poID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.CreateHeader(ctx, po)
		if err != nil {
			return fmt.Errorf("create purchase order: %w", err)
		}
		poID = id
		for _, detail := range po.Details {
			if err := tx.InsertDetail(ctx, id, detail); err != nil {
				return fmt.Errorf("insert detail: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	return s.repo.Get(ctx, poID)
}

// Update is a full replacement of header and details; there are no partial
// patch semantics for documents in this domain.
func (s *Service) Update(ctx context.Context, id int64, req CreatePurchaseOrderRequest) (PurchaseOrder, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return PurchaseOrder{}, err
	}

	doc, err := s.buildDocument(ctx, req)
	if err != nil {
		return PurchaseOrder{}, err
	}

	totals := doc.Totals()
	po := PurchaseOrder{
		ID:         existing.ID,
		Number:     existing.Number,
		SupplierID: req.SupplierID,
		ShopID:     req.ShopID,
		UserID:     req.UserID,
		Date:       doc.Date,
		Notes:      doc.Notes,
		Paid:       doc.PaidAmount,
		Total:      totals.Total,
		Due:        totals.Due,
		Status:     SettlementLabel(reconcile.SettlementOf(totals.Due)),
		Details:    doc.Lines,
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.UpdateHeader(ctx, po); err != nil {
			return fmt.Errorf("update purchase order: %w", err)
		}
		if err := tx.DeleteDetails(ctx, id); err != nil {
			return fmt.Errorf("replace details: %w", err)
		}
		for _, detail := range po.Details {
			if err := tx.InsertDetail(ctx, id, detail); err != nil {
				return fmt.Errorf("insert detail: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	return s.repo.Get(ctx, id)
}

// Get loads one purchase order with its details.
func (s *Service) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	po, err := s.repo.Get(ctx, id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	po.DisplayTotal = shared.FormatRupiah(po.Total)
	po.DisplayDue = shared.FormatRupiah(po.Due)
	return po, nil
}

// List returns headers for the paginated listing.
func (s *Service) List(ctx context.Context, req ListPurchaseOrdersRequest) ([]PurchaseOrder, int, error) {
	list, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].DisplayTotal = shared.FormatRupiah(list[i].Total)
		list[i].DisplayDue = shared.FormatRupiah(list[i].Due)
	}
	return list, total, nil
}

// Delete removes a purchase order and its details.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RefreshSettlements re-derives the stored settlement label of every order
// from its paid/total state and fixes rows that drifted, e.g. after
// payments recorded out of band. Returns the number of rows corrected.
func (s *Service) RefreshSettlements(ctx context.Context) (int, error) {
	states, err := s.repo.ListSettlementStates(ctx)
	if err != nil {
		return 0, err
	}
	fixed := 0
	for _, st := range states {
		want := SettlementLabel(reconcile.SettlementOf(st.Total - st.Paid))
		if st.Status == want {
			continue
		}
		if err := s.repo.UpdateStatus(ctx, st.ID, want); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}

// buildDocument normalizes the request through the reconcile core and runs
// the validation gate plus referential checks.
func (s *Service) buildDocument(ctx context.Context, req CreatePurchaseOrderRequest) (reconcile.Document, error) {
	lines := make([]reconcile.LineItem, 0, len(req.Details))
	for _, d := range req.Details {
		lines = append(lines, reconcile.NewLineItem(d.ProductID, d.Quantity, d.Price, d.Discount))
	}
	if req.PruneEmpty {
		lines = reconcile.PruneEmptyLines(lines)
	}

	doc := reconcile.Document{
		PartyRefs: []reconcile.PartyRef{
			{Field: "supplier_id", ID: req.SupplierID},
			{Field: "shop_id", ID: req.ShopID},
			{Field: "user_id", ID: req.UserID},
		},
		Date:       req.Date,
		Notes:      req.Notes,
		PaidAmount: req.Paid,
		Lines:      lines,
	}.Normalize()

	if err := doc.Validate(); err != nil {
		return reconcile.Document{}, err
	}

	ok, err := s.suppliers.Exists(ctx, req.SupplierID)
	if err != nil {
		return reconcile.Document{}, fmt.Errorf("verify supplier: %w", err)
	}
	if !ok {
		return reconcile.Document{}, fmt.Errorf("supplier %d: %w", req.SupplierID, shared.ErrReferenceMismatch)
	}
	for i, li := range doc.Lines {
		ok, err := s.products.Exists(ctx, li.ProductRef)
		if err != nil {
			return reconcile.Document{}, fmt.Errorf("verify product: %w", err)
		}
		if !ok {
			return reconcile.Document{}, fmt.Errorf("detail %d product %d: %w", i, li.ProductRef, shared.ErrReferenceMismatch)
		}
	}
	return doc, nil
}

func generateNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), uuid.NewString()[:8])
}
