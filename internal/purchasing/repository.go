package purchasing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/db"
	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
	"github.com/koperasi-erp/koperasi-erp/internal/reconcile"
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed purchase order repository.
func NewRepository(pool *pgxpool.Pool) RepositoryPort {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const headerColumns = `id, number, supplier_id, shop_id, user_id, date, notes, paid, total, due, status, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	var po PurchaseOrder
	err := r.db.QueryRow(ctx,
		`SELECT `+headerColumns+` FROM purchase_orders WHERE id = $1`, id,
	).Scan(&po.ID, &po.Number, &po.SupplierID, &po.ShopID, &po.UserID, &po.Date, &po.Notes,
		&po.Paid, &po.Total, &po.Due, &po.Status, &po.CreatedAt, &po.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PurchaseOrder{}, httpx.ErrNotFound
	}
	if err != nil {
		return PurchaseOrder{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT product_id, quantity, price, discount, tax, total
		 FROM purchase_order_details WHERE purchase_order_id = $1 ORDER BY id`, id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var li reconcile.LineItem
		if err := rows.Scan(&li.ProductRef, &li.Quantity, &li.UnitPrice, &li.Discount, &li.Tax, &li.Total); err != nil {
			return PurchaseOrder{}, err
		}
		po.Details = append(po.Details, li)
	}
	return po, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListPurchaseOrdersRequest) ([]PurchaseOrder, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 0

	if req.SupplierID != nil {
		argPos++
		where += fmt.Sprintf(" AND supplier_id = $%d", argPos)
		args = append(args, *req.SupplierID)
	}
	if req.Status != "" {
		argPos++
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, req.Status)
	}
	if req.DateFrom != nil {
		argPos++
		where += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *req.DateFrom)
	}
	if req.DateTo != nil {
		argPos++
		where += fmt.Sprintf(" AND date <= $%d", argPos)
		args = append(args, *req.DateTo)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + headerColumns + ` FROM purchase_orders` + where + ` ORDER BY date DESC, id DESC`
	if req.Limit > 0 {
		argPos++
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, req.Limit)
		argPos++
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, req.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []PurchaseOrder
	for rows.Next() {
		var po PurchaseOrder
		if err := rows.Scan(&po.ID, &po.Number, &po.SupplierID, &po.ShopID, &po.UserID, &po.Date, &po.Notes,
			&po.Paid, &po.Total, &po.Due, &po.Status, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, po)
	}
	return out, total, rows.Err()
}

func (r *repository) ListSettlementStates(ctx context.Context) ([]SettlementState, error) {
	rows, err := r.db.Query(ctx, `SELECT id, total, paid, status FROM purchase_orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SettlementState
	for rows.Next() {
		var st SettlementState
		if err := rows.Scan(&st.ID, &st.Total, &st.Paid, &st.Status); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE purchase_orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_details WHERE purchase_order_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return httpx.ErrNotFound
		}
		return nil
	})
}

func (r *repository) CreateHeader(ctx context.Context, po PurchaseOrder) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO purchase_orders (number, supplier_id, shop_id, user_id, date, notes, paid, total, due, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		 RETURNING id`,
		po.Number, po.SupplierID, po.ShopID, po.UserID, po.Date, po.Notes, po.Paid, po.Total, po.Due, po.Status,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateHeader(ctx context.Context, po PurchaseOrder) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE purchase_orders
		 SET supplier_id = $1, shop_id = $2, user_id = $3, date = $4, notes = $5,
		     paid = $6, total = $7, due = $8, status = $9, updated_at = NOW()
		 WHERE id = $10`,
		po.SupplierID, po.ShopID, po.UserID, po.Date, po.Notes, po.Paid, po.Total, po.Due, po.Status, po.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteDetails(ctx context.Context, poID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM purchase_order_details WHERE purchase_order_id = $1`, poID)
	return err
}

func (r *repository) InsertDetail(ctx context.Context, poID int64, detail reconcile.LineItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO purchase_order_details (purchase_order_id, product_id, quantity, price, discount, tax, total)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		poID, detail.ProductRef, detail.Quantity, detail.UnitPrice, detail.Discount, detail.Tax, detail.Total)
	return err
}
