package stockopname

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
)

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed stock opname repository.
func NewRepository(db *pgxpool.Pool) RepositoryPort {
	return &repository{db: db}
}

const opnameColumns = `id, user_id, shop_id, product_id, initial_stock, counted_stock, difference, status, date, notes, created_at, updated_at`

func (r *repository) Create(ctx context.Context, op Opname) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO stock_opnames
		 (user_id, shop_id, product_id, initial_stock, counted_stock, difference, status, date, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		 RETURNING id`,
		op.UserID, op.ShopID, op.ProductID, op.InitialStock, op.CountedStock,
		op.Difference, op.Status, op.Date, op.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, op Opname) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE stock_opnames
		 SET user_id = $1, shop_id = $2, product_id = $3, initial_stock = $4, counted_stock = $5,
		     difference = $6, status = $7, date = $8, notes = $9, updated_at = NOW()
		 WHERE id = $10`,
		op.UserID, op.ShopID, op.ProductID, op.InitialStock, op.CountedStock,
		op.Difference, op.Status, op.Date, op.Notes, op.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (Opname, error) {
	var op Opname
	err := r.db.QueryRow(ctx,
		`SELECT `+opnameColumns+` FROM stock_opnames WHERE id = $1`, id,
	).Scan(&op.ID, &op.UserID, &op.ShopID, &op.ProductID, &op.InitialStock, &op.CountedStock,
		&op.Difference, &op.Status, &op.Date, &op.Notes, &op.CreatedAt, &op.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Opname{}, httpx.ErrNotFound
	}
	return op, err
}

func (r *repository) List(ctx context.Context, req ListOpnamesRequest) ([]Opname, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 0

	if req.ShopID != nil {
		argPos++
		where += fmt.Sprintf(" AND shop_id = $%d", argPos)
		args = append(args, *req.ShopID)
	}
	if req.ProductID != nil {
		argPos++
		where += fmt.Sprintf(" AND product_id = $%d", argPos)
		args = append(args, *req.ProductID)
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
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stock_opnames`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + opnameColumns + ` FROM stock_opnames` + where + ` ORDER BY date DESC, id DESC`
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

	var out []Opname
	for rows.Next() {
		var op Opname
		if err := rows.Scan(&op.ID, &op.UserID, &op.ShopID, &op.ProductID, &op.InitialStock, &op.CountedStock,
			&op.Difference, &op.Status, &op.Date, &op.Notes, &op.CreatedAt, &op.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, op)
	}
	return out, total, rows.Err()
}

func (r *repository) ListCountStates(ctx context.Context) ([]CountState, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, initial_stock, counted_stock, difference, status FROM stock_opnames`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CountState
	for rows.Next() {
		var st CountState
		if err := rows.Scan(&st.ID, &st.InitialStock, &st.CountedStock, &st.Difference, &st.Status); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *repository) UpdateDerived(ctx context.Context, id int64, difference int64, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE stock_opnames SET difference = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		difference, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stock_opnames WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
