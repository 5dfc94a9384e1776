package installments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
)

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed installments repository.
func NewRepository(db *pgxpool.Pool) RepositoryPort {
	return &repository{db: db}
}

func (r *repository) LoanExists(ctx context.Context, pinjamanID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pinjaman WHERE id = $1)`, pinjamanID).Scan(&exists)
	return exists, err
}

func (r *repository) DetailBelongsToLoan(ctx context.Context, detailID, pinjamanID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pinjaman_details WHERE id = $1 AND pinjaman_id = $2)`,
		detailID, pinjamanID).Scan(&exists)
	return exists, err
}

func (r *repository) Schedule(ctx context.Context, pinjamanID int64) ([]ScheduleEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, amount FROM pinjaman_details WHERE pinjaman_id = $1 ORDER BY id`, pinjamanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScheduleEntry
	for rows.Next() {
		var entry ScheduleEntry
		if err := rows.Scan(&entry.ID, &entry.Amount); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *repository) CreatePayment(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO installment_payments
		 (pinjaman_id, pinjaman_detail_id, amount, type, payment_method, payment_channel, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 RETURNING id`,
		p.PinjamanID, p.PinjamanDetailID, p.Amount, p.Type, p.PaymentMethod, p.PaymentChannel,
	).Scan(&id)
	return id, err
}

const paymentColumns = `id, pinjaman_id, pinjaman_detail_id, amount, type, payment_method, payment_channel, created_at`

func (r *repository) GetPayment(ctx context.Context, id int64) (Payment, error) {
	var p Payment
	err := r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM installment_payments WHERE id = $1`, id,
	).Scan(&p.ID, &p.PinjamanID, &p.PinjamanDetailID, &p.Amount, &p.Type,
		&p.PaymentMethod, &p.PaymentChannel, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, httpx.ErrNotFound
	}
	return p, err
}

func (r *repository) ListPayments(ctx context.Context, pinjamanID int64) ([]Payment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+paymentColumns+` FROM installment_payments WHERE pinjaman_id = $1 ORDER BY created_at, id`,
		pinjamanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.PinjamanID, &p.PinjamanDetailID, &p.Amount, &p.Type,
			&p.PaymentMethod, &p.PaymentChannel, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
