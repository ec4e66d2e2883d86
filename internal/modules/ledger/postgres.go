package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const txColumns = `
	id, vendor_id, type, status, amount, balance_before, balance_after,
	description, order_id, payment_method, reviewed_by, reviewer_notes,
	created_at, processed_at`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// ── Vendor-scoped ─────────────────────────────────────────────────────────────

func (r *postgresRepo) GetBalance(ctx context.Context, scope tenant.Vendor) (*Balance, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	b := &Balance{}
	var lastDepositAt sql.NullTime
	var pending decimal.Decimal
	err = r.db.QueryRowContext(ctx, `
		SELECT v.deposit_balance, v.deposit_total, v.minimum_deposit, v.last_deposit_at,
		       COALESCE((
		         SELECT SUM(o.vendor_cost)
		         FROM vendor_orders o
		         WHERE o.vendor_id = v.id
		           AND o.status = 'delivered'
		           AND NOT EXISTS (
		             SELECT 1 FROM deposit_transactions t
		             WHERE t.vendor_id = o.vendor_id
		               AND t.order_id = o.order_id
		               AND t.type = 'deduction'
		               AND t.status = 'approved')
		       ), 0)
		FROM vendors v
		WHERE v.id = $1`, vendorID).
		Scan(&b.DepositBalance, &b.DepositTotal, &b.MinimumDeposit, &lastDepositAt, &pending)
	if err != nil {
		return nil, err
	}
	if lastDepositAt.Valid {
		b.LastDepositAt = &lastDepositAt.Time
	}
	b.PendingDeductions = pending.StringFixed(2)
	return b, nil
}

func (r *postgresRepo) ListTransactions(ctx context.Context, scope tenant.Vendor, f TxFilter) ([]*Transaction, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	where := []string{"vendor_id = $1"}
	args := []interface{}{vendorID}
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.StartDate != "" {
		args = append(args, f.StartDate)
		where = append(where, fmt.Sprintf("created_at >= $%d::date", len(args)))
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		where = append(where, fmt.Sprintf("created_at < $%d::date + INTERVAL '1 day'", len(args)))
	}
	args = append(args, f.Limit)
	query := "SELECT" + txColumns + " FROM deposit_transactions WHERE " + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	txs := []*Transaction{}
	for rows.Next() {
		t, err := scanTx(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// CreatePendingDeposit records a deposit intent. Both balance snapshots equal the current
// balance; the vendor row is untouched until an admin applies the entry.
func (r *postgresRepo) CreatePendingDeposit(ctx context.Context, scope tenant.Vendor, tx *Transaction) (*Transaction, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	return scanTx(r.db.QueryRowContext(ctx, `
		INSERT INTO deposit_transactions
		  (id, vendor_id, type, status, amount, balance_before, balance_after, description, payment_method)
		SELECT $1, v.id, 'deposit', 'pending', $3, v.deposit_balance, v.deposit_balance, $4, $5
		FROM vendors v
		WHERE v.id = $2
		RETURNING`+txColumns,
		tx.ID, vendorID, tx.Amount, tx.Description, tx.PaymentMethod))
}

// ── Admin ─────────────────────────────────────────────────────────────────────

func (r *postgresRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return scanTx(r.db.QueryRowContext(ctx, "SELECT"+txColumns+" FROM deposit_transactions WHERE id = $1", id))
}

// ApplyTransaction moves a pending entry into the vendor balance. The entry and vendor rows
// are locked for the duration of the transaction.
func (r *postgresRepo) ApplyTransaction(ctx context.Context, id, adminID uuid.UUID, notes string, now time.Time) (*Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry, err := scanTx(tx.QueryRowContext(ctx,
		"SELECT"+txColumns+" FROM deposit_transactions WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		return nil, err
	}
	if entry.Status != StatusPending {
		return nil, &NotPendingError{Status: entry.Status}
	}

	var balance, total decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`SELECT deposit_balance, deposit_total FROM vendors WHERE id = $1 FOR UPDATE`, entry.VendorID).
		Scan(&balance, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock vendor: %w", err)
	}

	after := entry.Type.Apply(balance, entry.Amount)
	var lastDepositAt interface{}
	if entry.Type == TypeDeposit {
		total = total.Add(entry.Amount)
		lastDepositAt = now
	}

	applied, err := scanTx(tx.QueryRowContext(ctx, `
		UPDATE deposit_transactions
		SET status = 'approved', balance_before = $1, balance_after = $2,
		    reviewed_by = $3, reviewer_notes = NULLIF($4, ''), processed_at = $5
		WHERE id = $6
		RETURNING`+txColumns,
		balance, after, adminID, notes, now, id))
	if err != nil {
		return nil, fmt.Errorf("approve transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE vendors
		SET deposit_balance = $1, deposit_total = $2,
		    last_deposit_at = COALESCE($3, last_deposit_at), updated_at = $4
		WHERE id = $5`,
		after, total, lastDepositAt, now, entry.VendorID); err != nil {
		return nil, fmt.Errorf("update vendor balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return applied, nil
}

func (r *postgresRepo) RejectTransaction(ctx context.Context, id, adminID uuid.UUID, reason string, now time.Time) (*Transaction, error) {
	rejected, err := scanTx(r.db.QueryRowContext(ctx, `
		UPDATE deposit_transactions
		SET status = 'rejected', reviewed_by = $1, reviewer_notes = $2, processed_at = $3
		WHERE id = $4 AND status = 'pending'
		RETURNING`+txColumns,
		adminID, reason, now, id))
	if !errors.Is(err, sql.ErrNoRows) {
		return rejected, err
	}

	// Nothing updated: either the entry is missing or it is already final.
	var status TxStatus
	if err := r.db.QueryRowContext(ctx, `SELECT status FROM deposit_transactions WHERE id = $1`, id).Scan(&status); err != nil {
		return nil, err
	}
	return nil, &NotPendingError{Status: status}
}

// RecordDeduction charges a delivered order's vendor cost against the vendor balance.
// The partial unique index on (vendor_id, order_id) rejects a second approved deduction.
func (r *postgresRepo) RecordDeduction(ctx context.Context, vendorID, orderID, adminID uuid.UUID, now time.Time) (*Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var balance decimal.Decimal
	err = tx.QueryRowContext(ctx, `SELECT deposit_balance FROM vendors WHERE id = $1 FOR UPDATE`, vendorID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock vendor: %w", err)
	}

	var status string
	var cost decimal.Decimal
	err = tx.QueryRowContext(ctx, `
		SELECT status, vendor_cost FROM vendor_orders
		WHERE vendor_id = $1 AND order_id = $2`, vendorID, orderID).Scan(&status, &cost)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor order: %w", err)
	}
	if status != "delivered" {
		return nil, &OrderNotDeliveredError{Status: status}
	}
	if !cost.IsPositive() {
		return nil, ErrZeroCost
	}

	after := TypeDeduction.Apply(balance, cost)
	entry, err := scanTx(tx.QueryRowContext(ctx, `
		INSERT INTO deposit_transactions
		  (id, vendor_id, type, status, amount, balance_before, balance_after,
		   description, order_id, reviewed_by, processed_at)
		VALUES ($1, $2, 'deduction', 'approved', $3, $4, $5, $6, $7, $8, $9)
		RETURNING`+txColumns,
		uuid.New(), vendorID, cost, balance, after,
		fmt.Sprintf("Khấu trừ chi phí đơn hàng %s", orderID), orderID, adminID, now))
	if err != nil {
		return nil, fmt.Errorf("insert deduction: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE vendors SET deposit_balance = $1, updated_at = $2 WHERE id = $3`,
		after, now, vendorID); err != nil {
		return nil, fmt.Errorf("update vendor balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

// ── Scanners ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanTx(row rowScanner) (*Transaction, error) {
	t := &Transaction{}
	var orderID, reviewedBy uuid.NullUUID
	var method, notes sql.NullString
	var processedAt sql.NullTime
	err := row.Scan(&t.ID, &t.VendorID, &t.Type, &t.Status, &t.Amount, &t.BalanceBefore, &t.BalanceAfter,
		&t.Description, &orderID, &method, &reviewedBy, &notes,
		&t.CreatedAt, &processedAt)
	if err != nil {
		return nil, err
	}
	if orderID.Valid {
		t.OrderID = &orderID.UUID
	}
	if method.Valid {
		m := PaymentMethod(method.String)
		t.PaymentMethod = &m
	}
	if reviewedBy.Valid {
		t.ReviewedBy = &reviewedBy.UUID
	}
	if notes.Valid {
		t.ReviewerNotes = notes.String
	}
	if processedAt.Valid {
		t.ProcessedAt = &processedAt.Time
	}
	return t, nil
}
