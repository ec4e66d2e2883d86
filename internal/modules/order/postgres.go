package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

const orderColumns = `
	id, vendor_id, order_id, customer_name, customer_phone, customer_address,
	cod_amount, vendor_cost, commission_amount, shipping_provider, shipping_code,
	status, processing_at, shipped_at, delivered_at, notes, created_at, updated_at`

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL-backed order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) List(ctx context.Context, scope tenant.Vendor, f Filter) ([]*VendorOrder, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	where := []string{"vendor_id = $1"}
	args := []interface{}{vendorID}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.EndDate != nil {
		args = append(args, f.EndDate.AddDate(0, 0, 1))
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT"+orderColumns+" FROM vendor_orders WHERE "+strings.Join(where, " AND ")+" ORDER BY created_at DESC",
		args...)
	if err != nil {
		return nil, fmt.Errorf("list vendor orders: %w", err)
	}
	defer rows.Close()
	orders := []*VendorOrder{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) Get(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorOrder, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	return scanOrder(r.db.QueryRowContext(ctx,
		"SELECT"+orderColumns+" FROM vendor_orders WHERE id = $1 AND vendor_id = $2", id, vendorID))
}

// MarkPacked moves a pending or processing order to processing in one conditional update.
// sql.ErrNoRows means the order is missing, foreign, or in a non-packable state.
func (r *postgresRepo) MarkPacked(ctx context.Context, scope tenant.Vendor, id uuid.UUID, notes string, now time.Time) (*VendorOrder, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	return scanOrder(r.db.QueryRowContext(ctx, `
		UPDATE vendor_orders
		SET status = 'processing', processing_at = $1,
		    notes = COALESCE(NULLIF($2, ''), notes), updated_at = $1
		WHERE id = $3 AND vendor_id = $4 AND status IN ('pending', 'processing')
		RETURNING`+orderColumns,
		now, notes, id, vendorID))
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*VendorOrder, error) {
	return scanOrder(r.db.QueryRowContext(ctx, "SELECT"+orderColumns+" FROM vendor_orders WHERE id = $1", id))
}

// UpdateStatus applies a carrier transition only if the order is still in from.
func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, provider, code string, now time.Time) (*VendorOrder, error) {
	return scanOrder(r.db.QueryRowContext(ctx, `
		UPDATE vendor_orders
		SET status = $1,
		    shipped_at = CASE WHEN $1 = 'shipped' THEN $2 ELSE shipped_at END,
		    delivered_at = CASE WHEN $1 = 'delivered' THEN $2 ELSE delivered_at END,
		    processing_at = CASE WHEN $1 = 'processing' THEN $2 ELSE processing_at END,
		    shipping_provider = COALESCE(NULLIF($3, ''), shipping_provider),
		    shipping_code = COALESCE(NULLIF($4, ''), shipping_code),
		    updated_at = $2
		WHERE id = $5 AND status = $6
		RETURNING`+orderColumns,
		to, now, provider, code, id, from))
}

// ── Scanners ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanOrder(row rowScanner) (*VendorOrder, error) {
	o := &VendorOrder{}
	var provider, code, notes sql.NullString
	var processingAt, shippedAt, deliveredAt sql.NullTime
	err := row.Scan(&o.ID, &o.VendorID, &o.OrderID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
		&o.CODAmount, &o.VendorCost, &o.CommissionAmount, &provider, &code,
		&o.Status, &processingAt, &shippedAt, &deliveredAt, &notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if provider.Valid {
		o.ShippingProvider = &provider.String
	}
	if code.Valid {
		o.ShippingCode = &code.String
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	if processingAt.Valid {
		o.ProcessingAt = &processingAt.Time
	}
	if shippedAt.Valid {
		o.ShippedAt = &shippedAt.Time
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	return o, nil
}
