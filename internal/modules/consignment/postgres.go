package consignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/modules/inventory"
	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

const requestColumns = `
	id, vendor_id, product_id, quantity, proposed_price, discount_percent, notes,
	status, reviewer_id, reviewer_notes, reviewed_at, created_at, updated_at`

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL-backed consignment repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, scope tenant.Vendor, req *Request) (*Request, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	var productID interface{}
	if req.ProductID != nil {
		productID = *req.ProductID
	}
	created, err := scanRequest(r.db.QueryRowContext(ctx, `
		INSERT INTO consignment_requests (id, vendor_id, product_id, quantity, proposed_price, discount_percent, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING`+requestColumns,
		req.ID, vendorID, productID, req.Quantity, req.ProposedPrice, req.DiscountPercent, req.Notes))
	if httpx.IsForeignKeyViolation(err) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert consignment request: %w", err)
	}
	return created, nil
}

func (r *postgresRepo) ListByVendor(ctx context.Context, scope tenant.Vendor, status Status) ([]*Request, error) {
	vendorID, err := scope.ID()
	if err != nil {
		return nil, err
	}
	if status == "" {
		return r.query(ctx, "SELECT"+requestColumns+" FROM consignment_requests WHERE vendor_id = $1 ORDER BY created_at DESC", vendorID)
	}
	return r.query(ctx, "SELECT"+requestColumns+" FROM consignment_requests WHERE vendor_id = $1 AND status = $2 ORDER BY created_at DESC", vendorID, status)
}

func (r *postgresRepo) List(ctx context.Context, status Status) ([]*Request, error) {
	if status == "" {
		return r.query(ctx, "SELECT"+requestColumns+" FROM consignment_requests ORDER BY created_at DESC")
	}
	return r.query(ctx, "SELECT"+requestColumns+" FROM consignment_requests WHERE status = $1 ORDER BY created_at DESC", status)
}

// Approve marks the request approved and credits the vendor's stock in one transaction.
// Re-approving the same product adds to quantity_consigned instead of inserting a second row.
func (r *postgresRepo) Approve(ctx context.Context, id, reviewerID uuid.UUID, notes string, now time.Time) (*ApprovalResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	req, err := scanRequest(tx.QueryRowContext(ctx,
		"SELECT"+requestColumns+" FROM consignment_requests WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, &NotPendingError{Status: req.Status}
	}

	approved, err := scanRequest(tx.QueryRowContext(ctx, `
		UPDATE consignment_requests
		SET status = 'approved', reviewer_id = $1, reviewer_notes = NULLIF($2, ''), reviewed_at = $3, updated_at = $3
		WHERE id = $4
		RETURNING`+requestColumns,
		reviewerID, notes, now, id))
	if err != nil {
		return nil, fmt.Errorf("approve consignment request: %w", err)
	}

	result := &ApprovalResult{Request: approved}
	if approved.ProductID != nil {
		vp := &inventory.VendorProduct{}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO vendor_products AS vp
			    (id, vendor_id, product_id, consignment_price, discount_percent, quantity_consigned, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 'active', $7, $7)
			ON CONFLICT (vendor_id, product_id) DO UPDATE
			SET quantity_consigned = vp.quantity_consigned + EXCLUDED.quantity_consigned,
			    updated_at = EXCLUDED.updated_at
			RETURNING`+inventory.Columns,
			uuid.New(), approved.VendorID, *approved.ProductID, approved.ProposedPrice,
			approved.DiscountPercent, approved.Quantity, now).
			Scan(inventory.ScanDest(vp)...)
		if err != nil {
			return nil, fmt.Errorf("upsert vendor product: %w", err)
		}
		vp.Derive()
		result.VendorProduct = vp
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string, now time.Time) (*Request, error) {
	rejected, err := scanRequest(r.db.QueryRowContext(ctx, `
		UPDATE consignment_requests
		SET status = 'rejected', reviewer_id = $1, reviewer_notes = $2, reviewed_at = $3, updated_at = $3
		WHERE id = $4 AND status = 'pending'
		RETURNING`+requestColumns,
		reviewerID, reason, now, id))
	if !errors.Is(err, sql.ErrNoRows) {
		return rejected, err
	}

	var status Status
	if err := r.db.QueryRowContext(ctx, `SELECT status FROM consignment_requests WHERE id = $1`, id).Scan(&status); err != nil {
		return nil, err
	}
	return nil, &NotPendingError{Status: status}
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...interface{}) ([]*Request, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list consignment requests: %w", err)
	}
	defer rows.Close()
	out := []*Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanRequest(row rowScanner) (*Request, error) {
	req := &Request{}
	var productID, reviewerID uuid.NullUUID
	var reviewerNotes sql.NullString
	var reviewedAt sql.NullTime
	err := row.Scan(&req.ID, &req.VendorID, &productID, &req.Quantity, &req.ProposedPrice, &req.DiscountPercent,
		&req.Notes, &req.Status, &reviewerID, &reviewerNotes, &reviewedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if productID.Valid {
		req.ProductID = &productID.UUID
	}
	if reviewerID.Valid {
		req.ReviewerID = &reviewerID.UUID
	}
	if reviewerNotes.Valid {
		req.ReviewerNotes = &reviewerNotes.String
	}
	if reviewedAt.Valid {
		req.ReviewedAt = &reviewedAt.Time
	}
	return req, nil
}
