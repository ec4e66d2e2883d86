package order

import (
	"context"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

// Repository defines persistence for vendor orders.
type Repository interface {
	// Vendor-scoped: every query carries the caller's vendor id.
	List(ctx context.Context, scope tenant.Vendor, f Filter) ([]*VendorOrder, error)
	Get(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorOrder, error)
	MarkPacked(ctx context.Context, scope tenant.Vendor, id uuid.UUID, notes string, now time.Time) (*VendorOrder, error)

	// Carrier events
	GetByID(ctx context.Context, id uuid.UUID) (*VendorOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, provider, code string, now time.Time) (*VendorOrder, error)
}
