package consignment

import (
	"context"
	"errors"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

// ErrProductNotFound means the referenced catalog product does not exist.
var ErrProductNotFound = errors.New("catalog product not found")

// Repository defines consignment request storage.
type Repository interface {
	// Vendor
	Create(ctx context.Context, scope tenant.Vendor, req *Request) (*Request, error)
	ListByVendor(ctx context.Context, scope tenant.Vendor, status Status) ([]*Request, error)

	// Admin
	List(ctx context.Context, status Status) ([]*Request, error)
	Approve(ctx context.Context, id, reviewerID uuid.UUID, notes string, now time.Time) (*ApprovalResult, error)
	Reject(ctx context.Context, id, reviewerID uuid.UUID, reason string, now time.Time) (*Request, error)
}
