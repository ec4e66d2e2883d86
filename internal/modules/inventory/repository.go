package inventory

import (
	"context"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

// Repository defines vendor product storage. All methods are vendor-scoped.
type Repository interface {
	ListProducts(ctx context.Context, scope tenant.Vendor) ([]*VendorProduct, error)
	GetProduct(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorProduct, error)
	IncreaseQuantity(ctx context.Context, scope tenant.Vendor, id uuid.UUID, delta int) (*VendorProduct, error)
}
