package vendors

import (
	"context"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

// Repository defines the interface for vendor data storage.
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]*Vendor, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Vendor, error)

	// Vendor self-service, always bound to the caller's scope.
	GetProfile(ctx context.Context, scope tenant.Vendor) (*Vendor, error)
	UpdateSettings(ctx context.Context, scope tenant.Vendor, req UpdateSettingsRequest) (*Vendor, error)
}
