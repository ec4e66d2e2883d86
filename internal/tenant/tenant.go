// Package tenant carries the authenticated caller identity from the auth
// middleware down to repositories. Vendor-owned tables are only reachable
// through a Vendor scope, so every query is bound to the caller's vendor id.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNoScope is returned when a repository is called without an authenticated vendor.
var ErrNoScope = errors.New("tenant: missing vendor scope")

// Vendor is the authenticated vendor. The zero value is not a valid scope.
type Vendor struct {
	id uuid.UUID
}

// Admin is the authenticated platform administrator.
type Admin struct {
	ID uuid.UUID
}

// NewVendor builds a scope for a vendor id. Only the auth middleware and tests call it.
func NewVendor(id uuid.UUID) Vendor { return Vendor{id: id} }

// ID returns the vendor id, or ErrNoScope for the zero value.
func (v Vendor) ID() (uuid.UUID, error) {
	if v.id == uuid.Nil {
		return uuid.Nil, ErrNoScope
	}
	return v.id, nil
}

// String is for logging.
func (v Vendor) String() string { return v.id.String() }

type vendorKey struct{}
type adminKey struct{}

func WithVendor(ctx context.Context, v Vendor) context.Context {
	return context.WithValue(ctx, vendorKey{}, v)
}

func VendorFrom(ctx context.Context) (Vendor, bool) {
	v, ok := ctx.Value(vendorKey{}).(Vendor)
	if !ok || v.id == uuid.Nil {
		return Vendor{}, false
	}
	return v, true
}

func WithAdmin(ctx context.Context, a Admin) context.Context {
	return context.WithValue(ctx, adminKey{}, a)
}

func AdminFrom(ctx context.Context) (Admin, bool) {
	a, ok := ctx.Value(adminKey{}).(Admin)
	return a, ok
}
