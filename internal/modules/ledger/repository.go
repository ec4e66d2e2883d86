package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
)

var (
	// ErrVendorNotFound and ErrOrderNotFound distinguish the missing row inside multi-row writes.
	ErrVendorNotFound = errors.New("vendor not found")
	ErrOrderNotFound  = errors.New("vendor order not found")
	ErrZeroCost       = errors.New("order has no vendor cost")
)

// Repository defines data access for the deposit ledger.
type Repository interface {
	// Vendor-scoped
	GetBalance(ctx context.Context, scope tenant.Vendor) (*Balance, error)
	ListTransactions(ctx context.Context, scope tenant.Vendor, f TxFilter) ([]*Transaction, error)
	CreatePendingDeposit(ctx context.Context, scope tenant.Vendor, tx *Transaction) (*Transaction, error)

	// Admin
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ApplyTransaction(ctx context.Context, id, adminID uuid.UUID, notes string, now time.Time) (*Transaction, error)
	RejectTransaction(ctx context.Context, id, adminID uuid.UUID, reason string, now time.Time) (*Transaction, error)
	RecordDeduction(ctx context.Context, vendorID, orderID, adminID uuid.UUID, now time.Time) (*Transaction, error)
}
