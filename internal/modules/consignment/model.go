package consignment

import (
	"fmt"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/modules/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the review state of a consignment request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is a vendor's proposal to consign stock to the platform.
type Request struct {
	ID              uuid.UUID       `json:"id"`
	VendorID        uuid.UUID       `json:"vendorId"`
	ProductID       *uuid.UUID      `json:"productId"`
	Quantity        int             `json:"quantity"`
	ProposedPrice   decimal.Decimal `json:"proposedPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Notes           string          `json:"notes"`
	Status          Status          `json:"status"`
	ReviewerID      *uuid.UUID      `json:"reviewerId"`
	ReviewerNotes   *string         `json:"reviewerNotes"`
	ReviewedAt      *time.Time      `json:"reviewedAt"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ApprovalResult pairs the approved request with the stock row it credited.
// VendorProduct is nil when the request named no catalog product.
type ApprovalResult struct {
	Request       *Request                 `json:"request"`
	VendorProduct *inventory.VendorProduct `json:"vendorProduct"`
}

type SubmitRequest struct {
	ProductID       *uuid.UUID      `json:"productId"`
	Quantity        int             `json:"quantity" validate:"required,gte=1,lte=10000"`
	ProposedPrice   decimal.Decimal `json:"proposedPrice" validate:"gt=0"`
	DiscountPercent decimal.Decimal `json:"discountPercent" validate:"gte=0,lte=100"`
	Notes           string          `json:"notes" validate:"max=1000"`
}

type ListFilter struct {
	Status string `validate:"omitempty,oneof=pending approved rejected"`
}

type ApproveRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

type RejectRequest struct {
	RejectionReason string `json:"rejectionReason" validate:"required,min=10,max=500"`
}

// NotPendingError is returned when a reviewed request is approved or rejected again.
type NotPendingError struct{ Status Status }

func (e *NotPendingError) Error() string { return fmt.Sprintf("consignment request is %s", e.Status) }
