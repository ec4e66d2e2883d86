package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment state of a vendor order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusReturned   Status = "returned"
)

// validTransitions defines the carrier-driven state machine.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusReturned},
	StatusCancelled:  {},
	StatusReturned:   {},
}

// CanTransition returns true if the status transition is valid.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Packable reports whether mark-packed may run from s.
func (s Status) Packable() bool { return s == StatusPending || s == StatusProcessing }

func (s Status) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

var statusLabels = map[Status]string{
	StatusPending:    "chờ xử lý",
	StatusProcessing: "đang xử lý",
	StatusShipped:    "đang giao",
	StatusDelivered:  "đã giao",
	StatusCancelled:  "đã hủy",
	StatusReturned:   "đã hoàn trả",
}

// VendorOrder is the vendor's share of a customer order.
type VendorOrder struct {
	ID               uuid.UUID       `json:"id"`
	VendorID         uuid.UUID       `json:"vendorId"`
	OrderID          uuid.UUID       `json:"orderId"`
	CustomerName     string          `json:"customerName"`
	CustomerPhone    string          `json:"customerPhone"`
	CustomerAddress  string          `json:"customerAddress"`
	CODAmount        decimal.Decimal `json:"codAmount"`
	VendorCost       decimal.Decimal `json:"vendorCost"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
	ShippingProvider *string         `json:"shippingProvider"`
	ShippingCode     *string         `json:"shippingCode"`
	Status           Status          `json:"status"`
	ProcessingAt     *time.Time      `json:"processingAt"`
	ShippedAt        *time.Time      `json:"shippedAt"`
	DeliveredAt      *time.Time      `json:"deliveredAt"`
	Notes            *string         `json:"notes"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Filter narrows ListOrders. Unknown statuses and unparsable dates are dropped, not rejected.
type Filter struct {
	Status    Status
	StartDate *time.Time
	EndDate   *time.Time
}

type MarkPackedRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

// CarrierStatusRequest is an external carrier event applied by platform admins.
type CarrierStatusRequest struct {
	Status           string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled returned"`
	ShippingProvider string `json:"shippingProvider" validate:"omitempty,oneof=GHN GHTK ViettelPost"`
	ShippingCode     string `json:"shippingCode" validate:"max=100"`
}
