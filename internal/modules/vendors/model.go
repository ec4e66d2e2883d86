package vendors

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the vendor account state managed by platform admins.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// BankInfo is where vendor payouts are sent.
type BankInfo struct {
	BankName      string `json:"bankName,omitempty" validate:"max=200"`
	AccountNumber string `json:"accountNumber,omitempty" validate:"max=50"`
	AccountHolder string `json:"accountHolder,omitempty" validate:"max=200"`
	PaypalEmail   string `json:"paypalEmail,omitempty" validate:"omitempty,email"`
}

// Warehouse is the vendor's pickup address for carriers.
type Warehouse struct {
	Address  string `json:"address" validate:"max=500"`
	Ward     string `json:"ward" validate:"max=200"`
	District string `json:"district" validate:"max=200"`
	City     string `json:"city" validate:"max=200"`
	Phone    string `json:"phone" validate:"max=20"`
}

// Vendor is a supplier account. Vendors are never hard-deleted.
type Vendor struct {
	ID                      uuid.UUID       `json:"id"`
	Name                    string          `json:"name"`
	ContactName             string          `json:"contactName"`
	Email                   string          `json:"email"`
	Phone                   string          `json:"phone"`
	Status                  Status          `json:"status"`
	DepositBalance          decimal.Decimal `json:"depositBalance"`
	DepositTotal            decimal.Decimal `json:"depositTotal"`
	MinimumDeposit          decimal.Decimal `json:"minimumDeposit"`
	LastDepositAt           *time.Time      `json:"lastDepositAt"`
	BankInfo                BankInfo        `json:"bankInfo"`
	NotificationPreferences map[string]bool `json:"notificationPreferences"`
	Warehouse               Warehouse       `json:"warehouse"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

// ListQuery filters the admin vendor list.
type ListQuery struct {
	Page   int    `json:"page" validate:"gte=1"`
	Limit  int    `json:"limit" validate:"gte=1,lte=100"`
	Status string `json:"status" validate:"omitempty,oneof=pending active inactive suspended"`
	Search string `json:"search" validate:"max=200"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ListResult struct {
	Vendors    []*Vendor  `json:"vendors"`
	Pagination Pagination `json:"pagination"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active inactive suspended"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// UpdateSettingsRequest carries vendor self-service settings. Absent sections are left unchanged;
// notification preferences are merged key by key.
type UpdateSettingsRequest struct {
	BankInfo                *BankInfo       `json:"bankInfo"`
	NotificationPreferences map[string]bool `json:"notificationPreferences"`
	Warehouse               *Warehouse      `json:"warehouse"`
}
