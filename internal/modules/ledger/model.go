package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxType is the direction of a ledger entry. Amounts are always positive.
type TxType string

const (
	TypeDeposit   TxType = "deposit"
	TypeDeduction TxType = "deduction"
	TypeRefund    TxType = "refund"
)

// TxStatus is the two-phase state of a ledger entry. Only pending entries change.
type TxStatus string

const (
	StatusPending  TxStatus = "pending"
	StatusApproved TxStatus = "approved"
	StatusRejected TxStatus = "rejected"
)

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCash         PaymentMethod = "cash"
	MethodMomo         PaymentMethod = "momo"
)

var (
	MinDepositAmount = decimal.NewFromInt(100_000)
	MaxDepositAmount = decimal.NewFromInt(100_000_000)
)

// Apply returns the balance after this entry is applied to before.
func (t TxType) Apply(before, amount decimal.Decimal) decimal.Decimal {
	if t == TypeDeposit {
		return before.Add(amount)
	}
	return before.Sub(amount)
}

// Transaction is one entry in a vendor's deposit ledger.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	VendorID      uuid.UUID       `json:"vendorId"`
	Type          TxType          `json:"type"`
	Status        TxStatus        `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
	OrderID       *uuid.UUID      `json:"orderId"`
	PaymentMethod *PaymentMethod  `json:"paymentMethod"`
	ReviewedBy    *uuid.UUID      `json:"reviewedBy,omitempty"`
	ReviewerNotes string          `json:"reviewerNotes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	ProcessedAt   *time.Time      `json:"processedAt"`
}

// Balance is the vendor's ledger snapshot. PendingDeductions is computed per read.
type Balance struct {
	DepositBalance    decimal.Decimal `json:"depositBalance"`
	DepositTotal      decimal.Decimal `json:"depositTotal"`
	MinimumDeposit    decimal.Decimal `json:"minimumDeposit"`
	LastDepositAt     *time.Time      `json:"lastDepositAt"`
	PendingDeductions string          `json:"pendingDeductions"`
}

// TxFilter narrows ListTransactions. Dates are YYYY-MM-DD; EndDate covers the whole day.
type TxFilter struct {
	Type      string `json:"type" validate:"omitempty,oneof=deposit deduction refund"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `json:"limit" validate:"gte=1,lte=200"`
}

const DefaultTxLimit = 50

type DepositRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required,gte=100000,lte=100000000"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=bank_transfer cash momo"`
	Notes         string          `json:"notes" validate:"max=500"`
}

type ApplyRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=10,max=500"`
}

type DeductionRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}

// NotPendingError is returned when a finalized entry is applied or rejected again.
type NotPendingError struct{ Status TxStatus }

func (e *NotPendingError) Error() string { return fmt.Sprintf("transaction is %s", e.Status) }

// OrderNotDeliveredError is returned when a deduction targets an order that is not delivered yet.
type OrderNotDeliveredError struct{ Status string }

func (e *OrderNotDeliveredError) Error() string {
	return fmt.Sprintf("order is %s, not delivered", e.Status)
}
