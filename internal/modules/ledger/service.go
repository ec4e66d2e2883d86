package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/lock"
	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/georgemunganga/vendorhub-backend/internal/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgVendorNotFound = "Không tìm thấy nhà cung cấp"
	msgTxNotFound     = "Không tìm thấy giao dịch"
	msgOrderNotFound  = "Không tìm thấy đơn hàng"
	msgLedgerBusy     = "Số dư đang được cập nhật, vui lòng thử lại"
	msgDuplicateDeduc = "Đơn hàng này đã được khấu trừ"
	msgZeroCost       = "Đơn hàng không có chi phí cần khấu trừ"
)

var methodLabels = map[PaymentMethod]string{
	MethodBankTransfer: "chuyển khoản ngân hàng",
	MethodCash:         "tiền mặt",
	MethodMomo:         "ví MoMo",
}

// Service defines ledger business logic.
type Service interface {
	// Vendor
	GetBalance(ctx context.Context, scope tenant.Vendor) (*Balance, error)
	ListTransactions(ctx context.Context, scope tenant.Vendor, f TxFilter) ([]*Transaction, error)
	RequestDeposit(ctx context.Context, scope tenant.Vendor, req DepositRequest) (*Transaction, error)
	ExportTransactions(ctx context.Context, scope tenant.Vendor, f TxFilter) ([]byte, error)

	// Admin
	ApplyTransaction(ctx context.Context, admin tenant.Admin, id uuid.UUID, req ApplyRequest) (*Transaction, error)
	RejectTransaction(ctx context.Context, admin tenant.Admin, id uuid.UUID, req RejectRequest) (*Transaction, error)
	RecordDeduction(ctx context.Context, admin tenant.Admin, vendorID uuid.UUID, req DeductionRequest) (*Transaction, error)
}

type service struct {
	repo   Repository
	locker lock.Locker
	log    *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, locker lock.Locker, log *zap.Logger) Service {
	return &service{repo: repo, locker: locker, log: log, now: time.Now}
}

func (s *service) GetBalance(ctx context.Context, scope tenant.Vendor) (*Balance, error) {
	b, err := s.repo.GetBalance(ctx, scope)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(msgVendorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

func (s *service) ListTransactions(ctx context.Context, scope tenant.Vendor, f TxFilter) ([]*Transaction, error) {
	if err := validate.Struct(f); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, scope, f)
}

func (s *service) RequestDeposit(ctx context.Context, scope tenant.Vendor, req DepositRequest) (*Transaction, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	method := PaymentMethod(req.PaymentMethod)
	description := fmt.Sprintf("Nạp tiền ký quỹ qua %s", methodLabels[method])
	if req.Notes != "" {
		description += ": " + req.Notes
	}
	entry := &Transaction{
		ID:            uuid.New(),
		Type:          TypeDeposit,
		Status:        StatusPending,
		Amount:        req.Amount,
		Description:   description,
		PaymentMethod: &method,
	}

	var created *Transaction
	err := s.withLedgerLock(ctx, scope.String(), func(ctx context.Context) error {
		var err error
		created, err = s.repo.CreatePendingDeposit(ctx, scope, entry)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(msgVendorNotFound)
	}
	if err != nil {
		return nil, s.mapLockErr(err, "request deposit")
	}
	s.log.Info("deposit requested",
		zap.String("vendor_id", scope.String()),
		zap.String("transaction_id", created.ID.String()),
		zap.String("amount", created.Amount.String()))
	return created, nil
}

func (s *service) ApplyTransaction(ctx context.Context, admin tenant.Admin, id uuid.UUID, req ApplyRequest) (*Transaction, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	entry, err := s.repo.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(msgTxNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	var applied *Transaction
	err = s.withLedgerLock(ctx, entry.VendorID.String(), func(ctx context.Context) error {
		var err error
		applied, err = s.repo.ApplyTransaction(ctx, id, admin.ID, req.Notes, s.now())
		return err
	})
	if err != nil {
		return nil, s.mapWriteErr(err, "apply transaction")
	}
	s.log.Info("transaction applied",
		zap.String("vendor_id", applied.VendorID.String()),
		zap.String("transaction_id", applied.ID.String()),
		zap.String("type", string(applied.Type)),
		zap.String("balance_after", applied.BalanceAfter.String()),
		zap.String("admin_id", admin.ID.String()))
	return applied, nil
}

func (s *service) RejectTransaction(ctx context.Context, admin tenant.Admin, id uuid.UUID, req RejectRequest) (*Transaction, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	rejected, err := s.repo.RejectTransaction(ctx, id, admin.ID, req.Reason, s.now())
	if err != nil {
		return nil, s.mapWriteErr(err, "reject transaction")
	}
	return rejected, nil
}

func (s *service) RecordDeduction(ctx context.Context, admin tenant.Admin, vendorID uuid.UUID, req DeductionRequest) (*Transaction, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var entry *Transaction
	err := s.withLedgerLock(ctx, vendorID.String(), func(ctx context.Context) error {
		var err error
		entry, err = s.repo.RecordDeduction(ctx, vendorID, req.OrderID, admin.ID, s.now())
		return err
	})
	if err != nil {
		return nil, s.mapWriteErr(err, "record deduction")
	}
	s.log.Info("deduction recorded",
		zap.String("vendor_id", vendorID.String()),
		zap.String("order_id", req.OrderID.String()),
		zap.String("amount", entry.Amount.String()))
	return entry, nil
}

func (s *service) withLedgerLock(ctx context.Context, vendorID string, fn func(ctx context.Context) error) error {
	return s.locker.WithLock(ctx, lock.LedgerKey(vendorID), fn)
}

func (s *service) mapLockErr(err error, op string) error {
	if errors.Is(err, lock.ErrBusy) {
		return httpx.Conflict(msgLedgerBusy)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *service) mapWriteErr(err error, op string) error {
	var notPending *NotPendingError
	var notDelivered *OrderNotDeliveredError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return httpx.NotFound(msgTxNotFound)
	case errors.Is(err, ErrVendorNotFound):
		return httpx.NotFound(msgVendorNotFound)
	case errors.Is(err, ErrOrderNotFound):
		return httpx.NotFound(msgOrderNotFound)
	case errors.Is(err, ErrZeroCost):
		return httpx.State(msgZeroCost)
	case errors.As(err, &notPending):
		return httpx.State("Giao dịch %s", statusPhrase(notPending.Status))
	case errors.As(err, &notDelivered):
		return httpx.State("Chỉ khấu trừ được đơn hàng đã giao (trạng thái hiện tại: %s)", notDelivered.Status)
	case httpx.IsUniqueViolation(err):
		return httpx.Conflict(msgDuplicateDeduc)
	}
	return s.mapLockErr(err, op)
}

func statusPhrase(st TxStatus) string {
	switch st {
	case StatusApproved:
		return "đã được duyệt"
	case StatusRejected:
		return "đã bị từ chối"
	}
	return string(st)
}
