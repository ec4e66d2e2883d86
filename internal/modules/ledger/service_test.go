package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/lock"
	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRepo keeps one vendor's balance in memory.
type fakeRepo struct {
	vendorID uuid.UUID
	balance  decimal.Decimal
	txs      map[uuid.UUID]*Transaction

	applyErr  error
	rejectErr error
	deductErr error
}

func newFakeRepo(vendorID uuid.UUID, balance int64) *fakeRepo {
	return &fakeRepo{vendorID: vendorID, balance: decimal.NewFromInt(balance), txs: map[uuid.UUID]*Transaction{}}
}

func (f *fakeRepo) owns(scope tenant.Vendor) error {
	id, err := scope.ID()
	if err != nil {
		return err
	}
	if id != f.vendorID {
		return sql.ErrNoRows
	}
	return nil
}

func (f *fakeRepo) GetBalance(_ context.Context, scope tenant.Vendor) (*Balance, error) {
	if err := f.owns(scope); err != nil {
		return nil, err
	}
	return &Balance{DepositBalance: f.balance, PendingDeductions: "0.00"}, nil
}

func (f *fakeRepo) ListTransactions(_ context.Context, scope tenant.Vendor, _ TxFilter) ([]*Transaction, error) {
	if err := f.owns(scope); err != nil {
		return []*Transaction{}, nil
	}
	out := []*Transaction{}
	for _, t := range f.txs {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeRepo) CreatePendingDeposit(_ context.Context, scope tenant.Vendor, tx *Transaction) (*Transaction, error) {
	if err := f.owns(scope); err != nil {
		return nil, err
	}
	created := *tx
	created.VendorID = f.vendorID
	created.BalanceBefore = f.balance
	created.BalanceAfter = f.balance
	created.CreatedAt = time.Now()
	f.txs[created.ID] = &created
	return &created, nil
}

func (f *fakeRepo) GetTransaction(_ context.Context, id uuid.UUID) (*Transaction, error) {
	t, ok := f.txs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeRepo) ApplyTransaction(_ context.Context, id, adminID uuid.UUID, notes string, now time.Time) (*Transaction, error) {
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	t, ok := f.txs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if t.Status != StatusPending {
		return nil, &NotPendingError{Status: t.Status}
	}
	t.BalanceBefore = f.balance
	t.BalanceAfter = t.Type.Apply(f.balance, t.Amount)
	f.balance = t.BalanceAfter
	t.Status = StatusApproved
	t.ProcessedAt = &now
	return t, nil
}

func (f *fakeRepo) RejectTransaction(_ context.Context, id, adminID uuid.UUID, reason string, now time.Time) (*Transaction, error) {
	if f.rejectErr != nil {
		return nil, f.rejectErr
	}
	t, ok := f.txs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if t.Status != StatusPending {
		return nil, &NotPendingError{Status: t.Status}
	}
	t.Status = StatusRejected
	t.ReviewerNotes = reason
	return t, nil
}

func (f *fakeRepo) RecordDeduction(_ context.Context, vendorID, orderID, adminID uuid.UUID, now time.Time) (*Transaction, error) {
	if f.deductErr != nil {
		return nil, f.deductErr
	}
	t := &Transaction{ID: uuid.New(), VendorID: vendorID, Type: TypeDeduction, Status: StatusApproved, Amount: decimal.NewFromInt(1), OrderID: &orderID}
	f.txs[t.ID] = t
	return t, nil
}

type busyLocker struct{}

func (busyLocker) WithLock(context.Context, string, func(context.Context) error) error {
	return lock.ErrBusy
}

func newTestService(repo Repository) Service {
	return NewService(repo, lock.Noop(), zap.NewNop())
}

func asValidation(t *testing.T, err error) *httpx.ValidationError {
	t.Helper()
	var verr *httpx.ValidationError
	require.True(t, errors.As(err, &verr), "want validation error, got %v", err)
	return verr
}

func TestRequestDeposit_AmountBounds(t *testing.T) {
	vendorID := uuid.New()
	svc := newTestService(newFakeRepo(vendorID, 2_000_000))
	scope := tenant.NewVendor(vendorID)

	cases := []struct {
		amount int64
		ok     bool
	}{
		{99_999, false},
		{100_000, true},
		{100_000_000, true},
		{100_000_001, false},
	}
	for _, tc := range cases {
		_, err := svc.RequestDeposit(context.Background(), scope, DepositRequest{
			Amount:        decimal.NewFromInt(tc.amount),
			PaymentMethod: "bank_transfer",
		})
		if tc.ok {
			assert.NoError(t, err, "amount %d", tc.amount)
			continue
		}
		verr := asValidation(t, err)
		assert.Equal(t, "amount", verr.Details[0].Field)
	}
}

func TestRequestDeposit_PendingWithUnchangedSnapshot(t *testing.T) {
	vendorID := uuid.New()
	repo := newFakeRepo(vendorID, 2_000_000)
	svc := newTestService(repo)

	tx, err := svc.RequestDeposit(context.Background(), tenant.NewVendor(vendorID), DepositRequest{
		Amount:        decimal.NewFromInt(500_000),
		PaymentMethod: "momo",
		Notes:         "Chuyển khoản tháng 3",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, tx.Status)
	assert.Equal(t, TypeDeposit, tx.Type)
	assert.True(t, tx.BalanceBefore.Equal(tx.BalanceAfter))
	assert.True(t, repo.balance.Equal(decimal.NewFromInt(2_000_000)), "balance must not move until applied")
	assert.Contains(t, tx.Description, "ví MoMo")
	assert.Contains(t, tx.Description, "Chuyển khoản tháng 3")
}

func TestRequestDeposit_Errors(t *testing.T) {
	vendorID := uuid.New()
	svc := newTestService(newFakeRepo(vendorID, 0))

	_, err := svc.RequestDeposit(context.Background(), tenant.NewVendor(vendorID), DepositRequest{
		Amount:        decimal.NewFromInt(200_000),
		PaymentMethod: "paypal",
	})
	verr := asValidation(t, err)
	assert.Equal(t, "paymentMethod", verr.Details[0].Field)

	_, err = svc.RequestDeposit(context.Background(), tenant.NewVendor(uuid.New()), DepositRequest{
		Amount:        decimal.NewFromInt(200_000),
		PaymentMethod: "cash",
	})
	var nf *httpx.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestRequestDeposit_LockBusy(t *testing.T) {
	vendorID := uuid.New()
	svc := NewService(newFakeRepo(vendorID, 0), busyLocker{}, zap.NewNop())

	_, err := svc.RequestDeposit(context.Background(), tenant.NewVendor(vendorID), DepositRequest{
		Amount:        decimal.NewFromInt(200_000),
		PaymentMethod: "cash",
	})
	var conflict *httpx.ConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestListTransactions_InvalidFilters(t *testing.T) {
	vendorID := uuid.New()
	svc := newTestService(newFakeRepo(vendorID, 0))

	_, err := svc.ListTransactions(context.Background(), tenant.NewVendor(vendorID), TxFilter{
		Type:      "withdrawal",
		StartDate: "01/03/2024",
		Limit:     500,
	})
	verr := asValidation(t, err)
	fields := []string{}
	for _, d := range verr.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"type", "startDate", "limit"}, fields)

	_, err = svc.ListTransactions(context.Background(), tenant.NewVendor(vendorID), TxFilter{
		Type: "deposit", StartDate: "2024-03-01", EndDate: "2024-03-31", Limit: 50,
	})
	assert.NoError(t, err)
}

func TestApplyTransaction_MovesBalanceOnce(t *testing.T) {
	vendorID := uuid.New()
	repo := newFakeRepo(vendorID, 1_000_000)
	svc := newTestService(repo)
	admin := tenant.Admin{ID: uuid.New()}

	pending, err := svc.RequestDeposit(context.Background(), tenant.NewVendor(vendorID), DepositRequest{
		Amount: decimal.NewFromInt(500_000), PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	applied, err := svc.ApplyTransaction(context.Background(), admin, pending.ID, ApplyRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, applied.Status)
	assert.True(t, applied.BalanceAfter.Equal(decimal.NewFromInt(1_500_000)))
	assert.True(t, repo.balance.Equal(decimal.NewFromInt(1_500_000)))

	_, err = svc.ApplyTransaction(context.Background(), admin, pending.ID, ApplyRequest{})
	var state *httpx.StateError
	require.True(t, errors.As(err, &state))
	assert.Equal(t, "Giao dịch đã được duyệt", state.Message)
	assert.True(t, repo.balance.Equal(decimal.NewFromInt(1_500_000)))

	_, err = svc.ApplyTransaction(context.Background(), admin, uuid.New(), ApplyRequest{})
	var nf *httpx.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestRejectTransaction(t *testing.T) {
	vendorID := uuid.New()
	repo := newFakeRepo(vendorID, 0)
	svc := newTestService(repo)
	admin := tenant.Admin{ID: uuid.New()}

	pending, err := svc.RequestDeposit(context.Background(), tenant.NewVendor(vendorID), DepositRequest{
		Amount: decimal.NewFromInt(300_000), PaymentMethod: "cash",
	})
	require.NoError(t, err)

	_, err = svc.RejectTransaction(context.Background(), admin, pending.ID, RejectRequest{Reason: "ngắn"})
	asValidation(t, err)

	rejected, err := svc.RejectTransaction(context.Background(), admin, pending.ID, RejectRequest{Reason: "Không nhận được tiền chuyển khoản"})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)

	_, err = svc.RejectTransaction(context.Background(), admin, pending.ID, RejectRequest{Reason: "Không nhận được tiền chuyển khoản"})
	var state *httpx.StateError
	require.True(t, errors.As(err, &state))
	assert.Equal(t, "Giao dịch đã bị từ chối", state.Message)
}

func TestRecordDeduction_ErrorMapping(t *testing.T) {
	vendorID := uuid.New()
	admin := tenant.Admin{ID: uuid.New()}
	req := DeductionRequest{OrderID: uuid.New()}

	cases := []struct {
		name string
		err  error
		want interface{}
	}{
		{"not delivered", &OrderNotDeliveredError{Status: "shipped"}, &httpx.StateError{}},
		{"zero cost", ErrZeroCost, &httpx.StateError{}},
		{"vendor missing", ErrVendorNotFound, &httpx.NotFoundError{}},
		{"order missing", ErrOrderNotFound, &httpx.NotFoundError{}},
		{"duplicate", &pq.Error{Code: "23505"}, &httpx.ConflictError{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo(vendorID, 0)
			repo.deductErr = tc.err
			_, err := newTestService(repo).RecordDeduction(context.Background(), admin, vendorID, req)
			require.Error(t, err)
			switch tc.want.(type) {
			case *httpx.StateError:
				var e *httpx.StateError
				assert.True(t, errors.As(err, &e))
			case *httpx.NotFoundError:
				var e *httpx.NotFoundError
				assert.True(t, errors.As(err, &e))
			case *httpx.ConflictError:
				var e *httpx.ConflictError
				assert.True(t, errors.As(err, &e))
			}
		})
	}

	_, err := newTestService(newFakeRepo(vendorID, 0)).RecordDeduction(context.Background(), admin, vendorID, DeductionRequest{})
	asValidation(t, err)
}

func TestTxTypeApply(t *testing.T) {
	before := decimal.NewFromInt(1_000)
	amount := decimal.NewFromInt(250)
	assert.True(t, TypeDeposit.Apply(before, amount).Equal(decimal.NewFromInt(1_250)))
	assert.True(t, TypeDeduction.Apply(before, amount).Equal(decimal.NewFromInt(750)))
	assert.True(t, TypeRefund.Apply(before, amount).Equal(decimal.NewFromInt(750)))
}
