package consignment

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reqCols = []string{
	"id", "vendor_id", "product_id", "quantity", "proposed_price", "discount_percent", "notes",
	"status", "reviewer_id", "reviewer_notes", "reviewed_at", "created_at", "updated_at",
}

var vpCols = []string{
	"id", "vendor_id", "product_id", "consignment_price", "discount_percent",
	"quantity_consigned", "quantity_sold", "quantity_returned", "commission_per_unit",
	"status", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func reqRow(id, vendorID uuid.UUID, productID *uuid.UUID, status string) *sqlmock.Rows {
	now := time.Now()
	var pid interface{}
	if productID != nil {
		pid = productID.String()
	}
	return sqlmock.NewRows(reqCols).
		AddRow(id.String(), vendorID.String(), pid, 40, "120000.00", "5.00", "", status, nil, nil, nil, now, now)
}

func TestApprove_UpsertInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	id, vendorID, productID, adminID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM consignment_requests WHERE id = \$1 FOR UPDATE`).
		WithArgs(id).WillReturnRows(reqRow(id, vendorID, &productID, "pending"))
	mock.ExpectQuery(`UPDATE consignment_requests\s+SET status = 'approved'`).
		WithArgs(adminID, "", sqlmock.AnyArg(), id).
		WillReturnRows(reqRow(id, vendorID, &productID, "approved"))
	mock.ExpectQuery(`ON CONFLICT \(vendor_id, product_id\) DO UPDATE\s+SET quantity_consigned = vp.quantity_consigned \+ EXCLUDED.quantity_consigned`).
		WithArgs(sqlmock.AnyArg(), vendorID, productID, "120000", "5", 40, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(vpCols).
			AddRow(uuid.NewString(), vendorID.String(), productID.String(), "120000.00", "5.00", 140, 10, 0, "8000.00", "active", now, now))
	mock.ExpectCommit()

	res, err := NewPostgresRepository(db).Approve(context.Background(), id, adminID, "", now)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Request.Status)
	require.NotNil(t, res.VendorProduct)
	assert.Equal(t, 140, res.VendorProduct.QuantityConsigned)
	assert.Equal(t, 130, res.VendorProduct.CurrentStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_NoProductSkipsUpsert(t *testing.T) {
	db, mock := newMock(t)
	id, vendorID, adminID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(id).WillReturnRows(reqRow(id, vendorID, nil, "pending"))
	mock.ExpectQuery(`UPDATE consignment_requests`).
		WithArgs(adminID, "ok", sqlmock.AnyArg(), id).
		WillReturnRows(reqRow(id, vendorID, nil, "approved"))
	mock.ExpectCommit()

	res, err := NewPostgresRepository(db).Approve(context.Background(), id, adminID, "ok", time.Now())
	require.NoError(t, err)
	assert.Nil(t, res.Request.ProductID)
	assert.Nil(t, res.VendorProduct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_AlreadyReviewedRollsBack(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(id).WillReturnRows(reqRow(id, uuid.New(), &id, "approved"))
	mock.ExpectRollback()

	_, err := NewPostgresRepository(db).Approve(context.Background(), id, uuid.New(), "", time.Now())
	var np *NotPendingError
	require.ErrorAs(t, err, &np)
	assert.Equal(t, StatusApproved, np.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_UpsertFailureRollsBack(t *testing.T) {
	db, mock := newMock(t)
	id, vendorID, productID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(id).WillReturnRows(reqRow(id, vendorID, &productID, "pending"))
	mock.ExpectQuery(`UPDATE consignment_requests`).WillReturnRows(reqRow(id, vendorID, &productID, "approved"))
	mock.ExpectQuery(`INSERT INTO vendor_products`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := NewPostgresRepository(db).Approve(context.Background(), id, uuid.New(), "", time.Now())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_FinalStateReported(t *testing.T) {
	db, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`WHERE id = \$4 AND status = 'pending'`).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT status FROM consignment_requests`).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))

	_, err := NewPostgresRepository(db).Reject(context.Background(), id, uuid.New(), "Thiếu giấy tờ nguồn gốc", time.Now())
	var np *NotPendingError
	require.ErrorAs(t, err, &np)
	assert.Equal(t, StatusRejected, np.Status)
}

func TestCreate_UnknownProduct(t *testing.T) {
	db, mock := newMock(t)
	vendorID, productID := uuid.New(), uuid.New()

	mock.ExpectQuery(`INSERT INTO consignment_requests`).
		WithArgs(sqlmock.AnyArg(), vendorID, productID, 3, "99000", "0", "").
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := NewPostgresRepository(db).Create(context.Background(), tenant.NewVendor(vendorID), &Request{
		ID: uuid.New(), ProductID: &productID, Quantity: 3, ProposedPrice: decimal.NewFromInt(99000),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListByVendor_StatusFilter(t *testing.T) {
	db, mock := newMock(t)
	vendorID := uuid.New()
	mock.ExpectQuery(`WHERE vendor_id = \$1 AND status = \$2`).WithArgs(vendorID, "pending").
		WillReturnRows(reqRow(uuid.New(), vendorID, nil, "pending"))

	reqs, err := NewPostgresRepository(db).ListByVendor(context.Background(), tenant.NewVendor(vendorID), StatusPending)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}
