package consignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/georgemunganga/vendorhub-backend/internal/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MsgNotFound        = "Không tìm thấy yêu cầu ký gửi"
	msgProductNotFound = "Không tìm thấy sản phẩm"
)

// Service defines the consignment approval workflow.
type Service interface {
	// Vendor
	Submit(ctx context.Context, scope tenant.Vendor, req SubmitRequest) (*Request, error)
	ListMine(ctx context.Context, scope tenant.Vendor, f ListFilter) ([]*Request, error)

	// Admin
	List(ctx context.Context, f ListFilter) ([]*Request, error)
	Approve(ctx context.Context, admin tenant.Admin, id uuid.UUID, req ApproveRequest) (*ApprovalResult, error)
	Reject(ctx context.Context, admin tenant.Admin, id uuid.UUID, req RejectRequest) (*Request, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

// NewService creates a new consignment service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log, now: time.Now}
}

func (s *service) Submit(ctx context.Context, scope tenant.Vendor, req SubmitRequest) (*Request, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, scope, &Request{
		ID:              uuid.New(),
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		ProposedPrice:   req.ProposedPrice,
		DiscountPercent: req.DiscountPercent,
		Notes:           req.Notes,
		Status:          StatusPending,
	})
	if errors.Is(err, ErrProductNotFound) {
		return nil, httpx.NotFound(msgProductNotFound)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) ListMine(ctx context.Context, scope tenant.Vendor, f ListFilter) ([]*Request, error) {
	if err := validate.Struct(f); err != nil {
		return nil, err
	}
	return s.repo.ListByVendor(ctx, scope, Status(f.Status))
}

func (s *service) List(ctx context.Context, f ListFilter) ([]*Request, error) {
	if err := validate.Struct(f); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, Status(f.Status))
}

func (s *service) Approve(ctx context.Context, admin tenant.Admin, id uuid.UUID, req ApproveRequest) (*ApprovalResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	result, err := s.repo.Approve(ctx, id, admin.ID, req.Notes, s.now())
	if err != nil {
		return nil, mapReviewErr(err, "approve consignment request")
	}
	fields := []zap.Field{
		zap.String("request_id", id.String()),
		zap.String("vendor_id", result.Request.VendorID.String()),
		zap.String("admin_id", admin.ID.String()),
	}
	if result.VendorProduct != nil {
		fields = append(fields, zap.Int("quantity_consigned", result.VendorProduct.QuantityConsigned))
	}
	s.log.Info("consignment request approved", fields...)
	return result, nil
}

func (s *service) Reject(ctx context.Context, admin tenant.Admin, id uuid.UUID, req RejectRequest) (*Request, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	rejected, err := s.repo.Reject(ctx, id, admin.ID, req.RejectionReason, s.now())
	if err != nil {
		return nil, mapReviewErr(err, "reject consignment request")
	}
	return rejected, nil
}

func mapReviewErr(err error, op string) error {
	var notPending *NotPendingError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return httpx.NotFound(MsgNotFound)
	case errors.As(err, &notPending):
		if notPending.Status == StatusApproved {
			return httpx.State("Yêu cầu ký gửi đã được duyệt")
		}
		return httpx.State("Yêu cầu ký gửi đã bị từ chối")
	}
	return fmt.Errorf("%s: %w", op, err)
}
