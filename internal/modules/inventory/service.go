package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/georgemunganga/vendorhub-backend/internal/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MsgNotFound = "Không tìm thấy sản phẩm ký gửi"

// Service defines consignment inventory logic for vendors.
type Service interface {
	ListProducts(ctx context.Context, scope tenant.Vendor) ([]*VendorProduct, error)
	GetProduct(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorProduct, error)
	IncreaseQuantity(ctx context.Context, scope tenant.Vendor, id uuid.UUID, req IncreaseQuantityRequest) (*VendorProduct, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new inventory service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) ListProducts(ctx context.Context, scope tenant.Vendor) ([]*VendorProduct, error) {
	return s.repo.ListProducts(ctx, scope)
}

func (s *service) GetProduct(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorProduct, error) {
	vp, err := s.repo.GetProduct(ctx, scope, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor product: %w", err)
	}
	return vp, nil
}

func (s *service) IncreaseQuantity(ctx context.Context, scope tenant.Vendor, id uuid.UUID, req IncreaseQuantityRequest) (*VendorProduct, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	vp, err := s.repo.IncreaseQuantity(ctx, scope, id, req.AdditionalQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("increase quantity: %w", err)
	}
	s.log.Info("consigned quantity increased",
		zap.String("vendor_id", vp.VendorID.String()),
		zap.String("vendor_product_id", vp.ID.String()),
		zap.Int("added", req.AdditionalQuantity),
		zap.Int("quantity_consigned", vp.QuantityConsigned))
	return vp, nil
}
