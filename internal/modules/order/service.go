package order

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
	msgNotFound        = "Không tìm thấy đơn hàng"
	msgNoShippingInfo  = "Đơn hàng chưa có thông tin vận chuyển"
	msgConcurrentState = "Trạng thái đơn hàng vừa thay đổi, vui lòng thử lại"
)

// Service defines vendor order fulfillment logic.
type Service interface {
	// ListOrders returns the vendor's orders, newest first, with customer PII masked.
	ListOrders(ctx context.Context, scope tenant.Vendor, f Filter) ([]*VendorOrder, error)

	// GetOrder returns one of the vendor's orders or a not-found error.
	GetOrder(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorOrder, error)

	// MarkPacked moves a pending or processing order to processing.
	MarkPacked(ctx context.Context, scope tenant.Vendor, id uuid.UUID, req MarkPackedRequest) (*VendorOrder, error)

	// GetShippingLabel resolves label or print instructions for the order's carrier.
	GetShippingLabel(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*ShippingLabel, error)

	// ApplyCarrierStatus validates a carrier event against the state machine and applies it.
	ApplyCarrierStatus(ctx context.Context, admin tenant.Admin, id uuid.UUID, req CarrierStatusRequest) (*VendorOrder, error)
}

type service struct {
	repo     Repository
	carriers CarrierRegistry
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a new order service.
func NewService(repo Repository, carriers CarrierRegistry, log *zap.Logger) Service {
	return &service{repo: repo, carriers: carriers, log: log, now: time.Now}
}

func (s *service) ListOrders(ctx context.Context, scope tenant.Vendor, f Filter) ([]*VendorOrder, error) {
	if !f.Status.Valid() {
		f.Status = ""
	}
	orders, err := s.repo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	for i, o := range orders {
		orders[i] = maskPII(o)
	}
	return orders, nil
}

func (s *service) GetOrder(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorOrder, error) {
	o, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return maskPII(o), nil
}

func (s *service) MarkPacked(ctx context.Context, scope tenant.Vendor, id uuid.UUID, req MarkPackedRequest) (*VendorOrder, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	o, err := s.repo.MarkPacked(ctx, scope, id, req.Notes, s.now())
	if errors.Is(err, sql.ErrNoRows) {
		// Either foreign/missing or not packable; the scoped read tells which.
		current, err := s.get(ctx, scope, id)
		if err != nil {
			return nil, err
		}
		return nil, httpx.State("Không thể đóng gói đơn hàng %s", statusLabels[current.Status])
	}
	if err != nil {
		return nil, fmt.Errorf("mark packed: %w", err)
	}
	return maskPII(o), nil
}

func (s *service) GetShippingLabel(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*ShippingLabel, error) {
	o, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if o.ShippingProvider == nil || *o.ShippingProvider == "" || o.ShippingCode == nil || *o.ShippingCode == "" {
		return nil, httpx.State(msgNoShippingInfo)
	}
	carrier := Carrier(*o.ShippingProvider)
	provider, ok := s.carriers[carrier]
	if !ok {
		return nil, httpx.Invalid(s.carriers.unsupportedMessage(*o.ShippingProvider))
	}
	labelURL, instructions := provider.Label(*o.ShippingCode)
	return &ShippingLabel{
		OrderID:           o.ID,
		ShippingProvider:  carrier,
		ShippingCode:      *o.ShippingCode,
		LabelURL:          labelURL,
		PrintInstructions: instructions,
	}, nil
}

func (s *service) ApplyCarrierStatus(ctx context.Context, admin tenant.Admin, id uuid.UUID, req CarrierStatusRequest) (*VendorOrder, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	next := Status(req.Status)
	if !CanTransition(current.Status, next) {
		return nil, httpx.State("Không thể chuyển đơn hàng từ %s sang %s", statusLabels[current.Status], statusLabels[next])
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, next, req.ShippingProvider, req.ShippingCode, s.now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.State(msgConcurrentState)
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	s.log.Info("carrier status applied",
		zap.String("vendor_order_id", id.String()),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)),
		zap.String("admin_id", admin.ID.String()))
	return updated, nil
}

func (s *service) get(ctx context.Context, scope tenant.Vendor, id uuid.UUID) (*VendorOrder, error) {
	o, err := s.repo.Get(ctx, scope, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(msgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}
