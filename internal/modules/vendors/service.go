package vendors

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

// MsgNotFound is the uniform 404 for vendor lookups.
const MsgNotFound = "Không tìm thấy nhà cung cấp"

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type Service interface {
	// Admin
	ListVendors(ctx context.Context, q ListQuery) (*ListResult, error)
	UpdateStatus(ctx context.Context, admin tenant.Admin, id uuid.UUID, req UpdateStatusRequest) (*Vendor, error)

	// Vendor
	GetProfile(ctx context.Context, scope tenant.Vendor) (*Vendor, error)
	UpdateSettings(ctx context.Context, scope tenant.Vendor, req UpdateSettingsRequest) (*Vendor, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) ListVendors(ctx context.Context, q ListQuery) (*ListResult, error) {
	if err := validate.Struct(q); err != nil {
		return nil, err
	}
	list, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Vendors: list,
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: (total + q.Limit - 1) / q.Limit,
		},
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, admin tenant.Admin, id uuid.UUID, req UpdateStatusRequest) (*Vendor, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	v, err := s.repo.UpdateStatus(ctx, id, Status(req.Status))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update vendor status: %w", err)
	}
	s.log.Info("vendor status changed",
		zap.String("vendor_id", id.String()),
		zap.String("status", req.Status),
		zap.String("reason", req.Reason),
		zap.String("admin_id", admin.ID.String()))
	return v, nil
}

func (s *service) GetProfile(ctx context.Context, scope tenant.Vendor) (*Vendor, error) {
	v, err := s.repo.GetProfile(ctx, scope)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(MsgNotFound)
	}
	return v, err
}

func (s *service) UpdateSettings(ctx context.Context, scope tenant.Vendor, req UpdateSettingsRequest) (*Vendor, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	v, err := s.repo.UpdateSettings(ctx, scope, req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.NotFound(MsgNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update vendor settings: %w", err)
	}
	return v, nil
}
