package auth

import (
	"net/http"
	"strings"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNoToken   = "Vui lòng đăng nhập"
	msgForbidden = "Bạn không có quyền truy cập chức năng này"
)

type middleware struct {
	service Service
	log     *zap.Logger
}

// NewMiddleware builds the vendor/admin identity middleware.
func NewMiddleware(service Service, log *zap.Logger) Middleware {
	return &middleware{service: service, log: log}
}

// RequireVendor puts the caller's tenant.Vendor scope on the request context.
func (m *middleware) RequireVendor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claims(r)
		if err != nil {
			httpx.Fail(w, m.log, err)
			return
		}
		if claims.Role != RoleVendor {
			httpx.Fail(w, m.log, httpx.Forbidden(msgForbidden))
			return
		}
		vendorID, err := uuid.Parse(claims.VendorID)
		if err != nil || vendorID == uuid.Nil {
			httpx.Fail(w, m.log, httpx.Unauthorized(msgBadToken))
			return
		}
		ctx := tenant.WithVendor(r.Context(), tenant.NewVendor(vendorID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin puts the admin identity on the request context.
func (m *middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claims(r)
		if err != nil {
			httpx.Fail(w, m.log, err)
			return
		}
		if claims.Role != RoleAdmin {
			httpx.Fail(w, m.log, httpx.Forbidden(msgForbidden))
			return
		}
		adminID, err := uuid.Parse(claims.Subject)
		if err != nil {
			httpx.Fail(w, m.log, httpx.Unauthorized(msgBadToken))
			return
		}
		ctx := tenant.WithAdmin(r.Context(), tenant.Admin{ID: adminID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *middleware) claims(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header {
		return nil, httpx.Unauthorized(msgNoToken)
	}
	return m.service.ParseToken(token)
}
