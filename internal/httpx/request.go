package httpx

import (
	"net/http"
	"strconv"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const msgNoIdentity = "Vui lòng đăng nhập"

// VendorScope returns the vendor identity set by the auth middleware.
func VendorScope(r *http.Request) (tenant.Vendor, error) {
	v, ok := tenant.VendorFrom(r.Context())
	if !ok {
		return tenant.Vendor{}, Unauthorized(msgNoIdentity)
	}
	return v, nil
}

// AdminScope returns the admin identity set by the auth middleware.
func AdminScope(r *http.Request) (tenant.Admin, error) {
	a, ok := tenant.AdminFrom(r.Context())
	if !ok {
		return tenant.Admin{}, Unauthorized(msgNoIdentity)
	}
	return a, nil
}

// PathID parses a uuid URL parameter. A malformed id cannot match any row,
// so it is reported with the caller's not-found message.
func PathID(r *http.Request, name, notFoundMsg string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, NotFound(notFoundMsg)
	}
	return id, nil
}

// QueryInt reads an integer query parameter, falling back to def when absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Invalid("Dữ liệu không hợp lệ", FieldError{Field: name, Message: "Phải là số nguyên"})
	}
	return n, nil
}
