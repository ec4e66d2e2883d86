package vendors

import (
	"net/http"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterVendorRoutes mounts self-service routes under /api/v1/vendor.
func (h *Handler) RegisterVendorRoutes(r chi.Router) {
	r.Get("/profile", h.getProfile)      // GET /api/v1/vendor/profile
	r.Put("/settings", h.updateSettings) // PUT /api/v1/vendor/settings
}

// RegisterAdminRoutes mounts vendor management under /api/v1/admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/vendors", h.listVendors)              // GET /api/v1/admin/vendors
	r.Put("/vendors/{id}/status", h.updateStatus) // PUT /api/v1/admin/vendors/{id}/status
}

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.QueryInt(r, "page", DefaultPage)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	limit, err := httpx.QueryInt(r, "limit", DefaultLimit)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	res, err := h.service.ListVendors(r.Context(), ListQuery{
		Page:   page,
		Limit:  limit,
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, res)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	admin, err := httpx.AdminScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", MsgNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req UpdateStatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	v, err := h.service.UpdateStatus(r.Context(), admin, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, v)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	v, err := h.service.GetProfile(r.Context(), scope)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, v)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req UpdateSettingsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	v, err := h.service.UpdateSettings(r.Context(), scope, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, v)
}
