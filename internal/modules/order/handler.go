package order

import (
	"net/http"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes vendor order HTTP endpoints.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterVendorRoutes mounts under /api/v1/vendor.
func (h *Handler) RegisterVendorRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)                       // GET  /api/v1/vendor/orders?status=&startDate=&endDate=
		r.Get("/{id}", h.getOrder)                     // GET  /api/v1/vendor/orders/{id}
		r.Post("/{id}/mark-packed", h.markPacked)      // POST /api/v1/vendor/orders/{id}/mark-packed
		r.Get("/{id}/shipping-label", h.shippingLabel) // GET  /api/v1/vendor/orders/{id}/shipping-label
	})
}

// RegisterAdminRoutes mounts under /api/v1/admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Put("/vendor-orders/{id}/status", h.carrierStatus) // PUT /api/v1/admin/vendor-orders/{id}/status
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	q := r.URL.Query()
	f := Filter{
		Status:    Status(q.Get("status")),
		StartDate: parseDate(q.Get("startDate")),
		EndDate:   parseDate(q.Get("endDate")),
	}
	orders, err := h.service.ListOrders(r.Context(), scope, f)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", msgNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	o, err := h.service.GetOrder(r.Context(), scope, id)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) markPacked(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", msgNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req MarkPackedRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	o, err := h.service.MarkPacked(r.Context(), scope, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

func (h *Handler) shippingLabel(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", msgNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	label, err := h.service.GetShippingLabel(r.Context(), scope, id)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, label)
}

func (h *Handler) carrierStatus(w http.ResponseWriter, r *http.Request) {
	admin, err := httpx.AdminScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", msgNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req CarrierStatusRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	o, err := h.service.ApplyCarrierStatus(r.Context(), admin, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, o)
}

// parseDate accepts YYYY-MM-DD; anything else means no bound.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
