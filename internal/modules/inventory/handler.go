package inventory

import (
	"net/http"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes consignment product endpoints for vendors.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterVendorRoutes mounts under /api/v1/vendor.
func (h *Handler) RegisterVendorRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)               // GET /api/v1/vendor/products
		r.Get("/{id}", h.getProduct)             // GET /api/v1/vendor/products/{id}
		r.Put("/{id}/quantity", h.increaseStock) // PUT /api/v1/vendor/products/{id}/quantity
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	products, err := h.service.ListProducts(r.Context(), scope)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", MsgNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	vp, err := h.service.GetProduct(r.Context(), scope, id)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, vp)
}

func (h *Handler) increaseStock(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", MsgNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req IncreaseQuantityRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	vp, err := h.service.IncreaseQuantity(r.Context(), scope, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, vp)
}
