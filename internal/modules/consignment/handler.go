package consignment

import (
	"net/http"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes consignment request endpoints.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterVendorRoutes mounts under /api/v1/vendor.
func (h *Handler) RegisterVendorRoutes(r chi.Router) {
	r.Get("/consignment-requests", h.listMine)
	r.Post("/consignment-requests", h.submit)
}

// RegisterAdminRoutes mounts under /api/v1/admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/consignment-requests", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/{id}/approve", h.approve)
		r.Post("/{id}/reject", h.reject)
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req SubmitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	created, err := h.service.Submit(r.Context(), scope, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, created)
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	reqs, err := h.service.ListMine(r.Context(), scope, ListFilter{Status: r.URL.Query().Get("status")})
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, reqs)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if _, err := httpx.AdminScope(r); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	reqs, err := h.service.List(r.Context(), ListFilter{Status: r.URL.Query().Get("status")})
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, reqs)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
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
	var req ApproveRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	result, err := h.service.Approve(r.Context(), admin, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, result)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
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
	var req RejectRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	rejected, err := h.service.Reject(r.Context(), admin, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, rejected)
}
