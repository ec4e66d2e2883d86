package ledger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes ledger HTTP endpoints.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterVendorRoutes mounts under /api/v1/vendor.
func (h *Handler) RegisterVendorRoutes(r chi.Router) {
	r.Get("/balance", h.getBalance)                  // GET  /api/v1/vendor/balance
	r.Get("/transactions", h.listTransactions)       // GET  /api/v1/vendor/transactions
	r.Get("/transactions/export", h.exportStatement) // GET  /api/v1/vendor/transactions/export
	r.Post("/deposit", h.requestDeposit)             // POST /api/v1/vendor/deposit
}

// RegisterAdminRoutes mounts under /api/v1/admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/transactions/{id}/apply", h.applyTransaction)   // POST /api/v1/admin/transactions/{id}/apply
	r.Post("/transactions/{id}/reject", h.rejectTransaction) // POST /api/v1/admin/transactions/{id}/reject
	r.Post("/vendors/{id}/deductions", h.recordDeduction)    // POST /api/v1/admin/vendors/{id}/deductions
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	b, err := h.service.GetBalance(r.Context(), scope)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, b)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	f, err := filterFromQuery(r, DefaultTxLimit)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	txs, err := h.service.ListTransactions(r.Context(), scope, f)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, txs)
}

func (h *Handler) exportStatement(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	f, err := filterFromQuery(r, MaxTxLimit)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	data, err := h.service.ExportTransactions(r.Context(), scope, f)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	filename := fmt.Sprintf("sao-ke-ky-quy-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) requestDeposit(w http.ResponseWriter, r *http.Request) {
	scope, err := httpx.VendorScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req DepositRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	tx, err := h.service.RequestDeposit(r.Context(), scope, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, tx)
}

func (h *Handler) applyTransaction(w http.ResponseWriter, r *http.Request) {
	admin, err := httpx.AdminScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", msgTxNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req ApplyRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	tx, err := h.service.ApplyTransaction(r.Context(), admin, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, tx)
}

func (h *Handler) rejectTransaction(w http.ResponseWriter, r *http.Request) {
	admin, err := httpx.AdminScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	id, err := httpx.PathID(r, "id", msgTxNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req RejectRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	tx, err := h.service.RejectTransaction(r.Context(), admin, id, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusOK, tx)
}

func (h *Handler) recordDeduction(w http.ResponseWriter, r *http.Request) {
	admin, err := httpx.AdminScope(r)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	vendorID, err := httpx.PathID(r, "id", msgVendorNotFound)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	var req DeductionRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	tx, err := h.service.RecordDeduction(r.Context(), admin, vendorID, req)
	if err != nil {
		httpx.Fail(w, h.log, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, tx)
}

func filterFromQuery(r *http.Request, defLimit int) (TxFilter, error) {
	limit, err := httpx.QueryInt(r, "limit", defLimit)
	if err != nil {
		return TxFilter{}, err
	}
	q := r.URL.Query()
	return TxFilter{
		Type:      q.Get("type"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Limit:     limit,
	}, nil
}
