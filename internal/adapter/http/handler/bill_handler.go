package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mehdib/finsms/internal/adapter/http/dto"
	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/infrastructure/metrics"
	"github.com/mehdib/finsms/internal/usecase"
)

// BillService defines the behavior needed by BillHandler.
type BillService interface {
	ListBills(ctx context.Context, input usecase.ListBillsInput) ([]*domain.Bill, error)
	GetBill(ctx context.Context, id string) (*domain.Bill, error)
	UpdateBill(ctx context.Context, input usecase.UpdateBillInput) (*domain.Bill, error)
	DeleteBill(ctx context.Context, id string) error
	GetStats(ctx context.Context, accountID string) (*domain.BillStats, error)
	SweepOverdue(ctx context.Context) (int64, error)
}

// BillHandler handles bill-related HTTP requests.
type BillHandler struct {
	billUC  BillService
	metrics *metrics.Metrics
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billUC BillService, m *metrics.Metrics) *BillHandler {
	return &BillHandler{billUC: billUC, metrics: m}
}

// ListByAccount lists bills for an account, optionally filtered by status.
func (h *BillHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	bills, err := h.billUC.ListBills(r.Context(), usecase.ListBillsInput{
		AccountID: accountID,
		Status:    domain.BillStatus(r.URL.Query().Get("status")),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list bills", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListBillsResponse{
		Bills: dto.BillsFromDomain(bills),
		Count: int64(len(bills)),
	})
}

// Get retrieves a bill by ID.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	bill, err := h.billUC.GetBill(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get bill", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BillFromDomain(bill))
}

// Update applies a partial update to a bill.
func (h *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	var req dto.UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bill, err := h.billUC.UpdateBill(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update bill", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BillFromDomain(bill))
}

// Delete removes a bill.
func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	if err := h.billUC.DeleteBill(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete bill", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats returns aggregated bill amounts for an account.
func (h *BillHandler) Stats(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	stats, err := h.billUC.GetStats(r.Context(), accountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get bill stats", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BillStatsFromDomain(stats))
}

// Sweep marks pending bills past their due date as overdue.
func (h *BillHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	updated, err := h.billUC.SweepOverdue(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to sweep overdue bills", err.Error())

		return
	}

	if h.metrics != nil && updated > 0 {
		h.metrics.BillsSweptOverdue.Add(float64(updated))
	}

	writeJSON(w, http.StatusOK, dto.SweepResponse{Updated: updated})
}
