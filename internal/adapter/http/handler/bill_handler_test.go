package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mehdib/finsms/internal/adapter/http/dto"
	"github.com/mehdib/finsms/internal/domain"
	"github.com/mehdib/finsms/internal/usecase"
)

type billServiceStub struct {
	listFn   func(ctx context.Context, input usecase.ListBillsInput) ([]*domain.Bill, error)
	getFn    func(ctx context.Context, id string) (*domain.Bill, error)
	updateFn func(ctx context.Context, input usecase.UpdateBillInput) (*domain.Bill, error)
	deleteFn func(ctx context.Context, id string) error
	statsFn  func(ctx context.Context, accountID string) (*domain.BillStats, error)
	sweepFn  func(ctx context.Context) (int64, error)
}

func (s *billServiceStub) ListBills(ctx context.Context, input usecase.ListBillsInput) ([]*domain.Bill, error) {
	return s.listFn(ctx, input)
}

func (s *billServiceStub) GetBill(ctx context.Context, id string) (*domain.Bill, error) {
	return s.getFn(ctx, id)
}

func (s *billServiceStub) UpdateBill(ctx context.Context, input usecase.UpdateBillInput) (*domain.Bill, error) {
	return s.updateFn(ctx, input)
}

func (s *billServiceStub) DeleteBill(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *billServiceStub) GetStats(ctx context.Context, accountID string) (*domain.BillStats, error) {
	return s.statsFn(ctx, accountID)
}

func (s *billServiceStub) SweepOverdue(ctx context.Context) (int64, error) {
	return s.sweepFn(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sampleBill() *domain.Bill {
	txnID := "txn-1"
	now := time.Now().UTC()
	return &domain.Bill{
		ID:            "bill-1",
		TransactionID: &txnID,
		AccountID:     "acc-1",
		Merchant:      "Inwi",
		Amount:        decimal.RequireFromString("450.00"),
		DueDate:       time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC),
		Status:        domain.BillStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestBillHandler_Get_Success(t *testing.T) {
	h := NewBillHandler(&billServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Bill, error) {
			if id != "bill-1" {
				t.Fatalf("expected bill-1, got %s", id)
			}
			return sampleBill(), nil
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/bills/bill-1", nil), "id", "bill-1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "bill-1" || resp.Status != "pending" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBillHandler_Get_NotFound(t *testing.T) {
	h := NewBillHandler(&billServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Bill, error) {
			return nil, domain.ErrBillNotFound
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/bills/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBillHandler_Update_Success(t *testing.T) {
	var captured usecase.UpdateBillInput
	h := NewBillHandler(&billServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateBillInput) (*domain.Bill, error) {
			captured = input
			bill := sampleBill()
			bill.Status = domain.BillStatusPaid
			return bill, nil
		},
	}, nil)

	status := "paid"
	body, _ := json.Marshal(dto.UpdateBillRequest{Status: &status})
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/bills/bill-1", bytes.NewReader(body)), "id", "bill-1")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ID != "bill-1" || captured.Status == nil || *captured.Status != domain.BillStatusPaid {
		t.Fatalf("expected status update input, got %+v", captured)
	}
	if captured.DueDate != nil || captured.IsRecurring != nil {
		t.Fatalf("absent fields must stay nil, got %+v", captured)
	}
}

func TestBillHandler_Update_InvalidStatus(t *testing.T) {
	h := NewBillHandler(&billServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateBillInput) (*domain.Bill, error) {
			return nil, domain.ErrInvalidBillStatus
		},
	}, nil)

	status := "cancelled"
	body, _ := json.Marshal(dto.UpdateBillRequest{Status: &status})
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/bills/bill-1", bytes.NewReader(body)), "id", "bill-1")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBillHandler_Delete_Success(t *testing.T) {
	h := NewBillHandler(&billServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/bills/bill-1", nil), "id", "bill-1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestBillHandler_ListByAccount_PassesFilter(t *testing.T) {
	var captured usecase.ListBillsInput
	h := NewBillHandler(&billServiceStub{
		listFn: func(ctx context.Context, input usecase.ListBillsInput) ([]*domain.Bill, error) {
			captured = input
			return []*domain.Bill{sampleBill()}, nil
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/acc-1/bills?status=pending&limit=5", nil), "id", "acc-1")
	rec := httptest.NewRecorder()

	h.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.AccountID != "acc-1" || captured.Status != domain.BillStatusPending || captured.Limit != 5 {
		t.Fatalf("unexpected list input: %+v", captured)
	}

	var resp dto.ListBillsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected count 1, got %d", resp.Count)
	}
}

func TestBillHandler_Stats(t *testing.T) {
	h := NewBillHandler(&billServiceStub{
		statsFn: func(ctx context.Context, accountID string) (*domain.BillStats, error) {
			return &domain.BillStats{
				TotalBills:    2,
				TotalAmount:   decimal.RequireFromString("900.00"),
				PendingAmount: decimal.RequireFromString("450.00"),
			}, nil
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/acc-1/bills/stats", nil), "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BillStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalBills != 2 {
		t.Fatalf("expected 2 bills, got %d", resp.TotalBills)
	}
}

func TestBillHandler_Stats_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown error", err: errors.New("connection refused"), want: http.StatusInternalServerError},
		{name: "domain error", err: domain.ErrBillNotFound, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBillHandler(&billServiceStub{
				statsFn: func(ctx context.Context, accountID string) (*domain.BillStats, error) {
					return nil, tt.err
				},
			}, nil)

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/acc-1/bills/stats", nil), "id", "acc-1")
			rec := httptest.NewRecorder()

			h.Stats(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestBillHandler_Sweep(t *testing.T) {
	h := NewBillHandler(&billServiceStub{
		sweepFn: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/bills/sweep", nil)
	rec := httptest.NewRecorder()

	h.Sweep(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.SweepResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Updated != 7 {
		t.Fatalf("expected 7 updated, got %d", resp.Updated)
	}
}

func TestBillHandler_Sweep_ErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown error", err: errors.New("deadlock detected"), want: http.StatusInternalServerError},
		{name: "domain error", err: domain.ErrBillNotFound, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBillHandler(&billServiceStub{
				sweepFn: func(ctx context.Context) (int64, error) {
					return 0, tt.err
				},
			}, nil)

			req := httptest.NewRequest(http.MethodPost, "/bills/sweep", nil)
			rec := httptest.NewRecorder()

			h.Sweep(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
