package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mehdib/finsms/internal/adapter/http/dto"
	"github.com/mehdib/finsms/internal/infrastructure/metrics"
	"github.com/mehdib/finsms/internal/usecase"
)

// IngestService defines the behavior needed by IngestHandler.
type IngestService interface {
	Ingest(ctx context.Context, input usecase.IngestInput) (*usecase.IngestResult, error)
}

// IngestHandler handles message ingestion requests.
type IngestHandler struct {
	ingestUC IngestService
	metrics  *metrics.Metrics
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestUC IngestService, m *metrics.Metrics) *IngestHandler {
	return &IngestHandler{ingestUC: ingestUC, metrics: m}
}

// Ingest runs the pipeline on one raw message.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()
	result, err := h.ingestUC.Ingest(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		if h.metrics != nil {
			cause := "internal"
			if status == http.StatusBadRequest {
				cause = "invalid_input"
			}
			h.metrics.IngestionFailures.WithLabelValues(cause).Inc()
		}
		writeError(w, status, "failed to ingest message", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.MessagesIngested.Inc()
		h.metrics.IngestionDuration.Observe(time.Since(start).Seconds())
		h.metrics.Classifications.
			WithLabelValues(string(result.Transaction.Direction), string(result.Transaction.Category)).
			Inc()
		if result.Bill != nil {
			h.metrics.BillsDetected.Inc()
		}
	}

	resp := dto.IngestResponse{
		Transaction: dto.TransactionFromDomain(result.Transaction),
	}
	if result.Bill != nil {
		resp.Bill = dto.BillFromDomain(result.Bill)
	}

	writeJSON(w, http.StatusCreated, resp)
}
