package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mehdib/finsms/internal/adapter/http/dto"
	"github.com/mehdib/finsms/internal/forecast"
)

// ForecastHandler handles cash flow forecast requests.
type ForecastHandler struct{}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler() *ForecastHandler {
	return &ForecastHandler{}
}

// CashFlow predicts next month's net cash flow from aggregate figures.
func (h *ForecastHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	var req dto.ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pred, err := forecast.Predict(req.ToForecastInput())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, forecast.ErrNonPositiveIncome) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "failed to compute forecast", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ForecastFromPrediction(pred))
}
