package http

import (
	"net/http"

	"go.uber.org/zap"

	"tds-assistant/domain"
	"tds-assistant/service"
)

type calculationRequest struct {
	Primary     amount `json:"primary"`
	Adjustment1 amount `json:"adjustment1"`
	Adjustment2 amount `json:"adjustment2"`
}

type CalculationHandler struct {
	service *service.CalculatorService
	logger  *zap.Logger
}

func NewCalculationHandler(service *service.CalculatorService, logger *zap.Logger) *CalculationHandler {
	return &CalculationHandler{service: service, logger: logger}
}

func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req calculationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.service.Calculate(domain.CalculationInput{
		Primary:     req.Primary.value,
		Adjustment1: req.Adjustment1.value,
		Adjustment2: req.Adjustment2.value,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, report)
}
