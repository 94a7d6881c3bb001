package http

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"tds-assistant/domain"
	"tds-assistant/service"
)

type waterRequest struct {
	Conductivity          amount   `json:"conductivity"`
	Temperature           amount   `json:"temperature"`
	Factor                amount   `json:"factor"`
	WaterType             string   `json:"water_type"`
	TemperatureCorrection *bool    `json:"temperature_correction"`
	PH                    *float64 `json:"ph"`
	Turbidity             *float64 `json:"turbidity"`
	Salinity              *float64 `json:"salinity"`
}

func (req waterRequest) toInput() (domain.WaterInput, error) {
	input := domain.WaterInput{
		CalculationInput: domain.CalculationInput{
			Primary:     req.Conductivity.value,
			Adjustment1: req.Temperature.value,
			Adjustment2: req.Factor.value,
		},
		TemperatureCorrection: true,
		PH:                    req.PH,
		Turbidity:             req.Turbidity,
		Salinity:              req.Salinity,
	}
	if req.TemperatureCorrection != nil {
		input.TemperatureCorrection = *req.TemperatureCorrection
	}
	if req.WaterType != "" && !req.Factor.set {
		factor, ok := service.WaterTypeFactor(req.WaterType)
		if !ok {
			return input, fmt.Errorf("%w: unknown water type %q", service.ErrInvalidInput, req.WaterType)
		}
		input.Adjustment2 = factor
	}
	return input, nil
}

type WaterHandler struct {
	water  *service.WaterService
	ai     *service.AIService
	logger *zap.Logger
}

func NewWaterHandler(water *service.WaterService, ai *service.AIService, logger *zap.Logger) *WaterHandler {
	return &WaterHandler{water: water, ai: ai, logger: logger}
}

func (h *WaterHandler) measure(w http.ResponseWriter, r *http.Request) (domain.WaterResult, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return domain.WaterResult{}, false
	}

	var req waterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return domain.WaterResult{}, false
	}

	input, err := req.toInput()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return domain.WaterResult{}, false
	}

	result, err := h.water.Measure(input)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return domain.WaterResult{}, false
	}
	return result, true
}

func (h *WaterHandler) Measure(w http.ResponseWriter, r *http.Request) {
	result, ok := h.measure(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *WaterHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, ok := h.measure(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, domain.WaterAnalysis{
		Result:   result,
		Analysis: h.ai.AnalyzeWater(r.Context(), result),
	})
}

func (h *WaterHandler) Types(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, service.WaterTypes)
}
