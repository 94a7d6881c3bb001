package http

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"tds-assistant/domain"
	"tds-assistant/service"
)

func newCalculationHandler() *CalculationHandler {
	calculator := service.NewCalculatorService(service.NewIncomeTaxEngine(), zap.NewNop())
	return NewCalculationHandler(calculator, zap.NewNop())
}

func TestCalculateHandler_OK(t *testing.T) {

	handler := newCalculationHandler()

	body := []byte(`{
		"primary": 1000000,
		"adjustment1": 150000,
		"adjustment2": 50000
	}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/tds/calculate",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	resp := w.Result()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var report domain.CalculationReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if report.Result.GrandTotal != 36400 {
		t.Errorf("expected grand total 36400, got %.2f", report.Result.GrandTotal)
	}
	if len(report.Result.Breakdown) != 3 {
		t.Errorf("expected 3 bands, got %d", len(report.Result.Breakdown))
	}
	if report.EfficiencyRating != "Excellent tax planning!" {
		t.Errorf("unexpected rating %q", report.EfficiencyRating)
	}
}

func TestCalculateHandler_TextAmounts(t *testing.T) {

	handler := newCalculationHandler()

	body := []byte(`{"primary": "10,00,000", "adjustment1": "1,50,000", "adjustment2": "abc"}`)

	req := httptest.NewRequest(http.MethodPost, "/tds/calculate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var report domain.CalculationReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if report.Result.AdjustedBase != 850000 {
		t.Errorf("expected adjusted base 850000, got %.2f", report.Result.AdjustedBase)
	}
	if math.Abs(report.Result.GrandTotal-41600) > 1e-6 {
		t.Errorf("expected grand total 41600, got %.2f", report.Result.GrandTotal)
	}
}

func TestCalculateHandler_MethodNotAllowed(t *testing.T) {

	handler := newCalculationHandler()

	req := httptest.NewRequest(http.MethodGet, "/tds/calculate", nil)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateHandler_BadRequest(t *testing.T) {

	handler := newCalculationHandler()

	for _, body := range []string{`{invalid-json}`, `{"primary": -5}`} {
		req := httptest.NewRequest(
			http.MethodPost,
			"/tds/calculate",
			bytes.NewBufferString(body),
		)

		w := httptest.NewRecorder()
		handler.Calculate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}
	}
}
