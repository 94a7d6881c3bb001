package http

import (
	"net/http"

	"go.uber.org/zap"

	"tds-assistant/service"
)

type LearningHandler struct {
	service *service.LearningService
	logger  *zap.Logger
}

func NewLearningHandler(service *service.LearningService, logger *zap.Logger) *LearningHandler {
	return &LearningHandler{service: service, logger: logger}
}

func (h *LearningHandler) Topics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.service.Topics())
}
