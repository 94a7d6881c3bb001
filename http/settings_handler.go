package http

import (
	"net/http"

	"go.uber.org/zap"

	"tds-assistant/domain"
	"tds-assistant/service"
)

type settingsRequest struct {
	ThemeMode            *string `json:"theme_mode"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

type SettingsHandler struct {
	service *service.SettingsService
	logger  *zap.Logger
}

func NewSettingsHandler(service *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: logger}
}

func (h *SettingsHandler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPut:
		if !h.update(w, r) {
			return
		}
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	settings, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, settings)
}

func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) bool {
	var req settingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	var mode *domain.ThemeMode
	if req.ThemeMode != nil {
		m := domain.ThemeMode(*req.ThemeMode)
		mode = &m
	}
	if err := h.service.Update(r.Context(), mode, req.NotificationsEnabled); err != nil {
		writeServiceError(w, h.logger, err)
		return false
	}
	return true
}
