package http

import (
	"net/http"

	"go.uber.org/zap"
)

type Handlers struct {
	Calculation *CalculationHandler
	Water       *WaterHandler
	Chat        *ChatHandler
	Settings    *SettingsHandler
	Learning    *LearningHandler
}

// NewRouter mounts every endpoint behind the rate limiter and request logging.
func NewRouter(h Handlers, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, fn)
	}

	mux.Handle("/tds/calculate", limited(h.Calculation.Calculate))
	mux.Handle("/water/measure", limited(h.Water.Measure))
	mux.Handle("/water/analyze", limited(h.Water.Analyze))
	mux.Handle("/water/types", limited(h.Water.Types))
	mux.Handle("/chat/messages", limited(h.Chat.Messages))
	mux.Handle("/chat/messages/", limited(h.Chat.Message))
	mux.Handle("/settings", limited(h.Settings.Settings))
	mux.Handle("/learn", limited(h.Learning.Topics))

	return LoggingMiddleware(logger, mux)
}
