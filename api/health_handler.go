package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// pinger is the part of the database the health check needs.
type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          pinger
	startupTime time.Time
}

func newHealthHandler(db pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

// health reports whether the database answers
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service healthy"
// @Failure 503 {object} map[string]string "Database unreachable"
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response := map[string]string{
			"status":    "ok",
			"database":  "ok",
			"startedAt": h.startupTime.UTC().Format(time.RFC3339),
			"uptime":    time.Since(h.startupTime).Round(time.Second).String(),
		}

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("database ping failed")
			response["status"] = "degraded"
			response["database"] = "unreachable"
			h.responder.writeJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}
