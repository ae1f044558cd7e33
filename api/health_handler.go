package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/westley-wess/portfolio/database"
)

type healthHandler struct {
	responder   Responder
	database    database.Database
	startupTime time.Time
}

func newHealthHandler(database database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		database:    database,
		startupTime: startupTime,
	}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		}

		status := http.StatusOK
		if err := h.database.Ping(); err != nil {
			response.Status = "degraded"
			response.Database = err.Error()
			status = http.StatusServiceUnavailable
		}

		h.responder.WriteJSONWithStatus(w, status, response)
	}
}
