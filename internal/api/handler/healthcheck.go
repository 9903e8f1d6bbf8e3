package handler

import (
	"net/http"

	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/pkg/log"
)

// HealthcheckHandler responde o estado do processo e da conexão com o banco
func HealthcheckHandler(conn postgres.Conn) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status := map[string]string{
			"status":   "ok",
			"database": "ok",
		}

		code := http.StatusOK
		if err := conn.Ping(r.Context()); err != nil {
			logger.WithError(err).Error("healthcheck: banco indisponível")
			status["status"] = "degraded"
			status["database"] = "unavailable"
			code = http.StatusServiceUnavailable
		}

		respondJSON(w, logger, code, status)
	})
}
