package api

import (
	"database/sql"
	"net/http"
	"time"

	"socialhub/pkg/logger"
)

type HealthHandler struct {
	db     *sql.DB
	logger logger.Logger
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func NewHealthHandler(db *sql.DB, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string)
	status := "healthy"

	if err := h.db.Ping(); err != nil {
		h.logger.Error("database health check failed", map[string]interface{}{"error": err.Error()})
		services["database"] = "unhealthy"
		status = "degraded"
	} else {
		services["database"] = "healthy"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, healthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	})
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
}
