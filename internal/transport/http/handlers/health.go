package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/mercata/storefront/services/user-service/internal/transport/http/response"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz reports liveness plus credential-store reachability.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status["status"] = "degraded"
			status["db"] = "unreachable"
			response.JSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["db"] = "ok"
	}

	response.JSON(w, http.StatusOK, status)
}
