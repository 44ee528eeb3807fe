package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"compass.app/intake/internal/http/dto"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	region string
}

func NewHealthHandler(db Pinger, region string) *HealthHandler {
	return &HealthHandler{db: db, region: region}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.db.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "storage ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Storage: "postgres",
			Region:  h.region,
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Storage: "postgres",
		Region:  h.region,
	})
}
