package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/emergency-alert-service/pkg/redis"
)

const (
	componentUp       = "up"
	componentDown     = "down"
	componentDisabled = "disabled"
)

// HealthHandler reports whether the contact store and broadcast cache are reachable.
type HealthHandler struct {
	db           *sqlx.DB
	redis        *redis.Client
	checkTimeout time.Duration
}

func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:           db,
		redis:        redisClient,
		checkTimeout: 2 * time.Second,
	}
}

type ComponentStatus struct {
	Status string `json:"status"`
}

type HealthResponse struct {
	Status     string                     `json:"status"`
	Timestamp  string                     `json:"timestamp"`
	Components map[string]ComponentStatus `json:"components"`
}

// Health godoc
// @Summary Health check
// @Description Returns overall status with contact store and broadcast cache connectivity
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout)
	defer cancel()

	overallStatus := "ok"

	// alerts cannot be sent without contacts
	dbStatus := componentUp
	if h.db == nil {
		dbStatus = componentDown
		overallStatus = componentDown
	} else if err := h.db.PingContext(ctx); err != nil {
		dbStatus = componentDown
		overallStatus = componentDown
	}

	redisStatus := componentDisabled
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = componentDown
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		} else {
			redisStatus = componentUp
		}
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Components: map[string]ComponentStatus{
			"contactStore":   {Status: dbStatus},
			"broadcastCache": {Status: redisStatus},
		},
	})
}
