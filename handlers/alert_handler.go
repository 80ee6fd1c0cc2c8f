package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/response"
)

type alertDispatcher interface {
	Broadcast(ctx context.Context, req domain.BroadcastRequest) (*domain.BroadcastResult, error)
	GetBroadcast(ctx context.Context, id string) (*domain.BroadcastResult, error)
}

type AlertHandler struct {
	service alertDispatcher
}

func NewAlertHandler(service alertDispatcher) *AlertHandler {
	return &AlertHandler{service: service}
}

type SendAlertRequest struct {
	Message  string           `json:"message"`
	Location *domain.Location `json:"location"`
	UserID   string           `json:"userId,omitempty"`
}

type SendAlertResponse struct {
	Status      string                   `json:"status"`
	BroadcastID string                   `json:"broadcastId"`
	Sent        int                      `json:"sent"`
	Failed      int                      `json:"failed"`
	Results     []domain.DeliveryOutcome `json:"results"`
}

type BroadcastLookupResponse struct {
	Status string                  `json:"status"`
	Result *domain.BroadcastResult `json:"result"`
}

// SendAlert godoc
// @Summary Send an emergency alert
// @Description Sends the message and a map link for the location to every contact (or only the contacts of userId) and reports one outcome per recipient
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body SendAlertRequest true "Alert"
// @Success 200 {object} SendAlertResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /send-alert [post]
func (h *AlertHandler) SendAlert(c echo.Context) error {
	var req SendAlertRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequestWithMessage(c, "Invalid request body")
	}

	broadcast, err := domain.NewBroadcastRequest(req.Message, req.Location, req.UserID)
	if err != nil {
		return response.FromError(c, "Error sending messages", err, "")
	}

	result, err := h.service.Broadcast(c.Request().Context(), broadcast)
	if err != nil {
		return response.FromError(c, "Error sending messages", err, "")
	}

	// partial failures are reported per recipient, not as an HTTP error
	return response.Ok(c, SendAlertResponse{
		Status:      "Messages sent",
		BroadcastID: result.ID,
		Sent:        result.Sent,
		Failed:      result.Failed,
		Results:     result.Outcomes,
	})
}

// GetBroadcast godoc
// @Summary Get a broadcast result
// @Description Returns the cached per-recipient outcomes of a recent broadcast
// @Tags alerts
// @Produce json
// @Param id path string true "Broadcast ID"
// @Success 200 {object} BroadcastLookupResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /alerts/{id} [get]
func (h *AlertHandler) GetBroadcast(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequestWithMessage(c, "Broadcast ID is required")
	}

	result, err := h.service.GetBroadcast(c.Request().Context(), id)
	if err != nil {
		return response.FromError(c, "Error fetching broadcast", err, "Broadcast not found")
	}

	return response.Ok(c, BroadcastLookupResponse{
		Status: "Broadcast found",
		Result: result,
	})
}
