package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
	"github.com/onurcolak/emergency-alert-service/pkg/response"
	"github.com/onurcolak/emergency-alert-service/pkg/validator"
)

type chatResponder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	service chatResponder
}

func NewChatHandler(service chatResponder) *ChatHandler {
	return &ChatHandler{service: service}
}

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// Chat godoc
// @Summary Ask the assistant
// @Description Relays the message to the language model and returns its reply as plain text
// @Tags chat
// @Accept json
// @Produce plain
// @Param request body ChatRequest true "Prompt"
// @Success 200 {string} string
// @Failure 400 {object} validator.ValidationErrorResponse
// @Failure 500 {string} string
// @Router /api/chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequestWithMessage(c, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err, "Message is required")
	}

	reply, err := h.service.Respond(c.Request().Context(), req.Message)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return response.BadRequestWithMessage(c, ve.Message)
		}

		logger.Errorf("Chat request failed: %v", err)
		return c.String(http.StatusInternalServerError, "Error occurred while processing the request")
	}

	return c.String(http.StatusOK, reply)
}
