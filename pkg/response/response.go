package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
)

const errorStatus = "Error"

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func Ok(c echo.Context, body any) error {
	return c.JSON(http.StatusOK, body)
}

func OkWithStatus(c echo.Context, status string) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: status})
}

func BadRequest(c echo.Context, err error) error {
	return BadRequestWithMessage(c, err.Error())
}

func BadRequestWithMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Status: errorStatus,
		Error:  message,
	})
}

func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Status: errorStatus,
		Error:  message,
	})
}

// InternalServerError reports an unexpected failure; status names the
// operation that failed, e.g. "Error adding contact".
func InternalServerError(c echo.Context, status string, err error) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Status: status,
		Error:  err.Error(),
	})
}

// FromError maps the domain error taxonomy onto HTTP responses:
// ValidationError -> 400, ErrNotFound -> 404, anything else -> 500.
func FromError(c echo.Context, status string, err error, notFoundMessage string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return BadRequestWithMessage(c, ve.Message)
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, notFoundMessage)
	default:
		return InternalServerError(c, status, err)
	}
}
