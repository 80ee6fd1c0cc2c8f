package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
	"github.com/onurcolak/emergency-alert-service/pkg/response"
	"github.com/onurcolak/emergency-alert-service/pkg/validator"
)

const contactFieldsRequired = "Name, phone number, and user ID are required"

type contactManager interface {
	AddContact(ctx context.Context, name, phoneNumber, userID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, userID string) ([]domain.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

type ContactHandler struct {
	service contactManager
}

func NewContactHandler(service contactManager) *ContactHandler {
	return &ContactHandler{service: service}
}

type AddContactRequest struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	UserID      string `json:"userId" validate:"required"`
}

type AddContactResponse struct {
	Status  string          `json:"status"`
	Contact *domain.Contact `json:"contact"`
}

type ContactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

// AddContact godoc
// @Summary Add an emergency contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body AddContactRequest true "Contact"
// @Success 200 {object} AddContactResponse
// @Failure 400 {object} validator.ValidationErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /add-contact [post]
func (h *ContactHandler) AddContact(c echo.Context) error {
	var req AddContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequestWithMessage(c, "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err, contactFieldsRequired)
	}

	contact, err := h.service.AddContact(c.Request().Context(), req.Name, req.PhoneNumber, req.UserID)
	if err != nil {
		return response.FromError(c, "Error adding contact", err, "")
	}

	return response.Ok(c, AddContactResponse{
		Status:  "Contact added successfully",
		Contact: contact,
	})
}

// GetContacts godoc
// @Summary List a user's contacts
// @Tags contacts
// @Produce json
// @Param userId query string true "Owner user ID"
// @Success 200 {object} ContactsResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /get-contacts [get]
func (h *ContactHandler) GetContacts(c echo.Context) error {
	contacts, err := h.service.ListContacts(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return response.FromError(c, "Error fetching contacts", err, "")
	}

	return response.Ok(c, ContactsResponse{Contacts: contacts})
}

// DeleteContact godoc
// @Summary Delete a contact
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.StatusResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /delete-contact/{id} [delete]
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	if err := h.service.DeleteContact(c.Request().Context(), c.Param("id")); err != nil {
		return response.FromError(c, "Error deleting contact", err, "Contact not found")
	}

	return response.OkWithStatus(c, "Contact deleted successfully")
}
