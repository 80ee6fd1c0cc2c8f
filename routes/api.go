package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/emergency-alert-service/handlers"
)

// RegisterRoutes registers all API routes.
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	alertHandler *handlers.AlertHandler,
	contactHandler *handlers.ContactHandler,
	chatHandler *handlers.ChatHandler,
) {
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Alerts
	e.POST("/send-alert", alertHandler.SendAlert)
	e.GET("/alerts/:id", alertHandler.GetBroadcast)

	// Contacts
	e.POST("/add-contact", contactHandler.AddContact)
	e.GET("/get-contacts", contactHandler.GetContacts)
	e.DELETE("/delete-contact/:id", contactHandler.DeleteContact)

	e.POST("/api/chat", chatHandler.Chat)
}
