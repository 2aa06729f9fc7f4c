package routes

import (
	"github.com/gofiber/fiber/v2"

	"mascoprint-backend/controllers"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, contact *controllers.ContactController) {
	api := app.Group("/api")

	api.Get("/health", controllers.Health)
	api.Post("/contact", contact.Submit)
}
