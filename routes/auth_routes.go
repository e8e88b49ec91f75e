package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hostelites/hostelites-api/handlers"
	"github.com/hostelites/hostelites-api/middleware"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	api.Post("/register", h.RegisterUser)
	api.Post("/login", h.LoginUser)
	api.Get("/me", middleware.Protected(jwtSecret), h.GetMe)
}
