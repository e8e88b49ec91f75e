package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hostelites/hostelites-api/handlers"
	"github.com/hostelites/hostelites-api/middleware"
)

func HostelRoutes(app *fiber.App, h *handlers.HostelHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	api.Get("/hostels", h.GetAllHostels)
	api.Get("/hostel/:id", h.GetHostelDetails)

	admin := api.Group("", middleware.Protected(jwtSecret), middleware.AdminRequired())
	admin.Post("/hostel/new", h.CreateHostel)
	admin.Put("/hostel/:id", h.UpdateHostel)
	admin.Delete("/hostel/:id", h.DeleteHostel)
	admin.Put("/hostel/:id/images", h.UploadHostelPictures)
}
