package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hostelites/hostelites-api/handlers"
	"github.com/hostelites/hostelites-api/middleware"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	booking := api.Group("", middleware.Protected(jwtSecret))
	booking.Post("/booking/new", h.CreateBooking)
	booking.Get("/bookings/me", h.GetMyBookings)
	booking.Get("/booking/:id", h.GetBooking)

	admin := api.Group("", middleware.Protected(jwtSecret), middleware.AdminRequired())
	admin.Get("/bookings", h.GetAllBookings)
	admin.Put("/booking/:id/status", h.UpdateBookingStatus)
	admin.Delete("/booking/:id", h.DeleteBooking)
}
