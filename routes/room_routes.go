package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hostelites/hostelites-api/handlers"
	"github.com/hostelites/hostelites-api/middleware"
)

func RoomRoutes(app *fiber.App, h *handlers.RoomHandler, jwtSecret string) {
	api := app.Group("/api/v1")

	api.Get("/hostel/:id/rooms", h.GetHostelRooms)
	api.Get("/room/:id", h.GetRoomDetails)

	admin := api.Group("", middleware.Protected(jwtSecret), middleware.AdminRequired())
	admin.Post("/hostel/:id/room/new", h.CreateRoom)
	admin.Put("/room/:id", h.UpdateRoom)
	admin.Delete("/room/:id", h.DeleteRoom)
	admin.Put("/room/:id/images", h.UploadRoomPictures)
}
