package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/services"
)

type RoomHandler struct {
	rooms *services.RoomService
}

func NewRoomHandler(rooms *services.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

type CreateRoomRequest struct {
	Number        int      `json:"number" validate:"required,min=1"`
	Name          string   `json:"name" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=Single Double"`
	PricePerDay   float64  `json:"price_per_day" validate:"required,gt=0"`
	Specification []string `json:"specification"`
}

type UpdateRoomRequest struct {
	Number        *int      `json:"number"`
	Name          *string   `json:"name"`
	Type          *string   `json:"type"`
	PricePerDay   *float64  `json:"price_per_day"`
	Specification *[]string `json:"specification"`
}

func (h *RoomHandler) CreateRoom(c *fiber.Ctx) error {
	hostelID, err := hostelID(c)
	if err != nil {
		return err
	}

	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	room, err := h.rooms.Create(c.Context(), hostelID, services.CreateRoomInput{
		Number:        req.Number,
		Name:          req.Name,
		Type:          req.Type,
		PricePerDay:   req.PricePerDay,
		Specification: req.Specification,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "room": room})
}

func (h *RoomHandler) GetRoomDetails(c *fiber.Ctx) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}

	room, err := h.rooms.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "room": room})
}

func (h *RoomHandler) GetHostelRooms(c *fiber.Ctx) error {
	hostelID, err := hostelID(c)
	if err != nil {
		return err
	}

	rooms, err := h.rooms.ListByHostel(c.Context(), hostelID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "rooms": rooms})
}

func (h *RoomHandler) UpdateRoom(c *fiber.Ctx) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}

	var req UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}

	room, err := h.rooms.Update(c.Context(), id, services.UpdateRoomInput{
		Number:        req.Number,
		Name:          req.Name,
		Type:          req.Type,
		PricePerDay:   req.PricePerDay,
		Specification: req.Specification,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "room": room})
}

func (h *RoomHandler) DeleteRoom(c *fiber.Ctx) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}

	hostel, err := h.rooms.Delete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "hostel": hostel, "message": "Room deleted successfully"})
}

func (h *RoomHandler) UploadRoomPictures(c *fiber.Ctx) error {
	id, err := roomID(c)
	if err != nil {
		return err
	}

	files, closeFiles, err := picturesFromForm(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	room, err := h.rooms.ReplacePictures(c.Context(), id, files)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "room": room})
}

func roomID(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}
	return id, nil
}
