package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/services"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type CreateBookingRequest struct {
	RoomID      string   `json:"room_id" validate:"required"`
	Dates       []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
	Phone       string   `json:"phone" validate:"required"`
	PaidAt      string   `json:"paid_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	PaymentID   string   `json:"payment_id"`
	PaymentStat string   `json:"payment_status"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	roomID, err := primitive.ObjectIDFromHex(req.RoomID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
	}

	dates := make([]time.Time, len(req.Dates))
	for i, d := range req.Dates {
		dates[i], _ = time.Parse(dateLayout, d)
	}
	paidAt, _ := time.Parse(time.RFC3339, req.PaidAt)

	booking, err := h.bookings.Create(c.Context(), userID, services.CreateBookingInput{
		RoomID: roomID,
		Dates:  dates,
		Phone:  req.Phone,
		PaidAt: paidAt,
		PaymentInfo: models.PaymentInfo{
			ID:     req.PaymentID,
			Status: req.PaymentStat,
		},
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "booking": booking})
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	userID, _ := currentUser(c)

	bookings, err := h.bookings.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Get(c.Context(), id, userID, role == "admin")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "booking": booking})
}

func (h *BookingHandler) GetAllBookings(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "bookings": bookings})
}

func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	booking, err := h.bookings.SetStatus(c.Context(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "booking": booking})
}

func (h *BookingHandler) DeleteBooking(c *fiber.Ctx) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	if err := h.bookings.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Booking deleted successfully"})
}

func bookingID(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return primitive.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "Invalid booking id")
	}
	return id, nil
}
