package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/notifications"
	"github.com/hostelites/hostelites-api/store"
	"github.com/hostelites/hostelites-api/utils"
)

type CreateBookingInput struct {
	RoomID      primitive.ObjectID
	Dates       []time.Time
	Phone       string
	PaidAt      time.Time
	PaymentInfo models.PaymentInfo
}

type BookingService struct {
	bookings store.BookingStore
	rooms    store.RoomStore
	hostels  store.HostelStore
	users    store.UserStore
	receipts *ReceiptService
	mail     *notifications.BrevoService
}

func NewBookingService(bookings store.BookingStore, rooms store.RoomStore, hostels store.HostelStore, users store.UserStore, receipts *ReceiptService, mail *notifications.BrevoService) *BookingService {
	return &BookingService{bookings: bookings, rooms: rooms, hostels: hostels, users: users, receipts: receipts, mail: mail}
}

// Create records a booking against a room. The room's availability ledger is
// NOT written here; it is maintained by an external collaborator.
func (s *BookingService) Create(ctx context.Context, userID primitive.ObjectID, input CreateBookingInput) (*models.Booking, error) {
	if len(input.Dates) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "At least one booking date required")
	}

	room, err := s.rooms.FindByID(ctx, input.RoomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return nil, err
	}

	reference, err := utils.GenerateBookingReference(ctx, s.bookings)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(input.Dates))
	for i, d := range input.Dates {
		dates[i] = day(d)
	}

	booking := models.Booking{
		Reference:        reference,
		UserID:           userID,
		HostelID:         room.HostelID,
		RoomID:           room.ID,
		Dates:            dates,
		TotalPricePerDay: room.PricePerDay,
		Phone:            input.Phone,
		PaidAt:           input.PaidAt,
		PaymentInfo:      input.PaymentInfo,
		Status:           models.BookingStatusProcessing,
	}
	if err := s.bookings.Insert(ctx, &booking); err != nil {
		return nil, err
	}

	hostelName := ""
	if hostel, err := s.hostels.FindByID(ctx, room.HostelID); err == nil {
		hostelName = hostel.Name
	}

	if s.receipts != nil {
		go s.receipts.GenerateAndAttach(booking, hostelName, room.Name)
	}
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		go s.mail.SendEmail(user.FullName, user.Email, "Your Hostelites Booking",
			fmt.Sprintf("<h1>Booking Received</h1><p>Your booking <b>%s</b> at %s is being processed.</p>", booking.Reference, hostelName))
	}

	return &booking, nil
}

func (s *BookingService) Get(ctx context.Context, id, requesterID primitive.ObjectID, isAdmin bool) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return nil, err
	}
	if !isAdmin && booking.UserID != requesterID {
		return nil, fiber.NewError(fiber.StatusForbidden, "This is not your booking")
	}
	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	return s.bookings.FindByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.FindAll(ctx)
}

func (s *BookingService) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Booking, error) {
	switch status {
	case models.BookingStatusProcessing, models.BookingStatusChecked, models.BookingStatusComplete:
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid booking status")
	}

	booking, err := s.bookings.SetStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.bookings.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Booking not found")
		}
		return err
	}
	return s.bookings.Delete(ctx, id)
}
