package services

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/store"
)

type CreateRoomInput struct {
	Number        int
	Name          string
	Type          string
	PricePerDay   float64
	Specification []string
}

// UpdateRoomInput carries patch semantics; Number is accepted on the wire
// only to be rejected, since room numbers are immutable after creation.
type UpdateRoomInput struct {
	Number        *int
	Name          *string
	Type          *string
	PricePerDay   *float64
	Specification *[]string
}

type RoomService struct {
	rooms    store.RoomStore
	hostels  store.HostelStore
	bookings store.BookingStore
	media    media.Gateway
}

func NewRoomService(rooms store.RoomStore, hostels store.HostelStore, bookings store.BookingStore, gateway media.Gateway) *RoomService {
	return &RoomService{rooms: rooms, hostels: hostels, bookings: bookings, media: gateway}
}

// Create inserts a room under the hostel and records the back-reference on
// the hostel's room set. Room numbers must be unique within a hostel.
func (s *RoomService) Create(ctx context.Context, hostelID primitive.ObjectID, input CreateRoomInput) (*models.Room, error) {
	hostel, err := s.hostels.FindByID(ctx, hostelID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Hostel not found")
		}
		return nil, err
	}

	taken, err := s.rooms.NumberExists(ctx, hostel.ID, input.Number)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Duplicate room number")
	}

	room := models.Room{
		Number:        input.Number,
		Name:          input.Name,
		Type:          input.Type,
		PricePerDay:   input.PricePerDay,
		Specification: input.Specification,
		HostelID:      hostel.ID,
	}
	if err := s.rooms.Insert(ctx, &room); err != nil {
		return nil, err
	}

	if err := s.hostels.AddRoom(ctx, hostel.ID, room.ID); err != nil {
		return nil, err
	}
	return &room, nil
}

// Get returns a room with its owning hostel populated.
func (s *RoomService) Get(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return nil, err
	}

	hostel, err := s.hostels.FindByID(ctx, room.HostelID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	room.Hostel = hostel
	return room, nil
}

func (s *RoomService) ListByHostel(ctx context.Context, hostelID primitive.ObjectID) ([]models.Room, error) {
	if _, err := s.hostels.FindByID(ctx, hostelID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Hostel not found")
		}
		return nil, err
	}
	return s.rooms.FindByHostel(ctx, hostelID)
}

func (s *RoomService) Update(ctx context.Context, id primitive.ObjectID, input UpdateRoomInput) (*models.Room, error) {
	if input.Number != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Room number can't be changed")
	}

	room, err := s.rooms.Patch(ctx, id, store.RoomPatch{
		Name:          input.Name,
		Type:          input.Type,
		PricePerDay:   input.PricePerDay,
		Specification: input.Specification,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return nil, err
	}
	return room, nil
}

// Delete cascades: the room id is pulled from the owning hostel's room set,
// the room's picture assets are destroyed, bookings against the room are
// deleted, then the room itself. Returns the owning hostel with its
// remaining rooms populated.
func (s *RoomService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Hostel, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return nil, err
	}

	if err := s.hostels.RemoveRoom(ctx, room.HostelID, room.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if len(room.Pictures) > 0 {
		if err := s.media.DestroyAll(ctx, room.Pictures); err != nil {
			return nil, err
		}
	}

	if _, err := s.bookings.DeleteByRoom(ctx, room.ID); err != nil {
		return nil, err
	}

	if err := s.rooms.Delete(ctx, room.ID); err != nil {
		return nil, err
	}

	hostel, err := s.hostels.FindByID(ctx, room.HostelID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Owning hostel vanished mid-cascade. The room is gone either
			// way, but report the hostel so callers never see a null result
			// under a success envelope.
			return nil, fiber.NewError(fiber.StatusNotFound, "Hostel not found")
		}
		return nil, err
	}

	rooms, err := s.rooms.FindByIDs(ctx, hostel.RoomIDs)
	if err != nil {
		return nil, err
	}
	hostel.Rooms = rooms
	return hostel, nil
}

func (s *RoomService) ReplacePictures(ctx context.Context, id primitive.ObjectID, files []media.UploadFile) (*models.Room, error) {
	if len(files) < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Please upload room pictures")
	}

	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Room not found")
		}
		return nil, err
	}

	pictures, err := s.media.UploadAll(ctx, files, media.RoomFolder)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.SetPictures(ctx, room.ID, pictures); err != nil {
		return nil, err
	}

	if len(room.Pictures) > 0 {
		if err := s.media.DestroyAll(ctx, room.Pictures); err != nil {
			return nil, err
		}
	}

	room.Pictures = pictures
	return room, nil
}
