package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/store"
)

// SearchQuery is the availability search input. Nil fields mean "no filter".
type SearchQuery struct {
	Location string
	MinRooms *int
	Persons  *int
	From     *time.Time
	To       *time.Time
}

type CreateHostelInput struct {
	Name          string
	Location      string
	Distance      float64
	Specification []string
	Description   string
}

type HostelService struct {
	hostels  store.HostelStore
	rooms    store.RoomStore
	bookings store.BookingStore
	media    media.Gateway
}

func NewHostelService(hostels store.HostelStore, rooms store.RoomStore, bookings store.BookingStore, gateway media.Gateway) *HostelService {
	return &HostelService{hostels: hostels, rooms: rooms, bookings: bookings, media: gateway}
}

func (s *HostelService) Create(ctx context.Context, input CreateHostelInput) (*models.Hostel, error) {
	hostel := models.Hostel{
		Name:          input.Name,
		Location:      input.Location,
		Distance:      input.Distance,
		Specification: input.Specification,
		Description:   input.Description,
	}
	if err := s.hostels.Insert(ctx, &hostel); err != nil {
		return nil, err
	}
	return &hostel, nil
}

// Get returns one hostel with its rooms populated.
func (s *HostelService) Get(ctx context.Context, id primitive.ObjectID) (*models.Hostel, error) {
	hostel, err := s.hostels.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Hostel not found")
		}
		return nil, err
	}

	if err := s.populateRooms(ctx, hostel); err != nil {
		return nil, err
	}
	return hostel, nil
}

func (s *HostelService) Update(ctx context.Context, id primitive.ObjectID, patch store.HostelPatch) (*models.Hostel, error) {
	hostel, err := s.hostels.Patch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Hostel not found")
		}
		return nil, err
	}
	return hostel, nil
}

// Search runs the availability filter: the store handles the cheap location
// substring and room-count matching, then occupancy and date predicates run
// over the populated rooms in memory.
func (s *HostelService) Search(ctx context.Context, query SearchQuery) ([]models.Hostel, error) {
	if query.Persons != nil && *query.Persons < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "At least one person required")
	}
	if query.MinRooms != nil && *query.MinRooms < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "At least one room required")
	}

	var requestedDays []time.Time
	if query.From != nil && query.To != nil {
		if query.From.After(*query.To) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Please check start and end date")
		}
		requestedDays = expandDateRange(*query.From, *query.To)
	}

	minRooms := 0
	if query.MinRooms != nil {
		minRooms = *query.MinRooms
	}

	hostels, err := s.hostels.Find(ctx, store.HostelFilter{Location: query.Location, MinRooms: minRooms})
	if err != nil {
		return nil, err
	}
	for i := range hostels {
		if err := s.populateRooms(ctx, &hostels[i]); err != nil {
			return nil, err
		}
	}

	if query.Persons != nil {
		persons := *query.Persons
		hostels = keep(hostels, func(h models.Hostel) bool {
			for _, room := range h.Rooms {
				if persons <= 1 || room.Type == models.RoomTypeDouble {
					return true
				}
			}
			return false
		})
	}

	if len(requestedDays) > 0 {
		hostels = keep(hostels, func(h models.Hostel) bool {
			for _, room := range h.Rooms {
				if !overlapsAny(room.NotAvailable, requestedDays) {
					return true
				}
			}
			return false
		})
	}

	return hostels, nil
}

// Delete cascades: rooms referenced by the hostel, the hostel's own picture
// assets, and every booking against the hostel go first, then the hostel
// itself. Rooms that no longer resolve are treated as already deleted so a
// retry after a partial failure is safe. Room picture assets are left alone
// on this path; only the room-deletion path destroys them.
func (s *HostelService) Delete(ctx context.Context, id primitive.ObjectID) ([]models.Hostel, error) {
	hostel, err := s.hostels.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Hostel not found")
		}
		return nil, err
	}

	for _, roomID := range hostel.RoomIDs {
		if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if err := s.rooms.Delete(ctx, roomID); err != nil {
			return nil, err
		}
	}

	if len(hostel.Pictures) > 0 {
		if err := s.media.DestroyAll(ctx, hostel.Pictures); err != nil {
			return nil, err
		}
	}

	deleted, err := s.bookings.DeleteByHostel(ctx, hostel.ID)
	if err != nil {
		return nil, err
	}
	if deleted > 0 {
		log.Printf("Deleted %d bookings for hostel %s", deleted, hostel.ID.Hex())
	}

	if err := s.hostels.Delete(ctx, hostel.ID); err != nil {
		return nil, err
	}

	return s.hostels.FindAll(ctx)
}

// ReplacePictures uploads the new set, persists it, and only then destroys
// the previous assets, so a crash mid-upload never loses the old pictures.
func (s *HostelService) ReplacePictures(ctx context.Context, id primitive.ObjectID, files []media.UploadFile) (*models.Hostel, error) {
	if len(files) < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Please upload hostel pictures")
	}

	hostel, err := s.hostels.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Hostel not found")
		}
		return nil, err
	}

	pictures, err := s.media.UploadAll(ctx, files, media.HostelFolder)
	if err != nil {
		return nil, err
	}
	if err := s.hostels.SetPictures(ctx, hostel.ID, pictures); err != nil {
		return nil, err
	}

	if len(hostel.Pictures) > 0 {
		if err := s.media.DestroyAll(ctx, hostel.Pictures); err != nil {
			return nil, err
		}
	}

	hostel.Pictures = pictures
	return hostel, nil
}

func (s *HostelService) populateRooms(ctx context.Context, hostel *models.Hostel) error {
	rooms, err := s.rooms.FindByIDs(ctx, hostel.RoomIDs)
	if err != nil {
		return err
	}
	hostel.Rooms = rooms
	return nil
}

func keep(hostels []models.Hostel, pred func(models.Hostel) bool) []models.Hostel {
	kept := hostels[:0]
	for _, h := range hostels {
		if pred(h) {
			kept = append(kept, h)
		}
	}
	return kept
}
