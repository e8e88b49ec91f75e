// Package store defines the document-store operations the service layer is
// built on, plus the Mongo-backed implementations. Patch structs follow
// present-field-replaces semantics: a nil field leaves the stored value
// unchanged.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/models"
)

var ErrNotFound = errors.New("document not found")

// HostelFilter is the store-side half of a hostel search: cheap substring and
// room-count filtering. Date and occupancy predicates run in memory over the
// populated result.
type HostelFilter struct {
	Location string
	MinRooms int
}

type HostelPatch struct {
	Name          *string
	Location      *string
	Distance      *float64
	Specification *[]string
	Description   *string
}

type RoomPatch struct {
	Name          *string
	Type          *string
	PricePerDay   *float64
	Specification *[]string
}

type HostelStore interface {
	Insert(ctx context.Context, hostel *models.Hostel) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Hostel, error)
	Find(ctx context.Context, filter HostelFilter) ([]models.Hostel, error)
	FindAll(ctx context.Context) ([]models.Hostel, error)
	Patch(ctx context.Context, id primitive.ObjectID, patch HostelPatch) (*models.Hostel, error)
	SetPictures(ctx context.Context, id primitive.ObjectID, pictures []models.Picture) error
	AddRoom(ctx context.Context, hostelID, roomID primitive.ObjectID) error
	RemoveRoom(ctx context.Context, hostelID, roomID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type RoomStore interface {
	Insert(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Room, error)
	FindByHostel(ctx context.Context, hostelID primitive.ObjectID) ([]models.Room, error)
	NumberExists(ctx context.Context, hostelID primitive.ObjectID, number int) (bool, error)
	Patch(ctx context.Context, id primitive.ObjectID, patch RoomPatch) (*models.Room, error)
	SetPictures(ctx context.Context, id primitive.ObjectID, pictures []models.Picture) error
	PruneNotAvailableBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BookingStore interface {
	Insert(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Booking, error)
	SetReceiptURL(ctx context.Context, id primitive.ObjectID, url string) error
	DeleteByHostel(ctx context.Context, hostelID primitive.ObjectID) (int64, error)
	DeleteByRoom(ctx context.Context, roomID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
