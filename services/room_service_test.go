package services

import (
	"context"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/store"
)

type roomFixture struct {
	hostels  *store.MemoryHostelStore
	rooms    *store.MemoryRoomStore
	bookings *store.MemoryBookingStore
	gateway  *fakeGateway
	svc      *RoomService
}

func newRoomFixture() *roomFixture {
	f := &roomFixture{
		hostels:  store.NewMemoryHostelStore(),
		rooms:    store.NewMemoryRoomStore(),
		bookings: store.NewMemoryBookingStore(),
		gateway:  newFakeGateway(),
	}
	f.svc = NewRoomService(f.rooms, f.hostels, f.bookings, f.gateway)
	return f
}

func (f *roomFixture) addHostel(t *testing.T, name string) *models.Hostel {
	t.Helper()
	hostel := models.Hostel{Name: name, Location: "Pune"}
	require.NoError(t, f.hostels.Insert(context.Background(), &hostel))
	return &hostel
}

func TestRoomCreate(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise")
	other := f.addHostel(t, "Lakeview")

	t.Run("inserts and links to the hostel", func(t *testing.T) {
		room, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{
			Number:      101,
			Name:        "Garden view",
			Type:        models.RoomTypeDouble,
			PricePerDay: 750,
		})
		require.NoError(t, err)
		assert.Equal(t, hostel.ID, room.HostelID)

		stored, err := f.hostels.FindByID(ctx, hostel.ID)
		require.NoError(t, err)
		assert.Contains(t, stored.RoomIDs, room.ID)
	})

	t.Run("duplicate number within the same hostel", func(t *testing.T) {
		_, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 101, Name: "Clash", Type: models.RoomTypeSingle, PricePerDay: 500})
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Duplicate room number")
	})

	t.Run("same number in another hostel is fine", func(t *testing.T) {
		_, err := f.svc.Create(ctx, other.ID, CreateRoomInput{Number: 101, Name: "Twin", Type: models.RoomTypeSingle, PricePerDay: 500})
		assert.NoError(t, err)
	})

	t.Run("unknown hostel", func(t *testing.T) {
		_, err := f.svc.Create(ctx, primitive.NewObjectID(), CreateRoomInput{Number: 1, Name: "x", Type: models.RoomTypeSingle, PricePerDay: 100})
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Hostel not found")
	})
}

func TestRoomGet(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise")
	room, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 101, Name: "Garden view", Type: models.RoomTypeSingle, PricePerDay: 500})
	require.NoError(t, err)

	t.Run("populates the owning hostel", func(t *testing.T) {
		got, err := f.svc.Get(ctx, room.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Hostel)
		assert.Equal(t, "Sunrise", got.Hostel.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.svc.Get(ctx, primitive.NewObjectID())
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Room not found")
	})
}

func TestRoomUpdate(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise")
	room, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 101, Name: "Garden view", Type: models.RoomTypeSingle, PricePerDay: 500})
	require.NoError(t, err)

	t.Run("patches present fields only", func(t *testing.T) {
		price := 900.0
		updated, err := f.svc.Update(ctx, room.ID, UpdateRoomInput{PricePerDay: &price})
		require.NoError(t, err)
		assert.Equal(t, 900.0, updated.PricePerDay)
		assert.Equal(t, "Garden view", updated.Name)
	})

	t.Run("room number is immutable", func(t *testing.T) {
		number := 999
		_, err := f.svc.Update(ctx, room.ID, UpdateRoomInput{Number: &number})
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Room number can't be changed")

		stored, err := f.rooms.FindByID(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, 101, stored.Number)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "x"
		_, err := f.svc.Update(ctx, primitive.NewObjectID(), UpdateRoomInput{Name: &name})
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	})
}

func TestRoomDeleteCascade(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise")
	room, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 101, Name: "Garden view", Type: models.RoomTypeSingle, PricePerDay: 500})
	require.NoError(t, err)
	sibling, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 102, Name: "Street view", Type: models.RoomTypeDouble, PricePerDay: 600})
	require.NoError(t, err)

	require.NoError(t, f.rooms.SetPictures(ctx, room.ID, []models.Picture{{AssetID: "r-1", URL: "u"}}))

	booking := models.Booking{Reference: "AAAA1111", UserID: primitive.NewObjectID(), HostelID: hostel.ID, RoomID: room.ID}
	require.NoError(t, f.bookings.Insert(ctx, &booking))
	siblingBooking := models.Booking{Reference: "BBBB2222", UserID: primitive.NewObjectID(), HostelID: hostel.ID, RoomID: sibling.ID}
	require.NoError(t, f.bookings.Insert(ctx, &siblingBooking))

	got, err := f.svc.Delete(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []primitive.ObjectID{sibling.ID}, got.RoomIDs)
	require.Len(t, got.Rooms, 1)
	assert.Equal(t, 102, got.Rooms[0].Number)

	_, err = f.rooms.FindByID(ctx, room.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Room picture assets go with the room; the sibling's booking survives.
	assert.Equal(t, []string{"r-1"}, f.gateway.destroyed)
	_, err = f.bookings.FindByID(ctx, booking.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.bookings.FindByID(ctx, siblingBooking.ID)
	assert.NoError(t, err)

	t.Run("second delete is a not found", func(t *testing.T) {
		_, err := f.svc.Delete(ctx, room.ID)
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	})
}

func TestRoomDeleteWhenHostelVanished(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise")
	room, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 101, Name: "Garden view", Type: models.RoomTypeSingle, PricePerDay: 500})
	require.NoError(t, err)

	require.NoError(t, f.hostels.Delete(ctx, hostel.ID))

	_, err = f.svc.Delete(ctx, room.ID)
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	assert.Contains(t, err.Error(), "Hostel not found")

	// The cascade still ran; the room document is gone.
	_, err = f.rooms.FindByID(ctx, room.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoomListByHostel(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise")
	_, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 101, Name: "a", Type: models.RoomTypeSingle, PricePerDay: 500})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 102, Name: "b", Type: models.RoomTypeDouble, PricePerDay: 600})
	require.NoError(t, err)

	rooms, err := f.svc.ListByHostel(ctx, hostel.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	_, err = f.svc.ListByHostel(ctx, primitive.NewObjectID())
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestRoomReplacePictures(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise")
	room, err := f.svc.Create(ctx, hostel.ID, CreateRoomInput{Number: 101, Name: "Garden view", Type: models.RoomTypeSingle, PricePerDay: 500})
	require.NoError(t, err)
	require.NoError(t, f.rooms.SetPictures(ctx, room.ID, []models.Picture{{AssetID: "old-1", URL: "u"}}))

	t.Run("empty upload is rejected", func(t *testing.T) {
		_, err := f.svc.ReplacePictures(ctx, room.ID, nil)
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Please upload room pictures")
	})

	t.Run("new set is persisted before old assets are destroyed", func(t *testing.T) {
		updated, err := f.svc.ReplacePictures(ctx, room.ID, []media.UploadFile{{Name: "a.jpg", Reader: strings.NewReader("x")}})
		require.NoError(t, err)
		require.Len(t, updated.Pictures, 1)

		stored, err := f.rooms.FindByID(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Pictures, stored.Pictures)

		assert.Equal(t, []string{"upload", "destroy"}, f.gateway.calls)
		assert.Equal(t, []string{"old-1"}, f.gateway.destroyed)
	})
}
