package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/store"
)

type hostelFixture struct {
	hostels  *store.MemoryHostelStore
	rooms    *store.MemoryRoomStore
	bookings *store.MemoryBookingStore
	gateway  *fakeGateway
	svc      *HostelService
}

func newHostelFixture() *hostelFixture {
	f := &hostelFixture{
		hostels:  store.NewMemoryHostelStore(),
		rooms:    store.NewMemoryRoomStore(),
		bookings: store.NewMemoryBookingStore(),
		gateway:  newFakeGateway(),
	}
	f.svc = NewHostelService(f.hostels, f.rooms, f.bookings, f.gateway)
	return f
}

func (f *hostelFixture) addHostel(t *testing.T, name, location string) *models.Hostel {
	t.Helper()
	hostel, err := f.svc.Create(context.Background(), CreateHostelInput{
		Name:     name,
		Location: location,
		Distance: 1.2,
	})
	require.NoError(t, err)
	return hostel
}

func (f *hostelFixture) addRoom(t *testing.T, hostelID primitive.ObjectID, number int, roomType string, notAvailable ...time.Time) *models.Room {
	t.Helper()
	room := models.Room{
		Number:       number,
		Name:         fmt.Sprintf("Room %d", number),
		Type:         roomType,
		PricePerDay:  500,
		NotAvailable: notAvailable,
		HostelID:     hostelID,
	}
	require.NoError(t, f.rooms.Insert(context.Background(), &room))
	require.NoError(t, f.hostels.AddRoom(context.Background(), hostelID, room.ID))
	return &room
}

func intPtr(v int) *int              { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func hostelNames(hostels []models.Hostel) []string {
	names := make([]string, len(hostels))
	for i, h := range hostels {
		names[i] = h.Name
	}
	return names
}

func TestHostelSearchValidation(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	t.Run("persons below one", func(t *testing.T) {
		_, err := f.svc.Search(ctx, SearchQuery{Persons: intPtr(0)})
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
		assert.Contains(t, err.Error(), "At least one person required")
	})

	t.Run("rooms below one", func(t *testing.T) {
		_, err := f.svc.Search(ctx, SearchQuery{MinRooms: intPtr(0)})
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
		assert.Contains(t, err.Error(), "At least one room required")
	})

	t.Run("start date after end date", func(t *testing.T) {
		_, err := f.svc.Search(ctx, SearchQuery{
			From: timePtr(date(2024, time.June, 10)),
			To:   timePtr(date(2024, time.June, 5)),
		})
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Please check start and end date")
	})
}

func TestHostelSearchFilters(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	// Two hostels in Pune, one elsewhere. The first Pune hostel has a Double
	// room free on the requested dates, the second only a Single room that is
	// fully booked over them.
	sunrise := f.addHostel(t, "Sunrise", "Pune")
	f.addRoom(t, sunrise.ID, 101, models.RoomTypeDouble)
	f.addRoom(t, sunrise.ID, 102, models.RoomTypeSingle)

	lakeview := f.addHostel(t, "Lakeview", "Pune")
	f.addRoom(t, lakeview.ID, 201, models.RoomTypeSingle,
		date(2024, time.June, 1), date(2024, time.June, 2), date(2024, time.June, 3))

	other := f.addHostel(t, "Hilltop", "Mumbai")
	f.addRoom(t, other.ID, 301, models.RoomTypeDouble)

	t.Run("location substring is case insensitive", func(t *testing.T) {
		hostels, err := f.svc.Search(ctx, SearchQuery{Location: "pune"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Sunrise", "Lakeview"}, hostelNames(hostels))
	})

	t.Run("minimum room count", func(t *testing.T) {
		hostels, err := f.svc.Search(ctx, SearchQuery{Location: "Pune", MinRooms: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sunrise"}, hostelNames(hostels))
	})

	t.Run("more than one person needs a double room", func(t *testing.T) {
		hostels, err := f.svc.Search(ctx, SearchQuery{Location: "Pune", Persons: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sunrise"}, hostelNames(hostels))
	})

	t.Run("single person accepts any room type", func(t *testing.T) {
		hostels, err := f.svc.Search(ctx, SearchQuery{Location: "Pune", Persons: intPtr(1)})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Sunrise", "Lakeview"}, hostelNames(hostels))
	})

	t.Run("dates exclude hostels with no free room", func(t *testing.T) {
		hostels, err := f.svc.Search(ctx, SearchQuery{
			Location: "Pune",
			From:     timePtr(date(2024, time.June, 2)),
			To:       timePtr(date(2024, time.June, 4)),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sunrise"}, hostelNames(hostels))
	})

	t.Run("partial ledger overlap still blocks the room", func(t *testing.T) {
		// Lakeview's room is busy only on June 3 within this range, but any
		// overlap makes it unavailable.
		hostels, err := f.svc.Search(ctx, SearchQuery{
			Location: "Pune",
			From:     timePtr(date(2024, time.June, 3)),
			To:       timePtr(date(2024, time.June, 5)),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sunrise"}, hostelNames(hostels))
	})

	t.Run("free dates pass", func(t *testing.T) {
		hostels, err := f.svc.Search(ctx, SearchQuery{
			Location: "Pune",
			From:     timePtr(date(2024, time.June, 10)),
			To:       timePtr(date(2024, time.June, 12)),
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Sunrise", "Lakeview"}, hostelNames(hostels))
	})

	t.Run("results carry the populated room list", func(t *testing.T) {
		hostels, err := f.svc.Search(ctx, SearchQuery{Location: "Pune", MinRooms: intPtr(2)})
		require.NoError(t, err)
		require.Len(t, hostels, 1)
		assert.Len(t, hostels[0].Rooms, 2)
	})
}

func TestHostelSearchOccupancyAndDatePassesAreIndependent(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	// The only Double room is booked on the requested day, but a Single room
	// is free. The occupancy pass only asks whether a Double exists and the
	// date pass only asks whether any room is free on the range; the two
	// predicates never look at the same room together, so the hostel still
	// qualifies for a two-person dated search.
	hostel := f.addHostel(t, "Sunrise", "Pune")
	f.addRoom(t, hostel.ID, 1, models.RoomTypeSingle)
	f.addRoom(t, hostel.ID, 2, models.RoomTypeDouble, date(2024, time.January, 1))

	busy, err := f.svc.Search(ctx, SearchQuery{
		Persons: intPtr(2),
		From:    timePtr(date(2024, time.January, 1)),
		To:      timePtr(date(2024, time.January, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunrise"}, hostelNames(busy))

	free, err := f.svc.Search(ctx, SearchQuery{
		Persons: intPtr(2),
		From:    timePtr(date(2024, time.February, 1)),
		To:      timePtr(date(2024, time.February, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunrise"}, hostelNames(free))
}

func TestHostelGet(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise", "Pune")
	f.addRoom(t, hostel.ID, 101, models.RoomTypeSingle)

	t.Run("populates rooms", func(t *testing.T) {
		got, err := f.svc.Get(ctx, hostel.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sunrise", got.Name)
		require.Len(t, got.Rooms, 1)
		assert.Equal(t, 101, got.Rooms[0].Number)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.svc.Get(ctx, primitive.NewObjectID())
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Hostel not found")
	})
}

func TestHostelUpdate(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise", "Pune")

	name := "Sunrise Deluxe"
	updated, err := f.svc.Update(ctx, hostel.ID, store.HostelPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Deluxe", updated.Name)
	assert.Equal(t, "Pune", updated.Location)

	_, err = f.svc.Update(ctx, primitive.NewObjectID(), store.HostelPatch{Name: &name})
	assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
}

func TestHostelDeleteCascade(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise", "Pune")
	room := f.addRoom(t, hostel.ID, 101, models.RoomTypeDouble)
	keeper := f.addHostel(t, "Lakeview", "Pune")

	require.NoError(t, f.hostels.SetPictures(ctx, hostel.ID, []models.Picture{{AssetID: "h-1", URL: "u"}}))
	require.NoError(t, f.rooms.SetPictures(ctx, room.ID, []models.Picture{{AssetID: "r-1", URL: "u"}}))

	booking := models.Booking{Reference: "AAAA1111", UserID: primitive.NewObjectID(), HostelID: hostel.ID, RoomID: room.ID}
	require.NoError(t, f.bookings.Insert(ctx, &booking))
	unrelated := models.Booking{Reference: "BBBB2222", UserID: primitive.NewObjectID(), HostelID: keeper.ID, RoomID: primitive.NewObjectID()}
	require.NoError(t, f.bookings.Insert(ctx, &unrelated))

	remaining, err := f.svc.Delete(ctx, hostel.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Lakeview"}, hostelNames(remaining))

	_, err = f.rooms.FindByID(ctx, room.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.bookings.FindByID(ctx, booking.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = f.bookings.FindByID(ctx, unrelated.ID)
	assert.NoError(t, err)

	// Only the hostel's own picture assets are destroyed on this path.
	assert.Equal(t, []string{"h-1"}, f.gateway.destroyed)

	t.Run("second delete is a not found", func(t *testing.T) {
		_, err := f.svc.Delete(ctx, hostel.ID)
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	})
}

func TestHostelDeleteSkipsStaleRoomRefs(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise", "Pune")
	room := f.addRoom(t, hostel.ID, 101, models.RoomTypeSingle)

	// Simulate a partially failed earlier cascade: the room document is gone
	// but the hostel still references it.
	require.NoError(t, f.rooms.Delete(ctx, room.ID))

	_, err := f.svc.Delete(ctx, hostel.ID)
	require.NoError(t, err)
	_, err = f.hostels.FindByID(ctx, hostel.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHostelReplacePictures(t *testing.T) {
	f := newHostelFixture()
	ctx := context.Background()

	hostel := f.addHostel(t, "Sunrise", "Pune")
	require.NoError(t, f.hostels.SetPictures(ctx, hostel.ID, []models.Picture{{AssetID: "old-1", URL: "u"}}))

	t.Run("empty upload is rejected", func(t *testing.T) {
		_, err := f.svc.ReplacePictures(ctx, hostel.ID, nil)
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
		assert.Contains(t, err.Error(), "Please upload hostel pictures")
	})

	t.Run("unknown hostel", func(t *testing.T) {
		_, err := f.svc.ReplacePictures(ctx, primitive.NewObjectID(), []media.UploadFile{{Name: "a.jpg", Reader: strings.NewReader("x")}})
		assert.Equal(t, fiber.StatusNotFound, fiberCode(t, err))
	})

	t.Run("new set is persisted before old assets are destroyed", func(t *testing.T) {
		updated, err := f.svc.ReplacePictures(ctx, hostel.ID, []media.UploadFile{
			{Name: "a.jpg", Reader: strings.NewReader("x")},
			{Name: "b.jpg", Reader: strings.NewReader("y")},
		})
		require.NoError(t, err)
		assert.Len(t, updated.Pictures, 2)

		stored, err := f.hostels.FindByID(ctx, hostel.ID)
		require.NoError(t, err)
		assert.Equal(t, updated.Pictures, stored.Pictures)

		assert.Equal(t, []string{"upload", "destroy"}, f.gateway.calls)
		assert.Equal(t, []string{"old-1"}, f.gateway.destroyed)
	})
}
