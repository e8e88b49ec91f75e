package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hostelites/hostelites-api/models"
)

// In-memory store implementations, interchangeable with the Mongo ones. Used
// for local development without a database and throughout the test suite.

type MemoryHostelStore struct {
	mu      sync.RWMutex
	hostels map[primitive.ObjectID]models.Hostel
}

func NewMemoryHostelStore() *MemoryHostelStore {
	return &MemoryHostelStore{hostels: make(map[primitive.ObjectID]models.Hostel)}
}

func (s *MemoryHostelStore) Insert(_ context.Context, hostel *models.Hostel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	hostel.ID = primitive.NewObjectID()
	hostel.CreatedAt = now
	hostel.UpdatedAt = now
	if hostel.Pictures == nil {
		hostel.Pictures = []models.Picture{}
	}
	if hostel.RoomIDs == nil {
		hostel.RoomIDs = []primitive.ObjectID{}
	}
	s.hostels[hostel.ID] = *hostel
	return nil
}

func (s *MemoryHostelStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hostel, ok := s.hostels[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &hostel, nil
}

func (s *MemoryHostelStore) Find(_ context.Context, filter HostelFilter) ([]models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Hostel{}
	for _, hostel := range s.hostels {
		if !strings.Contains(strings.ToLower(hostel.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if len(hostel.RoomIDs) < filter.MinRooms {
			continue
		}
		out = append(out, hostel)
	}
	return out, nil
}

func (s *MemoryHostelStore) FindAll(_ context.Context) ([]models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Hostel{}
	for _, hostel := range s.hostels {
		out = append(out, hostel)
	}
	return out, nil
}

func (s *MemoryHostelStore) Patch(_ context.Context, id primitive.ObjectID, patch HostelPatch) (*models.Hostel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hostel, ok := s.hostels[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		hostel.Name = *patch.Name
	}
	if patch.Location != nil {
		hostel.Location = *patch.Location
	}
	if patch.Distance != nil {
		hostel.Distance = *patch.Distance
	}
	if patch.Specification != nil {
		hostel.Specification = *patch.Specification
	}
	if patch.Description != nil {
		hostel.Description = *patch.Description
	}
	hostel.UpdatedAt = time.Now()
	s.hostels[id] = hostel
	return &hostel, nil
}

func (s *MemoryHostelStore) SetPictures(_ context.Context, id primitive.ObjectID, pictures []models.Picture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hostel, ok := s.hostels[id]
	if !ok {
		return ErrNotFound
	}
	hostel.Pictures = pictures
	hostel.UpdatedAt = time.Now()
	s.hostels[id] = hostel
	return nil
}

func (s *MemoryHostelStore) AddRoom(_ context.Context, hostelID, roomID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hostel, ok := s.hostels[hostelID]
	if !ok {
		return ErrNotFound
	}
	hostel.RoomIDs = append(append([]primitive.ObjectID{}, hostel.RoomIDs...), roomID)
	hostel.UpdatedAt = time.Now()
	s.hostels[hostelID] = hostel
	return nil
}

func (s *MemoryHostelStore) RemoveRoom(_ context.Context, hostelID, roomID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hostel, ok := s.hostels[hostelID]
	if !ok {
		return ErrNotFound
	}
	kept := []primitive.ObjectID{}
	for _, id := range hostel.RoomIDs {
		if id != roomID {
			kept = append(kept, id)
		}
	}
	hostel.RoomIDs = kept
	hostel.UpdatedAt = time.Now()
	s.hostels[hostelID] = hostel
	return nil
}

func (s *MemoryHostelStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.hostels, id)
	return nil
}

type MemoryRoomStore struct {
	mu    sync.RWMutex
	rooms map[primitive.ObjectID]models.Room
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{rooms: make(map[primitive.ObjectID]models.Room)}
}

func (s *MemoryRoomStore) Insert(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	room.ID = primitive.NewObjectID()
	room.CreatedAt = now
	room.UpdatedAt = now
	if room.Pictures == nil {
		room.Pictures = []models.Picture{}
	}
	if room.NotAvailable == nil {
		room.NotAvailable = []time.Time{}
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *MemoryRoomStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (s *MemoryRoomStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Room{}
	for _, id := range ids {
		if room, ok := s.rooms[id]; ok {
			out = append(out, room)
		}
	}
	return out, nil
}

func (s *MemoryRoomStore) FindByHostel(_ context.Context, hostelID primitive.ObjectID) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Room{}
	for _, room := range s.rooms {
		if room.HostelID == hostelID {
			out = append(out, room)
		}
	}
	return out, nil
}

func (s *MemoryRoomStore) NumberExists(_ context.Context, hostelID primitive.ObjectID, number int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, room := range s.rooms {
		if room.HostelID == hostelID && room.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryRoomStore) Patch(_ context.Context, id primitive.ObjectID, patch RoomPatch) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		room.Name = *patch.Name
	}
	if patch.Type != nil {
		room.Type = *patch.Type
	}
	if patch.PricePerDay != nil {
		room.PricePerDay = *patch.PricePerDay
	}
	if patch.Specification != nil {
		room.Specification = *patch.Specification
	}
	room.UpdatedAt = time.Now()
	s.rooms[id] = room
	return &room, nil
}

func (s *MemoryRoomStore) SetPictures(_ context.Context, id primitive.ObjectID, pictures []models.Picture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	room.Pictures = pictures
	room.UpdatedAt = time.Now()
	s.rooms[id] = room
	return nil
}

func (s *MemoryRoomStore) PruneNotAvailableBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var modified int64
	for id, room := range s.rooms {
		kept := []time.Time{}
		for _, d := range room.NotAvailable {
			if !d.Before(cutoff) {
				kept = append(kept, d)
			}
		}
		if len(kept) != len(room.NotAvailable) {
			modified++
			room.NotAvailable = kept
			s.rooms[id] = room
		}
	}
	return modified, nil
}

func (s *MemoryRoomStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, id)
	return nil
}

type MemoryBookingStore struct {
	mu       sync.RWMutex
	bookings map[primitive.ObjectID]models.Booking
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{bookings: make(map[primitive.ObjectID]models.Booking)}
}

func (s *MemoryBookingStore) Insert(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = models.BookingStatusProcessing
	}
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryBookingStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (s *MemoryBookingStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, booking := range s.bookings {
		if booking.UserID == userID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (s *MemoryBookingStore) FindAll(_ context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for _, booking := range s.bookings {
		out = append(out, booking)
	}
	return out, nil
}

func (s *MemoryBookingStore) ReferenceExists(_ context.Context, reference string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, booking := range s.bookings {
		if booking.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryBookingStore) SetStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	s.bookings[id] = booking
	return &booking, nil
}

func (s *MemoryBookingStore) SetReceiptURL(_ context.Context, id primitive.ObjectID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	booking.ReceiptURL = &url
	booking.UpdatedAt = time.Now()
	s.bookings[id] = booking
	return nil
}

func (s *MemoryBookingStore) DeleteByHostel(_ context.Context, hostelID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, booking := range s.bookings {
		if booking.HostelID == hostelID {
			delete(s.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryBookingStore) DeleteByRoom(_ context.Context, roomID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, booking := range s.bookings {
		if booking.RoomID == roomID {
			delete(s.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryBookingStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bookings, id)
	return nil
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = "user"
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, user := range s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}
