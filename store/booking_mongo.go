package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hostelites/hostelites-api/models"
)

type MongoBookingStore struct {
	collection *mongo.Collection
}

func NewMongoBookingStore(collection *mongo.Collection) *MongoBookingStore {
	return &MongoBookingStore{collection: collection}
}

func (s *MongoBookingStore) Insert(ctx context.Context, booking *models.Booking) error {
	now := time.Now()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = models.BookingStatusProcessing
	}

	_, err := s.collection.InsertOne(ctx, booking)
	return err
}

func (s *MongoBookingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *MongoBookingStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	return s.find(ctx, bson.M{"user": userID})
}

func (s *MongoBookingStore) FindAll(ctx context.Context) ([]models.Booking, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoBookingStore) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"reference": reference})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoBookingStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	var booking models.Booking
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *MongoBookingStore) SetReceiptURL(ctx context.Context, id primitive.ObjectID, url string) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"receipt_url": url, "updated_at": time.Now()},
	})
	return err
}

func (s *MongoBookingStore) DeleteByHostel(ctx context.Context, hostelID primitive.ObjectID) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, bson.M{"hostel": hostelID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoBookingStore) DeleteByRoom(ctx context.Context, roomID primitive.ObjectID) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, bson.M{"room": roomID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoBookingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoBookingStore) find(ctx context.Context, query bson.M) ([]models.Booking, error) {
	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
