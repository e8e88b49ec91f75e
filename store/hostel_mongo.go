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

type MongoHostelStore struct {
	collection *mongo.Collection
}

func NewMongoHostelStore(collection *mongo.Collection) *MongoHostelStore {
	return &MongoHostelStore{collection: collection}
}

func (s *MongoHostelStore) Insert(ctx context.Context, hostel *models.Hostel) error {
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

	_, err := s.collection.InsertOne(ctx, hostel)
	return err
}

func (s *MongoHostelStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Hostel, error) {
	var hostel models.Hostel
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&hostel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &hostel, nil
}

func (s *MongoHostelStore) Find(ctx context.Context, filter HostelFilter) ([]models.Hostel, error) {
	query := bson.M{
		"location": bson.M{"$regex": filter.Location, "$options": "i"},
		"$expr":    bson.M{"$gte": bson.A{bson.M{"$size": "$rooms"}, filter.MinRooms}},
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	hostels := []models.Hostel{}
	if err := cursor.All(ctx, &hostels); err != nil {
		return nil, err
	}
	return hostels, nil
}

func (s *MongoHostelStore) FindAll(ctx context.Context) ([]models.Hostel, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	hostels := []models.Hostel{}
	if err := cursor.All(ctx, &hostels); err != nil {
		return nil, err
	}
	return hostels, nil
}

func (s *MongoHostelStore) Patch(ctx context.Context, id primitive.ObjectID, patch HostelPatch) (*models.Hostel, error) {
	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Distance != nil {
		set["distance"] = *patch.Distance
	}
	if patch.Specification != nil {
		set["specification"] = *patch.Specification
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	return s.findOneAndSet(ctx, id, set)
}

func (s *MongoHostelStore) SetPictures(ctx context.Context, id primitive.ObjectID, pictures []models.Picture) error {
	_, err := s.findOneAndSet(ctx, id, bson.M{"pictures": pictures, "updated_at": time.Now()})
	return err
}

func (s *MongoHostelStore) AddRoom(ctx context.Context, hostelID, roomID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": hostelID}, bson.M{
		"$push": bson.M{"rooms": roomID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoHostelStore) RemoveRoom(ctx context.Context, hostelID, roomID primitive.ObjectID) error {
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": hostelID}, bson.M{
		"$pull": bson.M{"rooms": roomID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoHostelStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoHostelStore) findOneAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Hostel, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var hostel models.Hostel
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&hostel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &hostel, nil
}
