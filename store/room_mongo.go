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

type MongoRoomStore struct {
	collection *mongo.Collection
}

func NewMongoRoomStore(collection *mongo.Collection) *MongoRoomStore {
	return &MongoRoomStore{collection: collection}
}

func (s *MongoRoomStore) Insert(ctx context.Context, room *models.Room) error {
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

	_, err := s.collection.InsertOne(ctx, room)
	return err
}

func (s *MongoRoomStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	var room models.Room
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *MongoRoomStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Room, error) {
	if len(ids) == 0 {
		return []models.Room{}, nil
	}

	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *MongoRoomStore) FindByHostel(ctx context.Context, hostelID primitive.ObjectID) ([]models.Room, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"hostel": hostelID})
	if err != nil {
		return nil, err
	}

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *MongoRoomStore) NumberExists(ctx context.Context, hostelID primitive.ObjectID, number int) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"hostel": hostelID, "number": number})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoRoomStore) Patch(ctx context.Context, id primitive.ObjectID, patch RoomPatch) (*models.Room, error) {
	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.PricePerDay != nil {
		set["price_per_day"] = *patch.PricePerDay
	}
	if patch.Specification != nil {
		set["specification"] = *patch.Specification
	}

	return s.findOneAndSet(ctx, id, set)
}

func (s *MongoRoomStore) SetPictures(ctx context.Context, id primitive.ObjectID, pictures []models.Picture) error {
	_, err := s.findOneAndSet(ctx, id, bson.M{"pictures": pictures, "updated_at": time.Now()})
	return err
}

// PruneNotAvailableBefore drops ledger entries older than the cutoff from
// every room. Past dates can never intersect a search range, so this is pure
// garbage collection.
func (s *MongoRoomStore) PruneNotAvailableBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.collection.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{"not_available": bson.M{"$lt": cutoff}},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *MongoRoomStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoRoomStore) findOneAndSet(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Room, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var room models.Room
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}
