package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Picture is a remote image asset stored on the CDN. AssetID is the stable
// identifier used to destroy the asset later.
type Picture struct {
	AssetID string `bson:"asset_id" json:"asset_id"`
	URL     string `bson:"url" json:"url"`
}

type Hostel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Location      string             `bson:"location" json:"location"`
	Distance      float64            `bson:"distance" json:"distance"`
	Specification []string           `bson:"specification" json:"specification"`
	Description   string             `bson:"description" json:"description"`
	Pictures      []Picture          `bson:"pictures" json:"pictures"`

	// RoomIDs is the reference set kept in sync manually when rooms are
	// created and deleted. Rooms holds the populated documents and is never
	// persisted.
	RoomIDs []primitive.ObjectID `bson:"rooms" json:"room_ids"`
	Rooms   []Room               `bson:"-" json:"rooms,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
