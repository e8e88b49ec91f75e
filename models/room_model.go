package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoomTypeSingle = "Single"
	RoomTypeDouble = "Double"
)

type Room struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number        int                `bson:"number" json:"number"`
	Name          string             `bson:"name" json:"name"`
	Type          string             `bson:"type" json:"type"`
	PricePerDay   float64            `bson:"price_per_day" json:"price_per_day"`
	Specification []string           `bson:"specification" json:"specification"`

	// NotAvailable is the authoritative availability ledger: the set of days
	// the room is already reserved for. Search treats any overlap with the
	// requested range as "room not free".
	NotAvailable []time.Time `bson:"not_available" json:"not_available"`

	Pictures []Picture          `bson:"pictures" json:"pictures"`
	HostelID primitive.ObjectID `bson:"hostel" json:"hostel_id"`
	Hostel   *Hostel            `bson:"-" json:"hostel,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
