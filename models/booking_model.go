package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingStatusProcessing = "Processing"
	BookingStatusChecked    = "Checked"
	BookingStatusComplete   = "Complete"
)

type PaymentInfo struct {
	ID     string `bson:"id" json:"id"`
	Status string `bson:"status" json:"status"`
}

type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference string             `bson:"reference" json:"reference"`
	UserID    primitive.ObjectID `bson:"user" json:"user_id"`
	HostelID  primitive.ObjectID `bson:"hostel" json:"hostel_id"`
	RoomID    primitive.ObjectID `bson:"room" json:"room_id"`

	Dates            []time.Time `bson:"dates" json:"dates"`
	TotalPricePerDay float64     `bson:"total_price_per_day" json:"total_price_per_day"`
	Phone            string      `bson:"phone" json:"phone"`
	PaidAt           time.Time   `bson:"paid_at" json:"paid_at"`
	PaymentInfo      PaymentInfo `bson:"payment_info" json:"payment_info"`
	Status           string      `bson:"status" json:"status"`
	ReceiptURL       *string     `bson:"receipt_url,omitempty" json:"receipt_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
