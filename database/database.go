package database

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostelites/hostelites-api/configs"
	"github.com/hostelites/hostelites-api/models"
	"github.com/hostelites/hostelites-api/store"
)

// Collections groups the Mongo collections the service uses, so main can wire
// stores without reaching for globals.
type Collections struct {
	Hostels  *mongo.Collection
	Rooms    *mongo.Collection
	Bookings *mongo.Collection
	Users    *mongo.Collection
}

func Connect(ctx context.Context, cfg *configs.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("✅ Database connected successfully")
	return client, nil
}

func NewCollections(client *mongo.Client, dbName string) Collections {
	db := client.Database(dbName)
	return Collections{
		Hostels:  db.Collection("hostels"),
		Rooms:    db.Collection("rooms"),
		Bookings: db.Collection("bookings"),
		Users:    db.Collection("users"),
	}
}

// SeedAdmin creates the admin account on first boot. Subsequent boots are a
// no-op.
func SeedAdmin(ctx context.Context, users store.UserStore, cfg *configs.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("⚠️ Admin credentials not configured, skipping admin seed")
		return nil
	}

	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		log.Println("Admin user already exists.")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FullName: cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if err := users.Insert(ctx, &admin); err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	return nil
}
