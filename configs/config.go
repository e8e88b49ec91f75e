package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs from the environment. It is
// loaded once in main and handed to collaborators explicitly.
type Config struct {
	Port          string
	FrontendURL   string
	MongoURI      string
	MongoDatabase string
	CloudinaryURL string
	JWTSecret     string

	AdminName     string
	AdminEmail    string
	AdminPassword string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		FrontendURL:   getEnv("FRONTEND_URL", "*"),
		MongoURI:      getEnv("MONGO_DB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB_NAME", "hostelites"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		AdminName:     os.Getenv("ADMIN_FULL_NAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		BrevoAPIKey:     os.Getenv("BREVO_API_KEY"),
		EmailSender:     os.Getenv("EMAIL_SENDER"),
		EmailSenderName: os.Getenv("EMAIL_SENDER_NAME"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
