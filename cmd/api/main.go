package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/hostelites/hostelites-api/configs"
	"github.com/hostelites/hostelites-api/database"
	"github.com/hostelites/hostelites-api/handlers"
	"github.com/hostelites/hostelites-api/jobs"
	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/notifications"
	"github.com/hostelites/hostelites-api/routes"
	"github.com/hostelites/hostelites-api/services"
	"github.com/hostelites/hostelites-api/store"
	"github.com/hostelites/hostelites-api/websocket"
)

func main() {
	cfg := configs.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	collections := database.NewCollections(client, cfg.MongoDatabase)
	hostels := store.NewMongoHostelStore(collections.Hostels)
	rooms := store.NewMongoRoomStore(collections.Rooms)
	bookings := store.NewMongoBookingStore(collections.Bookings)
	users := store.NewMongoUserStore(collections.Users)

	if err := database.SeedAdmin(ctx, users, cfg); err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	gateway, err := media.NewClient(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("🔥 Failed to initialize Cloudinary: %v", err)
	}

	mail := notifications.NewEmailService(cfg)
	receipts := services.NewReceiptService(gateway, bookings)

	hostelService := services.NewHostelService(hostels, rooms, bookings, gateway)
	roomService := services.NewRoomService(rooms, hostels, bookings, gateway)
	bookingService := services.NewBookingService(bookings, rooms, hostels, users, receipts, mail)

	hub := websocket.NewHub()
	go hub.Run()

	c := cron.New()
	c.AddFunc("0 3 * * *", jobs.NewLedgerJob(rooms).PruneExpiredDates)
	go c.Start()
	log.Println("✅ Cron job for ledger pruning scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Hostelites",
		CaseSensitive: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			} else {
				log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FrontendURL,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.AuthRoutes(app, handlers.NewAuthHandler(users, cfg.JWTSecret), cfg.JWTSecret)
	routes.HostelRoutes(app, handlers.NewHostelHandler(hostelService), cfg.JWTSecret)
	routes.RoomRoutes(app, handlers.NewRoomHandler(roomService), cfg.JWTSecret)
	routes.BookingRoutes(app, handlers.NewBookingHandler(bookingService), cfg.JWTSecret)
	routes.ChatRoutes(app, handlers.NewChatHandler(hub))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
