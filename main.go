package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"chatterbox/server/internal/config"
	"chatterbox/server/internal/handlers"
	"chatterbox/server/internal/routes"
	"chatterbox/server/internal/service"
	"chatterbox/server/internal/store"
	"chatterbox/server/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := store.ConnectPostgres(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	tokens := utils.NewTokenManager(cfg.JWTSecret)
	userService := service.NewUserService(db, tokens)
	channelService := service.NewChannelService(db)
	messageService := service.NewMessageService(db, channelService)

	app := fiber.New(fiber.Config{
		AppName: "ChatterBox API v1.0",
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Setup(app, handlers.New(userService, channelService, messageService), tokens)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
