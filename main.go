package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-reward-system/handlers"
	"card-reward-system/middleware"
	"card-reward-system/models"
	"card-reward-system/services"
	"card-reward-system/utils"
	"card-reward-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // card animations top out well under 50MB
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Card{},
		&models.UserLedger{},
		&models.Clan{},
		&models.ChatConfig{},
		&models.KnownUser{},
		&models.KnownChat{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	catalog := services.NewCatalogService(db)
	if err := catalog.Reload(); err != nil {
		log.Fatal("failed to load card catalog:", err)
	}

	drawService := services.NewDrawService(db, catalog)
	clanService := services.NewClanService(db)
	leaderboardService := services.NewLeaderboardService(db)
	chatConfigService := services.NewChatConfigService(db)
	directoryService := services.NewDirectoryService(db)

	gateway := utils.NewGatewayClient()
	cleanupService, err := services.NewCleanupService(chatConfigService, gateway)
	if err != nil {
		log.Fatal("failed to start cleanup scheduler:", err)
	}
	defer cleanupService.Stop()

	backupWorker := workers.NewBackupWorker(db, 24*time.Hour)
	if err := backupWorker.Start(); err != nil {
		log.Fatal("failed to start backup worker:", err)
	}
	defer backupWorker.Stop()

	handlers.SetupLeaderboardRoutes(app, leaderboardService)
	handlers.SetupDrawRoutes(app, drawService, catalog, directoryService)
	handlers.SetupClanRoutes(app, clanService)
	handlers.SetupChatRoutes(app, chatConfigService, cleanupService, directoryService)
	handlers.SetupAdminRoutes(app, catalog, drawService, clanService, directoryService, backupWorker)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Cleanup scheduler running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
