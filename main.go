package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/crabkhai/crabkhai-shop/config"
	"github.com/crabkhai/crabkhai-shop/middlewares"
	"github.com/crabkhai/crabkhai-shop/models"
	"github.com/crabkhai/crabkhai-shop/router"
	"github.com/crabkhai/crabkhai-shop/services"
	"github.com/crabkhai/crabkhai-shop/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	utils.InitDB(db)

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// A release build must not run on the well-known dev setup secret
	if err := config.CheckSetupSecret(db, ginMode == "release"); err != nil {
		utils.ErrorLogger.Fatalf("Refusing to start: %v", err)
	}

	// Soft per-IP limit across the whole API
	rateLimiter := middlewares.NewRateLimiter(50, time.Second)

	// Sweep expired trusted devices in the background
	sweeper := services.NewDeviceSweeper(db)
	sweeper.Start()
	defer sweeper.Stop()

	r := router.SetupRouter(db, rateLimiter)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ComboItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.TrustedDevice{},
		&models.SecurityLog{},
		&models.Notification{},
		&models.SiteConfig{},
		&models.HeroSlide{},
		&models.PromoCard{},
		&models.Review{},
		&models.ProductSection{},
		&models.StorySection{},
		&models.Expense{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
