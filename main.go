package main

import (
	"fmt"
	"time"

	"github.com/KaramYacoub/shopsphere-api/config"
	ordercontrollers "github.com/KaramYacoub/shopsphere-api/controllers/order"
	"github.com/KaramYacoub/shopsphere-api/metrics"
	"github.com/KaramYacoub/shopsphere-api/models"
	"github.com/KaramYacoub/shopsphere-api/notifier"
	"github.com/KaramYacoub/shopsphere-api/repository"
	"github.com/KaramYacoub/shopsphere-api/routes"
	"github.com/KaramYacoub/shopsphere-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// Init DB
	db := initDatabase(cfg, logger)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	// Order workflow wiring: injected store, notifier and metrics so nothing
	// in the checkout path touches process-wide state.
	store := repository.NewStore(db)
	mailer := notifier.NewSMTPNotifier(cfg.SMTP, logger)
	orderMetrics := metrics.New(prometheus.DefaultRegisterer)
	orderService := services.NewOrderService(store, mailer, orderMetrics, logger)
	hub := ordercontrollers.NewHub(logger)

	// Gin setup
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup routes
	routes.SetupRoutes(r, db, orderService, hub, logger, cfg)

	// Start server
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect DB", zap.Error(err))
	}
	return db
}
