package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/resto_api/internal/cache"
	"github.com/GTDGit/resto_api/internal/config"
	"github.com/GTDGit/resto_api/internal/database"
	"github.com/GTDGit/resto_api/internal/handler"
	"github.com/GTDGit/resto_api/internal/middleware"
	"github.com/GTDGit/resto_api/internal/pkg/clock"
	"github.com/GTDGit/resto_api/internal/repository"
	"github.com/GTDGit/resto_api/internal/schedule"
	"github.com/GTDGit/resto_api/internal/service"
)

// main is the application entrypoint for the restaurant back-office API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("timezone", cfg.DefaultTimezone).Msg("starting resto api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect database
	db, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB, cfg.MigrationsPath); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Resolve default timezone (validated by config.Load)
	defaultLoc, err := schedule.LoadLocation(cfg.DefaultTimezone, time.UTC)
	if err != nil {
		log.Fatal().Err(err).Msg("default timezone")
	}

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)

	// 6. Initialize services
	realClock := clock.NewRealClock()
	evaluator := service.NewPromotionEvaluator(realClock, defaultLoc)
	productSvc := service.NewProductService(productRepo)
	promotionSvc := service.NewPromotionService(promotionRepo)
	menuSvc := service.NewMenuService(productRepo, promotionRepo, evaluator)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": db.PingContext,
			"redis":    redisClient.Ping,
		}),
		Product:   handler.NewProductHandler(productSvc),
		Promotion: handler.NewPromotionHandler(promotionSvc),
		Menu:      handler.NewMenuHandler(menuSvc),
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	if cfg.RateLimit.PerMinute > 0 {
		router.Use(middleware.NewRateLimiter(redisClient, realClock, cfg.RateLimit.PerMinute).Handle())
	}
	setupRoutes(router, handlers)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Product   *handler.ProductHandler
	Promotion *handler.PromotionHandler
	Menu      *handler.MenuHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	api := router.Group("/api/v1")

	api.GET("/health", handlers.Health.GetHealth)

	products := api.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("", handlers.Product.ListProducts)
		products.GET("/:id", handlers.Product.GetProduct)
		products.PUT("/:id", handlers.Product.UpdateProduct)
		products.PATCH("/:id", handlers.Product.UpdateProduct)
		products.DELETE("/:id", handlers.Product.DeleteProduct)
	}

	promotions := api.Group("/promotions")
	{
		promotions.POST("", handlers.Promotion.CreatePromotion)
		promotions.GET("", handlers.Promotion.ListPromotions)
		promotions.GET("/:id", handlers.Promotion.GetPromotion)
		promotions.PUT("/:id", handlers.Promotion.UpdatePromotion)
		promotions.PATCH("/:id", handlers.Promotion.UpdatePromotion)
		promotions.DELETE("/:id", handlers.Promotion.DeletePromotion)
	}

	api.GET("/menu", handlers.Menu.GetMenu)
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
