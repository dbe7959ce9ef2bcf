package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"socialwall/config"
	"socialwall/internal/adapters/auth"
	"socialwall/internal/adapters/cache"
	deliveryhttp "socialwall/internal/delivery/http"
	"socialwall/internal/delivery/http/controllers"
	"socialwall/internal/delivery/http/middleware"
	"socialwall/internal/repository/postgres"
	"socialwall/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Social Wall API
// @version 1.0
// @description Live photo wall and stage presentation backend for events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	// A missing Redis only disables the projector render cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, projector render cache disabled")
	}
	renderCache := cache.NewRedisRenderCache(rdb, cfg.RenderCacheTTL, logger)

	eventRepo := postgres.NewEventRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	stageRepo := postgres.NewStageConfigRepository(db)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	stageService := services.NewStageService(eventRepo, stageRepo, renderCache, logger, serviceTimeout)
	feedService := services.NewFeedService(eventRepo, photoRepo, serviceTimeout)
	viewerService := services.NewViewerService(verifier, logger)
	renderer := services.NewRenderer()
	wallService := services.NewWallService(eventRepo, stageService, feedService, viewerService, renderer, serviceTimeout)

	wallController := controllers.NewWallController(logger, wallService, renderCache)
	stageController := controllers.NewStageController(logger, stageService)

	mux := deliveryhttp.NewRouter(wallController, stageController, verifier, logger)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
