package main

import (
	stdlog "log"

	"github.com/gin-gonic/gin"

	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/request"
	"shareit/internal/modules/user"
	"shareit/internal/pkg/clock"
	"shareit/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, "shareit-api")

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	clk := clock.System()

	userService := user.NewService(userRepo, log)
	userHandler := user.NewHandler(userService)

	itemService := item.NewService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, clk, log)
	itemHandler := item.NewHandler(itemService)

	bookingService := booking.NewService(bookingRepo, itemRepo, userRepo, clk, cfg.RejectOverlaps, log)
	bookingHandler := booking.NewHandler(bookingService)

	requestService := request.NewService(requestRepo, itemRepo, userRepo, clk, log)
	requestHandler := request.NewHandler(requestService)

	metrics.Register()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	root := r.Group("/")
	{
		userHandler.RegisterRoutes(root)
		itemHandler.RegisterRoutes(root)
		bookingHandler.RegisterRoutes(root)
		requestHandler.RegisterRoutes(root)
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
