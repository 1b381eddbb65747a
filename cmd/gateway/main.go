package main

import (
	stdlog "log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"shareit/internal/config"
	"shareit/internal/gateway"
	"shareit/internal/logging"
	"shareit/internal/pkg/clock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, "shareit-gateway")

	var rdb *redis.Client
	if cfg.Gateway.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Gateway.RedisAddr})
	}

	proxy, err := gateway.NewProxy(cfg.Gateway.ServerURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid server url")
	}
	handler := gateway.NewHandler(proxy, clock.System())

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), gateway.NewTokenBucket(cfg.Gateway.RateLimit, rdb, log))

	handler.RegisterRoutes(r.Group("/"))

	log.Info().Str("addr", cfg.Gateway.HTTPAddr).Str("backend", cfg.Gateway.ServerURL).Msg("starting gateway")
	if err := r.Run(cfg.Gateway.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped")
	}
}
