package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cristianadrielbraun/qrafted/internal/app"
	"github.com/cristianadrielbraun/qrafted/internal/config"
	"github.com/cristianadrielbraun/qrafted/internal/handlers"
	"github.com/cristianadrielbraun/qrafted/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}
	cfg := config.MustLoad()
	logger := logging.New(cfg.LogLevel, cfg.Production())

	deps, err := app.Build(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("startup failed")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	h := handlers.New(cfg, deps.Renderer, deps.Palettes, logger)
	h.Register(r)

	addr := cfg.Addr()
	logger.Infof("%s listening on %s (encoder=%s)", cfg.ProductName, addr, cfg.Encoder)
	if err := r.Run(addr); err != nil {
		logger.Fatal(err)
	}
}
