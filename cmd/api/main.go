package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"conferencecaptions/internal/app"
	"conferencecaptions/internal/config"
	"conferencecaptions/internal/handler"
	"conferencecaptions/internal/metrics"
	"conferencecaptions/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	app.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	metrics.Register()

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("error starting caption service: %v", err)
	}
	defer a.Close()

	captionHandler := handler.NewCaptionHandler(a.Service)
	healthHandler := handler.NewHealthHandler(a.Store)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	slog.Info("AllowOrigins URL:", "urls", cfg.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}))

	captions := r.Group("/api/conference-captions")
	captions.POST("/get-conference-captions", captionHandler.GetConferenceCaptions)

	r.GET("/health", healthHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
