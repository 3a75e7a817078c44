package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripweaver/config"
	"tripweaver/handlers"
	"tripweaver/middleware"
	"tripweaver/services"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	cfg := config.Load()

	gemini, err := services.NewGeminiClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer gemini.Close()
	if gemini.Configured() {
		log.Println("✅ Gemini initialized with model:", cfg.GeminiModel)
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set — itinerary generation will fail per-request")
	}

	amadeus := services.NewAmadeusClient(cfg)
	if amadeus.Configured() {
		log.Println("✅ Amadeus credentials loaded")
	} else {
		log.Println("⚠️  AMADEUS_API_KEY or AMADEUS_API_SECRET not set — flight/hotel search will use fallback data")
	}

	weather := services.NewWeatherClient(cfg)
	if !weather.Configured() {
		log.Println("⚠️  OPENWEATHER_API_KEY not set — weather forecasts will use fallback data")
	}

	aggregator := services.NewAggregator(amadeus, weather)
	planner := services.NewPlanner(gemini, aggregator)
	itinerary := handlers.NewItineraryHandler(planner, handlers.Upstreams{
		Gemini:  gemini.Configured(),
		Amadeus: amadeus.Configured(),
		Weather: weather.Configured(),
	})

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Trusted proxies (deployment platform sits behind a proxy)
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(middleware.TraceID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURLs,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	api := r.Group("/api")
	{
		api.GET("/health", itinerary.Health)
		api.POST("/generate_itinerary", itinerary.Generate)
		api.POST("/surprise_destination", itinerary.Surprise)
		api.POST("/itinerary/pdf", handlers.ExportPDF)
	}

	log.Printf("🚀 TripWeaver backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
