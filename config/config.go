package config

import (
	"os"
	"strings"
)

// Config holds all process-wide credentials and settings. It is built once in
// main and passed into the service constructors — nothing reads the
// environment after startup.
type Config struct {
	Port           string
	GinMode        string
	FrontendURLs   []string
	GeminiAPIKey   string
	GeminiModel    string
	AmadeusAPIKey  string
	AmadeusSecret  string
	AmadeusBaseURL string
	WeatherAPIKey  string
}

func Load() *Config {
	amadeusBase := "https://api.amadeus.com" // production
	if env := os.Getenv("AMADEUS_ENV"); env == "" || env == "test" {
		amadeusBase = "https://test.api.amadeus.com" // free test environment
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        os.Getenv("GIN_MODE"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AmadeusAPIKey:  os.Getenv("AMADEUS_API_KEY"),
		AmadeusSecret:  os.Getenv("AMADEUS_API_SECRET"),
		AmadeusBaseURL: amadeusBase,
		WeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
	}

	// CORS — allow configured frontend origins on top of local dev defaults
	cfg.FrontendURLs = []string{"http://localhost:5173", "http://localhost:3000"}
	for _, u := range strings.Split(os.Getenv("FRONTEND_URL"), ",") {
		u = strings.TrimSpace(u)
		if u != "" {
			cfg.FrontendURLs = append(cfg.FrontendURLs, u)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
