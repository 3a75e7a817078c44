package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripweaver/config"
)

// ─── OpenWeatherMap Client ───────────────────────────────────────────────────

// WeatherSource is the aggregator's view of the weather provider.
type WeatherSource interface {
	Geocode(ctx context.Context, cityName string) (lat, lon float64, err error)
	Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error)
}

// ForecastEntry is one 3-hour slot of the 5-day forecast.
type ForecastEntry struct {
	Time        time.Time
	Temperature float64
	Description string
	Icon        string
}

type WeatherClient struct {
	apiKey     string
	geoBaseURL string
	apiBaseURL string
	httpClient *http.Client
}

func NewWeatherClient(cfg *config.Config) *WeatherClient {
	return &WeatherClient{
		apiKey:     cfg.WeatherAPIKey,
		geoBaseURL: "http://api.openweathermap.org",
		apiBaseURL: "https://api.openweathermap.org",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *WeatherClient) Configured() bool {
	return c.apiKey != ""
}

// Geocode resolves a city name to coordinates, first match only.
func (c *WeatherClient) Geocode(ctx context.Context, cityName string) (float64, float64, error) {
	if c.apiKey == "" {
		return 0, 0, fmt.Errorf("openweathermap API key not configured")
	}

	u := fmt.Sprintf("%s/geo/1.0/direct?q=%s&limit=1&appid=%s",
		c.geoBaseURL, url.QueryEscape(cityName), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding match for %q", cityName)
	}
	return results[0].Lat, results[0].Lon, nil
}

// Forecast fetches the 5-day / 3-hour forecast in metric units.
func (c *WeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	u := fmt.Sprintf("%s/data/2.5/forecast?lat=%f&lon=%f&units=metric&appid=%s",
		c.apiBaseURL, lat, lon, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}

	var result struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
		} `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	entries := make([]ForecastEntry, 0, len(result.List))
	for _, item := range result.List {
		entry := ForecastEntry{
			Time:        time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.Icon = item.Weather[0].Icon
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
