package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInput marks malformed request data (bad duration or date) so the
// handler can respond 400 instead of 500.
var ErrInvalidInput = errors.New("invalid input")

// SurpriseDestinations is the curated pool for the surprise flow.
var SurpriseDestinations = []string{
	"Kyoto, Japan",
	"Santorini, Greece",
	"Reykjavik, Iceland",
	"Marrakech, Morocco",
	"Bali, Indonesia",
	"Cape Town, South Africa",
	"Prague, Czech Republic",
	"Queenstown, New Zealand",
	"Dubrovnik, Croatia",
	"Banff, Canada",
}

// ─── Itinerary Planner ───────────────────────────────────────────────────────
//
// Drives the end-to-end sequence: generate text, normalize, derive dates and
// city, aggregate travel data, shape the final payload. Both the directed and
// the surprise flow share the same downstream logic.

type Planner struct {
	generator  TextGenerator
	aggregator *Aggregator

	// Injected for deterministic tests.
	now  func() time.Time
	pick func(n int) int
}

func NewPlanner(generator TextGenerator, aggregator *Aggregator) *Planner {
	return &Planner{
		generator:  generator,
		aggregator: aggregator,
		now:        time.Now,
		pick:       rand.Intn,
	}
}

// GenerateItinerary runs the user-directed flow.
func (p *Planner) GenerateItinerary(ctx context.Context, req ItineraryRequest) (*ItineraryResponse, error) {
	duration, err := strconv.Atoi(strings.TrimSpace(req.Duration))
	if err != nil || duration < 1 {
		return nil, fmt.Errorf("%w: duration must be a whole number of days >= 1", ErrInvalidInput)
	}
	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("%w: departure_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	raw, err := p.generator.Generate(ctx, buildDirectedPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generating itinerary: %w", err)
	}
	draft := Normalize(raw)

	destination := valueOr(draft.Destination, "Unknown Destination")
	city := cityFromDestination(destination)
	departureDate := req.DepartureDate
	returnDate := departure.AddDate(0, 0, duration).Format("2006-01-02")

	data := p.aggregator.Collect(ctx, req.OriginCity, city, departureDate, returnDate)

	description := fmt.Sprintf("Your perfect %s getaway awaits!", req.Mood)
	return assembleResponse(draft, destination, description, data), nil
}

// SurpriseDestination runs the surprise flow: a random curated destination,
// a fixed New York origin, and a 5-day trip starting tomorrow.
func (p *Planner) SurpriseDestination(ctx context.Context) (*ItineraryResponse, error) {
	surprise := SurpriseDestinations[p.pick(len(SurpriseDestinations))]

	raw, err := p.generator.Generate(ctx, buildSurprisePrompt(surprise))
	if err != nil {
		return nil, fmt.Errorf("generating surprise itinerary: %w", err)
	}
	draft := Normalize(raw)

	destination := valueOr(draft.Destination, surprise)
	city := cityFromDestination(destination)
	departureDate := p.now().AddDate(0, 0, 1).Format("2006-01-02")
	returnDate := p.now().AddDate(0, 0, 6).Format("2006-01-02")

	data := p.aggregator.Collect(ctx, "New York", city, departureDate, returnDate)

	description := fmt.Sprintf("Surprise! Your next adventure awaits in %s!", destination)
	return assembleResponse(draft, destination, description, data), nil
}

// ─── Payload Assembly ────────────────────────────────────────────────────────

func assembleResponse(draft ItineraryDraft, destination, description string, data TravelData) *ItineraryResponse {
	cost := draft.EstimatedCost
	if cost == nil {
		cost = map[string]string{}
	}
	return &ItineraryResponse{
		Success:         true,
		Destination:     destination,
		Description:     description,
		Itinerary:       valueOr(draft.Itinerary, "Itinerary not available"),
		Cuisine:         valueOr(draft.Cuisine, "Local cuisine information not available"),
		FunFact:         draft.FunFact,
		EstimatedCost:   cost,
		BestTimeToVisit: valueOr(draft.BestTimeToVisit, "Year-round destination"),
		PackingTips:     valueOr(draft.PackingTips, "Pack according to season"),
		FlightOptions:   data.Flights,
		HotelOptions:    data.Hotels,
		WeatherForecast: data.Weather,
	}
}

// cityFromDestination extracts the city from a "City, Country" string.
func cityFromDestination(destination string) string {
	city, _, _ := strings.Cut(destination, ",")
	return strings.TrimSpace(city)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ─── Prompts ─────────────────────────────────────────────────────────────────

func buildDirectedPrompt(req ItineraryRequest) string {
	return fmt.Sprintf(`You are an expert travel planner. Create a personalized travel itinerary based on these preferences:

Travel Mood: %s
Budget: $%s
Duration: %s days
Travel Style: %s
Origin: %s
Travel Means: %s
Hotel Preference: %s
Departure Date: %s

Create a detailed travel plan in JSON format with the following structure:
{
    "destination": "Specific city and country name",
    "itinerary": "Detailed day-by-day itinerary with specific activities, times, and locations. Format as a numbered list with clear day separations. Each day should be a separate line item.",
    "cuisine": "Specific local dishes and restaurants to try with names and specialties. Format as a numbered list with restaurant names and dish descriptions. Each cuisine item should be a separate line item.",
    "fun_fact": "Interesting and specific fact about the destination that most people don't know",
    "estimated_cost": {
        "Accommodation": "Detailed cost breakdown with specific price ranges",
        "Food": "Cost for meals and dining with specific amounts",
        "Activities": "Cost for attractions and experiences with specific prices",
        "Transportation": "Local transport costs with specific amounts",
        "Total": "Total estimated cost with clear breakdown"
    },
    "best_time_to_visit": "Specific months and reasons why, tailored to the destination",
    "packing_tips": "Specific items to pack based on the destination and season, formatted as a numbered list. Each packing tip should be a separate line item."
}

Make the response detailed, specific, and practical. Include actual place names, restaurant names, and specific activities. Ensure all lists are properly formatted with clear numbering, and do NOT include any trailing commas in the JSON.`,
		req.Mood, req.Budget, req.Duration, req.TravelStyle,
		req.OriginCity, req.TravelMeans, req.HotelPreference, req.DepartureDate)
}

func buildSurprisePrompt(destination string) string {
	return fmt.Sprintf(`You are an expert travel planner. Create a surprise travel itinerary for: %s

This is a surprise destination, so make it exciting and unexpected! Create a detailed travel plan in JSON format with the following structure:
{
    "destination": "%s",
    "itinerary": "Detailed day-by-day itinerary with specific activities, times, and locations for 5 days. Format as a numbered list with clear day separations. Each day should be a separate line item.",
    "cuisine": "Specific local dishes and restaurants to try with names and specialties. Format as a numbered list with restaurant names and dish descriptions. Each cuisine item should be a separate line item.",
    "fun_fact": "Interesting and specific fact about the destination that most people don't know",
    "estimated_cost": {
        "Accommodation": "Detailed cost breakdown with specific price ranges",
        "Food": "Cost for meals and dining with specific amounts",
        "Activities": "Cost for attractions and experiences with specific prices",
        "Transportation": "Local transport costs with specific amounts",
        "Total": "Total estimated cost with clear breakdown"
    },
    "best_time_to_visit": "Specific months and reasons why, tailored to the destination",
    "packing_tips": "Specific items to pack based on the destination and season, formatted as a numbered list. Each packing tip should be a separate line item."
}

Make the response detailed, specific, and practical. Include actual place names, restaurant names, and specific activities. Ensure all lists are properly formatted with clear numbering, and do NOT include any trailing commas in the JSON.`,
		destination, destination)
}
