package services

import "time"

// ─── Fallback Data Providers ─────────────────────────────────────────────────
//
// Every list the aggregator returns has a synthetic stand-in so the response
// stays fully populated when an upstream is unconfigured or down. Each record
// carries a visible "(Fallback)" marker to keep it distinguishable from live
// data.

// FallbackMarker appears in every synthetic record.
const FallbackMarker = "(Fallback Data)"

// DefaultDraft is the canned itinerary used whenever model output cannot be
// parsed. Returned by value so callers can mutate their copy freely.
func DefaultDraft() ItineraryDraft {
	return ItineraryDraft{
		Destination: "Paris, France",
		Itinerary:   "1. Arrive and explore the city center.\n2. Visit famous landmarks.\n3. Enjoy local cuisine and culture.",
		Cuisine:     "1. Try local specialties and traditional dishes.",
		FunFact:     "This destination has amazing culture!",
		EstimatedCost: map[string]string{
			"Accommodation":  "$100-200/night",
			"Food":           "$50-100/day",
			"Activities":     "$30-80/day",
			"Transportation": "$20-50/day",
			"Total":          "$500-1000 for 5 days",
		},
		BestTimeToVisit: "Spring and fall offer the best weather",
		PackingTips:     "1. Comfortable walking shoes.\n2. Weather-appropriate clothing.\n3. Essential travel items.",
	}
}

// FallbackFlights returns three fixed price tiers for the requested route.
func FallbackFlights(origin, destination, departureDate, returnDate string) []FlightOption {
	route := origin + " → " + destination
	return []FlightOption{
		{
			Airline:   "Generic Airlines",
			Route:     route,
			Price:     "$400-800",
			Departure: departureDate,
			Return:    returnDate,
			Note:      "Prices vary by airline and booking time. " + FallbackMarker,
		},
		{
			Airline:   "Budget Carrier",
			Route:     route,
			Price:     "$300-600",
			Departure: departureDate,
			Return:    returnDate,
			Note:      "Check for additional fees. " + FallbackMarker,
		},
		{
			Airline:   "Premium Flights",
			Route:     route,
			Price:     "$600-1200",
			Departure: departureDate,
			Return:    returnDate,
			Note:      "Includes meals and baggage. " + FallbackMarker,
		},
	}
}

// FallbackHotels returns three fixed tiers named after the destination city.
func FallbackHotels(cityName string) []HotelOption {
	return []HotelOption{
		{
			Name:      "Budget Stay in " + cityName,
			Rating:    "4.2/5",
			Price:     "$80-150/night",
			Location:  "City Center",
			Amenities: "WiFi, Breakfast. " + FallbackMarker,
		},
		{
			Name:      "Mid-Range Comfort in " + cityName,
			Rating:    "4.5/5",
			Price:     "$150-250/night",
			Location:  "Near Attractions",
			Amenities: "WiFi, Pool, Restaurant. " + FallbackMarker,
		},
		{
			Name:      "Luxury Retreat in " + cityName,
			Rating:    "4.8/5",
			Price:     "$250-500/night",
			Location:  "Prime Location",
			Amenities: "WiFi, Spa, Fine Dining. " + FallbackMarker,
		},
	}
}

// FallbackWeather returns five consecutive days starting today with a mild
// synthetic temperature curve.
func FallbackWeather() []WeatherDay {
	base := time.Now()
	forecast := make([]WeatherDay, 0, 5)
	for i := 0; i < 5; i++ {
		forecast = append(forecast, WeatherDay{
			Date:        base.AddDate(0, 0, i).Format("2006-01-02"),
			Temperature: 20 + (i % 5),
			Description: "Partly Cloudy (Fallback)",
			Icon:        "02d",
		})
	}
	return forecast
}
