package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ─── Travel-Data Aggregator ──────────────────────────────────────────────────
//
// Three independent pipelines (flights, hotels, weather), each attempting a
// live multi-step lookup and substituting its fallback dataset on any error or
// empty result. A pipeline never propagates an error upward, so a response can
// legitimately mix live flights with fallback weather.

type Aggregator struct {
	travel  TravelDataSource
	weather WeatherSource
}

func NewAggregator(travel TravelDataSource, weather WeatherSource) *Aggregator {
	return &Aggregator{travel: travel, weather: weather}
}

// TravelData bundles the three enrichment lists for one trip.
type TravelData struct {
	Flights []FlightOption
	Hotels  []HotelOption
	Weather []WeatherDay
}

// Collect runs all three pipelines concurrently. They share no data, so
// ordering between them does not matter.
func (a *Aggregator) Collect(ctx context.Context, origin, city, departureDate, returnDate string) TravelData {
	var td TravelData
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		td.Flights = a.SearchFlights(ctx, origin, city, departureDate, returnDate)
	}()
	go func() {
		defer wg.Done()
		td.Hotels = a.SearchHotels(ctx, city, departureDate, returnDate)
	}()
	go func() {
		defer wg.Done()
		td.Weather = a.WeatherForecast(ctx, city)
	}()

	wg.Wait()
	return td
}

// withFallback runs a live lookup and substitutes the fallback dataset on any
// error or empty result. This is the single degradation policy every pipeline
// step composes with.
func withFallback[T any](name string, op func() ([]T, error), fallback func() []T) []T {
	items, err := op()
	if err != nil {
		log.Printf("⚠️  %s lookup failed: %v — using fallback data", name, err)
		return fallback()
	}
	if len(items) == 0 {
		log.Printf("⚠️  %s lookup returned no results — using fallback data", name)
		return fallback()
	}
	log.Printf("✅ %s: %d live results", name, len(items))
	return items
}

// ─── Flights ─────────────────────────────────────────────────────────────────

func (a *Aggregator) SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string) []FlightOption {
	return withFallback("flights",
		func() ([]FlightOption, error) {
			return a.liveFlights(ctx, origin, destination, departureDate, returnDate)
		},
		func() []FlightOption {
			return FallbackFlights(origin, destination, departureDate, returnDate)
		},
	)
}

func (a *Aggregator) liveFlights(ctx context.Context, origin, destination, departureDate, returnDate string) ([]FlightOption, error) {
	originCode, err := a.travel.ResolveCityCode(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("origin %q: %w", origin, err)
	}
	destCode, err := a.travel.ResolveCityCode(ctx, destination)
	if err != nil {
		return nil, fmt.Errorf("destination %q: %w", destination, err)
	}

	page, err := a.travel.FlightOffers(ctx, originCode, destCode, departureDate, returnDate)
	if err != nil {
		return nil, err
	}

	flights := make([]FlightOption, 0, 3)
	for _, offer := range page.Offers {
		if len(flights) >= 3 {
			break
		}
		option := FlightOption{
			Price:     offer.Currency + " " + offer.PriceTotal,
			Departure: departureDate,
			Return:    returnDate,
		}

		if len(offer.Segments) > 0 {
			first := offer.Segments[0]
			last := offer.Segments[len(offer.Segments)-1]
			option.Airline = carrierName(page.Carriers, first.CarrierCode)
			option.Route = first.DepartureCode + " → " + last.ArrivalCode
			if len(offer.Segments) == 1 {
				option.Note = "Direct flight"
			} else {
				option.Note = "Connecting flight"
			}
		} else {
			// Offer without itinerary detail still yields a best-effort
			// record using the resolved city codes.
			option.Airline = "Multiple Airlines"
			option.Route = originCode + " → " + destCode
			option.Note = "Itinerary details not fully available"
		}
		flights = append(flights, option)
	}
	return flights, nil
}

func carrierName(carriers map[string]string, code string) string {
	if name, ok := carriers[code]; ok && name != "" {
		return name
	}
	return "Multiple Airlines"
}

// ─── Hotels ──────────────────────────────────────────────────────────────────

func (a *Aggregator) SearchHotels(ctx context.Context, cityName, checkIn, checkOut string) []HotelOption {
	return withFallback("hotels",
		func() ([]HotelOption, error) {
			return a.liveHotels(ctx, cityName, checkIn, checkOut)
		},
		func() []HotelOption {
			return FallbackHotels(cityName)
		},
	)
}

func (a *Aggregator) liveHotels(ctx context.Context, cityName, checkIn, checkOut string) ([]HotelOption, error) {
	cityCode, err := a.travel.ResolveCityCode(ctx, cityName)
	if err != nil {
		return nil, fmt.Errorf("city %q: %w", cityName, err)
	}

	hotelIDs, err := a.travel.HotelsByCity(ctx, cityCode)
	if err != nil {
		return nil, err
	}
	if len(hotelIDs) > 5 {
		hotelIDs = hotelIDs[:5]
	}

	hotels := make([]HotelOption, 0, len(hotelIDs))
	for _, id := range hotelIDs {
		deal, err := a.travel.HotelOffer(ctx, id, checkIn, checkOut)
		if err != nil {
			// One property without offers doesn't fail the pipeline.
			log.Printf("⚠️  No offers for hotel %s: %v", id, err)
			continue
		}
		if deal == nil {
			continue
		}
		hotels = append(hotels, HotelOption{
			Name:      deal.HotelName,
			Rating:    "N/A", // not returned by the hotel offers API
			Price:     deal.Currency + " " + deal.PriceTotal + "/night",
			Location:  cityName,
			Amenities: "WiFi, Breakfast",
		})
	}
	return hotels, nil
}

// ─── Weather ─────────────────────────────────────────────────────────────────

var titleCaser = cases.Title(language.English)

func (a *Aggregator) WeatherForecast(ctx context.Context, cityName string) []WeatherDay {
	return withFallback("weather",
		func() ([]WeatherDay, error) {
			return a.liveWeather(ctx, cityName)
		},
		FallbackWeather,
	)
}

func (a *Aggregator) liveWeather(ctx context.Context, cityName string) ([]WeatherDay, error) {
	lat, lon, err := a.weather.Geocode(ctx, cityName)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", cityName, err)
	}

	entries, err := a.weather.Forecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	// The forecast comes in 3-hour steps; keep the first entry per calendar
	// date, capped at 5 distinct dates.
	forecast := make([]WeatherDay, 0, 5)
	seen := make(map[string]bool)
	for _, entry := range entries {
		if len(forecast) >= 5 {
			break
		}
		date := entry.Time.Format("2006-01-02")
		if seen[date] {
			continue
		}
		seen[date] = true
		forecast = append(forecast, WeatherDay{
			Date:        date,
			Temperature: int(math.Round(entry.Temperature)),
			Description: titleCaser.String(entry.Description),
			Icon:        entry.Icon,
		})
	}
	return forecast, nil
}
