package services

// ─── Request / Response Types ────────────────────────────────────────────────

// ItineraryRequest carries the travel-preference form input for one request.
type ItineraryRequest struct {
	Mood            string `json:"mood" form:"mood" binding:"required"`
	Budget          string `json:"budget" form:"budget" binding:"required"`
	Duration        string `json:"duration" form:"duration" binding:"required"`
	TravelStyle     string `json:"travel_style" form:"travel_style" binding:"required"`
	OriginCity      string `json:"origin_city" form:"origin_city" binding:"required"`
	TravelMeans     string `json:"travel_means" form:"travel_means" binding:"required"`
	HotelPreference string `json:"hotel_preference" form:"hotel_preference" binding:"required"`
	DepartureDate   string `json:"departure_date" form:"departure_date" binding:"required"`
}

// ItineraryDraft is the structured itinerary extracted from generated text,
// before flight/hotel/weather enrichment. Missing fields stay empty here and
// are defaulted by the planner when the response is assembled.
type ItineraryDraft struct {
	Destination     string            `json:"destination"`
	Itinerary       string            `json:"itinerary"`
	Cuisine         string            `json:"cuisine"`
	FunFact         string            `json:"fun_fact"`
	EstimatedCost   map[string]string `json:"estimated_cost"`
	BestTimeToVisit string            `json:"best_time_to_visit"`
	PackingTips     string            `json:"packing_tips"`
}

type FlightOption struct {
	Airline   string `json:"airline"`
	Route     string `json:"route"`
	Price     string `json:"price"`
	Departure string `json:"departure"`
	Return    string `json:"return"`
	Note      string `json:"note"`
}

type HotelOption struct {
	Name      string `json:"name"`
	Rating    string `json:"rating"`
	Price     string `json:"price"`
	Location  string `json:"location"`
	Amenities string `json:"amenities"`
}

type WeatherDay struct {
	Date        string `json:"date"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ItineraryResponse is the single payload returned to the frontend.
type ItineraryResponse struct {
	Success         bool              `json:"success"`
	Destination     string            `json:"destination"`
	Description     string            `json:"description"`
	Itinerary       string            `json:"itinerary"`
	Cuisine         string            `json:"cuisine"`
	FunFact         string            `json:"fun_fact,omitempty"`
	EstimatedCost   map[string]string `json:"estimated_cost"`
	BestTimeToVisit string            `json:"best_time_to_visit"`
	PackingTips     string            `json:"packing_tips"`
	FlightOptions   []FlightOption    `json:"flight_options"`
	HotelOptions    []HotelOption     `json:"hotel_options"`
	WeatherForecast []WeatherDay      `json:"weather_forecast"`
}
