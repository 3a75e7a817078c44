package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripweaver/services"
)

// Planner is the handler's view of the itinerary orchestrator.
type Planner interface {
	GenerateItinerary(ctx context.Context, req services.ItineraryRequest) (*services.ItineraryResponse, error)
	SurpriseDestination(ctx context.Context) (*services.ItineraryResponse, error)
}

// Upstreams reports which external credentials were configured at startup,
// for the health endpoint. Unconfigured upstreams degrade to fallback data.
type Upstreams struct {
	Gemini  bool
	Amadeus bool
	Weather bool
}

type ItineraryHandler struct {
	planner   Planner
	upstreams Upstreams
}

func NewItineraryHandler(planner Planner, upstreams Upstreams) *ItineraryHandler {
	return &ItineraryHandler{planner: planner, upstreams: upstreams}
}

// Generate handles POST /api/generate_itinerary.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req services.ItineraryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.planner.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Printf("❌ Error generating itinerary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error generating itinerary: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Surprise handles POST /api/surprise_destination.
func (h *ItineraryHandler) Surprise(c *gin.Context) {
	resp, err := h.planner.SurpriseDestination(c.Request.Context())
	if err != nil {
		log.Printf("❌ Error generating surprise destination: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "An internal error occurred while generating the surprise destination."})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /api/health.
func (h *ItineraryHandler) Health(c *gin.Context) {
	status := func(configured bool) string {
		if configured {
			return "configured"
		}
		return "fallback only"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "TripWeaver API",
		"upstreams": gin.H{
			"gemini":         status(h.upstreams.Gemini),
			"amadeus":        status(h.upstreams.Amadeus),
			"openweathermap": status(h.upstreams.Weather),
		},
	})
}
