package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tripweaver/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakePlanner lets each test script the orchestrator's answer.
type fakePlanner struct {
	resp        *services.ItineraryResponse
	err         error
	gotRequest  *services.ItineraryRequest
	surpriseHit bool
}

func (f *fakePlanner) GenerateItinerary(ctx context.Context, req services.ItineraryRequest) (*services.ItineraryResponse, error) {
	f.gotRequest = &req
	return f.resp, f.err
}

func (f *fakePlanner) SurpriseDestination(ctx context.Context) (*services.ItineraryResponse, error) {
	f.surpriseHit = true
	return f.resp, f.err
}

func newTestRouter(p Planner, upstreams Upstreams) *gin.Engine {
	h := NewItineraryHandler(p, upstreams)
	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.POST("/generate_itinerary", h.Generate)
	api.POST("/surprise_destination", h.Surprise)
	api.POST("/itinerary/pdf", ExportPDF)
	return r
}

func validForm() url.Values {
	form := url.Values{}
	form.Set("mood", "relaxing")
	form.Set("budget", "2000")
	form.Set("duration", "7")
	form.Set("travel_style", "luxury")
	form.Set("origin_city", "New York")
	form.Set("travel_means", "flight")
	form.Set("hotel_preference", "boutique")
	form.Set("departure_date", "2024-06-01")
	return form
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateReturnsPlannerResponse(t *testing.T) {
	planner := &fakePlanner{resp: &services.ItineraryResponse{
		Success:     true,
		Destination: "Lisbon, Portugal",
		Itinerary:   "Day 1: Alfama walk",
	}}
	r := newTestRouter(planner, Upstreams{})

	w := postForm(r, "/api/generate_itinerary", validForm())

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp services.ItineraryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Destination != "Lisbon, Portugal" {
		t.Errorf("resp = %+v", resp)
	}
	if planner.gotRequest == nil {
		t.Fatal("planner never invoked")
	}
	if planner.gotRequest.OriginCity != "New York" || planner.gotRequest.Duration != "7" {
		t.Errorf("bound request = %+v", planner.gotRequest)
	}
}

func TestGenerateMissingFieldIsBadRequest(t *testing.T) {
	planner := &fakePlanner{resp: &services.ItineraryResponse{Success: true}}
	r := newTestRouter(planner, Upstreams{})

	form := validForm()
	form.Del("departure_date")
	w := postForm(r, "/api/generate_itinerary", form)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if planner.gotRequest != nil {
		t.Error("planner invoked despite bind failure")
	}
}

func TestGenerateInvalidInputIsBadRequest(t *testing.T) {
	planner := &fakePlanner{err: services.ErrInvalidInput}
	r := newTestRouter(planner, Upstreams{})

	w := postForm(r, "/api/generate_itinerary", validForm())

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
}

func TestGeneratePlannerErrorIsInternal(t *testing.T) {
	planner := &fakePlanner{err: errors.New("model unavailable")}
	r := newTestRouter(planner, Upstreams{})

	w := postForm(r, "/api/generate_itinerary", validForm())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error generating itinerary") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSurpriseReturnsPlannerResponse(t *testing.T) {
	planner := &fakePlanner{resp: &services.ItineraryResponse{
		Success:     true,
		Destination: "Kyoto, Japan",
	}}
	r := newTestRouter(planner, Upstreams{})

	w := postForm(r, "/api/surprise_destination", url.Values{})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !planner.surpriseHit {
		t.Error("planner never invoked")
	}
}

func TestSurpriseErrorHidesDetail(t *testing.T) {
	planner := &fakePlanner{err: errors.New("secret upstream detail")}
	r := newTestRouter(planner, Upstreams{})

	w := postForm(r, "/api/surprise_destination", url.Values{})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret upstream detail") {
		t.Error("internal error detail leaked to client")
	}
}

func TestHealthReportsUpstreams(t *testing.T) {
	r := newTestRouter(&fakePlanner{}, Upstreams{Gemini: true, Weather: true})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Status    string            `json:"status"`
		Service   string            `json:"service"`
		Upstreams map[string]string `json:"upstreams"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" || body.Service != "TripWeaver API" {
		t.Errorf("body = %+v", body)
	}
	if body.Upstreams["gemini"] != "configured" {
		t.Errorf("gemini = %q", body.Upstreams["gemini"])
	}
	if body.Upstreams["amadeus"] != "fallback only" {
		t.Errorf("amadeus = %q", body.Upstreams["amadeus"])
	}
	if body.Upstreams["openweathermap"] != "configured" {
		t.Errorf("openweathermap = %q", body.Upstreams["openweathermap"])
	}
}
