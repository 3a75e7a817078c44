package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"tripweaver/config"
)

// ─── Amadeus Client ──────────────────────────────────────────────────────────
//
// Thin request/response boundary over the Amadeus API. All field mapping and
// degradation policy lives in the aggregator; this client only authenticates,
// calls, and decodes.

// TravelDataSource is the aggregator's view of the travel-data provider.
type TravelDataSource interface {
	ResolveCityCode(ctx context.Context, cityName string) (string, error)
	FlightOffers(ctx context.Context, originCode, destCode, departureDate, returnDate string) (*FlightOffersPage, error)
	HotelsByCity(ctx context.Context, cityCode string) ([]string, error)
	HotelOffer(ctx context.Context, hotelID, checkIn, checkOut string) (*HotelDeal, error)
}

// FlightOffersPage is one page of fare offers plus the carrier-code dictionary
// that accompanies it.
type FlightOffersPage struct {
	Offers   []RawFlightOffer
	Carriers map[string]string
}

// RawFlightOffer is a single fare offer. Segments holds the outbound
// itinerary's legs and may be empty when the offer lacks itinerary detail.
type RawFlightOffer struct {
	PriceTotal string
	Currency   string
	Segments   []FlightSegment
}

type FlightSegment struct {
	DepartureCode string
	ArrivalCode   string
	CarrierCode   string
}

// HotelDeal is the first bookable offer for one property.
type HotelDeal struct {
	HotelName  string
	PriceTotal string
	Currency   string
}

type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

func NewAmadeusClient(cfg *config.Config) *AmadeusClient {
	return &AmadeusClient{
		clientID:     cfg.AmadeusAPIKey,
		clientSecret: cfg.AmadeusSecret,
		baseURL:      cfg.AmadeusBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether credentials were supplied at startup.
func (c *AmadeusClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// ─── OAuth2 Token ────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %v", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("amadeus credentials not configured")
	}

	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) doRequest(ctx context.Context, path string) ([]byte, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ─── City Lookup ─────────────────────────────────────────────────────────────

// ResolveCityCode returns the IATA code of the first city matching the name.
func (c *AmadeusClient) ResolveCityCode(ctx context.Context, cityName string) (string, error) {
	path := "/v1/reference-data/locations?subType=CITY&keyword=" + url.QueryEscape(cityName)

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return "", fmt.Errorf("city search failed for %q: %w", cityName, err)
	}

	var resp struct {
		Data []struct {
			IataCode string `json:"iataCode"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse city search response: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].IataCode == "" {
		return "", fmt.Errorf("no IATA code found for %q", cityName)
	}
	return resp.Data[0].IataCode, nil
}

// ─── Flight Offers ───────────────────────────────────────────────────────────

type amadeusFlightOffersResponse struct {
	Data []struct {
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

// FlightOffers requests up to five fare offers for the resolved route.
func (c *AmadeusClient) FlightOffers(ctx context.Context, originCode, destCode, departureDate, returnDate string) (*FlightOffersPage, error) {
	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&returnDate=%s&adults=1&max=5",
		url.QueryEscape(originCode),
		url.QueryEscape(destCode),
		url.QueryEscape(departureDate),
		url.QueryEscape(returnDate),
	)

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	var resp amadeusFlightOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	page := &FlightOffersPage{Carriers: resp.Dictionaries.Carriers}
	for _, offer := range resp.Data {
		raw := RawFlightOffer{
			PriceTotal: offer.Price.Total,
			Currency:   offer.Price.Currency,
		}
		if len(offer.Itineraries) > 0 {
			for _, seg := range offer.Itineraries[0].Segments {
				raw.Segments = append(raw.Segments, FlightSegment{
					DepartureCode: seg.Departure.IataCode,
					ArrivalCode:   seg.Arrival.IataCode,
					CarrierCode:   seg.CarrierCode,
				})
			}
		}
		page.Offers = append(page.Offers, raw)
	}
	return page, nil
}

// ─── Hotels ──────────────────────────────────────────────────────────────────

// HotelsByCity lists property IDs within a 20 km radius of the city.
func (c *AmadeusClient) HotelsByCity(ctx context.Context, cityCode string) ([]string, error) {
	path := fmt.Sprintf("/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=20&radiusUnit=KM",
		url.QueryEscape(cityCode))

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}

	var resp struct {
		Data []struct {
			HotelID string `json:"hotelId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}
	return ids, nil
}

// HotelOffer returns the first bookable offer for one property, or nil when
// the property has none for the date range.
func (c *AmadeusClient) HotelOffer(ctx context.Context, hotelID, checkIn, checkOut string) (*HotelDeal, error) {
	path := fmt.Sprintf("/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&checkOutDate=%s&adults=1&currency=USD",
		url.QueryEscape(hotelID),
		url.QueryEscape(checkIn),
		url.QueryEscape(checkOut),
	)

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("hotel offer search for %s failed: %w", hotelID, err)
	}

	var resp struct {
		Data []struct {
			Hotel struct {
				Name string `json:"name"`
			} `json:"hotel"`
			Offers []struct {
				Price struct {
					Total    string `json:"total"`
					Currency string `json:"currency"`
				} `json:"price"`
			} `json:"offers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Offers) == 0 {
		return nil, nil
	}

	name := resp.Data[0].Hotel.Name
	if name == "" {
		name = "Hotel Name Unknown"
	}
	offer := resp.Data[0].Offers[0]
	return &HotelDeal{
		HotelName:  name,
		PriceTotal: offer.Price.Total,
		Currency:   offer.Price.Currency,
	}, nil
}
