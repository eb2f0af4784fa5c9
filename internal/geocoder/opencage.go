package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the OpenCage geocoding API endpoint.
	DefaultBaseURL = "https://api.opencagedata.com"
	// DefaultTimeout bounds a single geocode round trip.
	DefaultTimeout = 10 * time.Second
)

// OpenCage is a Geocoder backed by the OpenCage forward-geocoding API.
type OpenCage struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Config holds settings for the OpenCage client. APIKey is required; the
// rest default sensibly.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewOpenCage creates an OpenCage geocoder client.
func NewOpenCage(cfg Config) *OpenCage {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &OpenCage{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type opencageResponse struct {
	Results []struct {
		Components struct {
			Building    string `json:"building"`
			City        string `json:"city"`
			State       string `json:"state"`
			Postcode    string `json:"postcode"`
			CountryCode string `json:"country_code"`
		} `json:"components"`
		Formatted string `json:"formatted"`
		Geometry  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
	TotalResults int `json:"total_results"`
}

// Geocode resolves address against OpenCage and maps the first-ranked
// candidate into a Result.
func (g *OpenCage) Geocode(ctx context.Context, address string) (Result, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("key", g.apiKey)
	q.Set("limit", "1")
	reqURL := g.baseURL + "/geocode/v1/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("building geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return Result{}, ErrRateLimited
	case resp.StatusCode >= 500:
		return Result{}, fmt.Errorf("%w: provider returned %d", ErrUnavailable, resp.StatusCode)
	}

	var body opencageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	// OpenCage mirrors the outcome in the body status code.
	if body.Status.Code == http.StatusPaymentRequired {
		return Result{}, ErrRateLimited
	}
	if body.Status.Code != http.StatusOK || len(body.Results) == 0 {
		return Result{}, fmt.Errorf("%w: %s (%d results)", ErrNoResults, body.Status.Message, body.TotalResults)
	}

	place := body.Results[0]
	return Result{
		Lng:              place.Geometry.Lng,
		Lat:              place.Geometry.Lat,
		FormattedAddress: place.Formatted,
		Street:           place.Components.Building,
		City:             place.Components.City,
		State:            place.Components.State,
		Zipcode:          place.Components.Postcode,
		CountryCode:      place.Components.CountryCode,
	}, nil
}
