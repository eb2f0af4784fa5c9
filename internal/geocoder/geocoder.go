package geocoder

import (
	"context"
	"errors"
)

// Result is one resolved address: coordinates plus the structured components
// the provider returned for its first-ranked candidate.
type Result struct {
	Lng              float64
	Lat              float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	CountryCode      string
}

var (
	// ErrNoResults means the provider answered but had no candidate for the
	// address. Callers decide whether that is fatal.
	ErrNoResults = errors.New("geocoder: no results for address")
	// ErrRateLimited means the provider rejected the request over quota.
	ErrRateLimited = errors.New("geocoder: provider rate limit reached")
	// ErrUnavailable covers network failures, timeouts and provider-side
	// errors. Safe to retry.
	ErrUnavailable = errors.New("geocoder: provider unavailable")
)

// Geocoder resolves a free-text address into coordinates and components.
// Implementations must not be given empty addresses.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}
