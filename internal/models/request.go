package models

import (
	"strings"
	"time"
)

const DefaultTripNights = 3

type SearchRequest struct {
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	TripNights  *int   `json:"trip_nights,omitempty"`
}

// Validate checks required fields, normalizes airport codes to
// uppercase and defaults the trip length.
func (r *SearchRequest) Validate() error {
	r.Departure = strings.ToUpper(strings.TrimSpace(r.Departure))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))

	if r.Departure == "" {
		return ErrMissingDeparture
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if len(r.Departure) != 3 || len(r.Destination) != 3 {
		return ErrInvalidAirportCode
	}

	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return ErrInvalidDateRange
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}

	if r.TripNights == nil || *r.TripNights <= 0 {
		nights := DefaultTripNights
		r.TripNights = &nights
	}

	return nil
}

// Nights returns the trip length, defaulting when unset.
func (r *SearchRequest) Nights() int {
	if r.TripNights == nil || *r.TripNights <= 0 {
		return DefaultTripNights
	}
	return *r.TripNights
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingDeparture   ValidationError = "departure is required"
	ErrMissingDestination ValidationError = "destination is required"
	ErrInvalidAirportCode ValidationError = "airport codes must be 3 letters"
	ErrInvalidDateRange   ValidationError = "start_date and end_date must be valid YYYY-MM-DD dates with start_date <= end_date"
)
