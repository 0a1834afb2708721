package models

import "time"

// FareSegment is one priced, dated, directed leg between two airports.
// Prices are whole KRW. A segment is treated as immutable once built:
// the graph hands out shared instances, so any date change must go
// through WithDate rather than a field write.
type FareSegment struct {
	From          string    `json:"from_airport"`
	To            string    `json:"to_airport"`
	Price         int       `json:"price"`
	Provider      string    `json:"provider"`
	Date          time.Time `json:"date"`
	FlightNumber  string    `json:"flight_number,omitempty"`
	DepartureTime string    `json:"departure_time,omitempty"`
	ArrivalTime   string    `json:"arrival_time,omitempty"`
}

// WithDate returns a copy of the segment pinned to d. The receiver is
// never modified.
func (s FareSegment) WithDate(d time.Time) FareSegment {
	s.Date = d
	return s
}

// Valid reports whether the segment carries enough data to appear in a
// response: both airport codes and a non-zero date.
func (s FareSegment) Valid() bool {
	return s.From != "" && s.To != "" && !s.Date.IsZero()
}
