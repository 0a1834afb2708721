package models

import "strings"

// Itinerary is an ordered list of fare segments plus their summed cost.
// It is derived per search and never persisted.
type Itinerary struct {
	Segments  []FareSegment `json:"segments"`
	TotalCost int           `json:"total_cost"`
}

// RoutePattern renders the itinerary as "ICN → KIX → CTS → ICN".
func (it Itinerary) RoutePattern() string {
	if len(it.Segments) == 0 {
		return ""
	}
	airports := make([]string, 0, len(it.Segments)+1)
	for _, seg := range it.Segments {
		airports = append(airports, seg.From)
	}
	airports = append(airports, it.Segments[len(it.Segments)-1].To)
	return strings.Join(airports, " → ")
}

// DirectRoutePattern is the pattern string used for direct-only
// responses, where no segments are available to derive it from.
func DirectRoutePattern(departure, destination string) string {
	return departure + " → " + destination + " → " + departure
}
