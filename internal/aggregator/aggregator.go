// Package aggregator assembles priced itineraries by walking a route
// template against the price graph and sums their cost.
package aggregator

import (
	"strings"
	"time"

	"github.com/flown/flown/internal/graph"
	"github.com/flown/flown/internal/models"
)

// MatchStage names which leg-resolution stage produced a result, so
// callers can log and tests can assert the fallback path taken.
type MatchStage int

const (
	MatchNone MatchStage = iota
	// MatchStrict resolved every leg with an exact-date fare.
	MatchStrict
	// MatchRelaxed fell back to the cheapest all-dates fare for at
	// least one leg.
	MatchRelaxed
)

func (s MatchStage) String() string {
	switch s {
	case MatchStrict:
		return "strict"
	case MatchRelaxed:
		return "relaxed"
	default:
		return "none"
	}
}

// BuildOptions control how Build resolves legs and advances dates.
type BuildOptions struct {
	// AllowSameDayTransfer keeps the date cursor in place at interior
	// stops instead of advancing it one day per leg.
	AllowSameDayTransfer bool
	// StrictDateMatch requires an exact-date fare for every leg; a
	// miss fails the whole assembly. When false, a missing dated fare
	// falls back to the pair's cheapest fare across all dates.
	StrictDateMatch bool
}

type Aggregator struct {
	graph *graph.Graph
}

func New(g *graph.Graph) *Aggregator {
	return &Aggregator{graph: g}
}

// TotalCost sums segment prices.
func TotalCost(segments []models.FareSegment) int {
	total := 0
	for _, seg := range segments {
		total += seg.Price
	}
	return total
}

// Build walks the template's consecutive airport pairs, resolving each
// leg to a graph segment and tracking a date cursor that starts at
// departureDate. Once a leg arrives at the final destination the cursor
// jumps to returnDate; otherwise it advances one day per leg (or holds,
// with same-day transfers). Every resolved segment is cloned with its
// date pinned to the cursor, so the graph's shared instances are never
// mutated. Returns false if any leg cannot be resolved.
func (a *Aggregator) Build(template []string, departureDate, returnDate time.Time, destination string, opts BuildOptions) (models.Itinerary, bool) {
	if len(template) < 3 {
		return models.Itinerary{}, false
	}

	finalDestination := strings.ToUpper(destination)
	current := departureDate
	segments := make([]models.FareSegment, 0, len(template)-1)

	for i := 0; i < len(template)-1; i++ {
		from := strings.ToUpper(template[i])
		to := strings.ToUpper(template[i+1])

		seg, ok := a.resolveLeg(from, to, current, opts.StrictDateMatch)
		if !ok {
			return models.Itinerary{}, false
		}

		segments = append(segments, seg.WithDate(current))

		if to == finalDestination {
			current = returnDate
		} else if !opts.AllowSameDayTransfer {
			current = current.AddDate(0, 0, 1)
		}
	}

	return models.Itinerary{
		Segments:  segments,
		TotalCost: TotalCost(segments),
	}, true
}

func (a *Aggregator) resolveLeg(from, to string, date time.Time, strict bool) (models.FareSegment, bool) {
	if seg, ok := a.graph.CheapestSegmentOn(from, to, date); ok {
		return seg, true
	}
	if strict {
		return models.FareSegment{}, false
	}
	return a.graph.CheapestSegment(from, to)
}

// Cheapest picks the minimum-cost itinerary, or false when none exist.
func Cheapest(itineraries []models.Itinerary) (models.Itinerary, bool) {
	if len(itineraries) == 0 {
		return models.Itinerary{}, false
	}
	best := itineraries[0]
	for _, it := range itineraries[1:] {
		if it.TotalCost < best.TotalCost {
			best = it
		}
	}
	return best, true
}

// BeatsDirect reports whether the itinerary is strictly cheaper than
// the direct round trip. An unknown direct cost counts as beaten.
func BeatsDirect(it models.Itinerary, directCost *int) bool {
	if directCost == nil || *directCost == 0 {
		return true
	}
	return it.TotalCost < *directCost
}
