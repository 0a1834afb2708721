// Package engine orchestrates a search: it generates route templates,
// fetches the fares they need under a concurrency cap, and assembles
// the cheapest round-trip itinerary from the resulting price graph.
package engine

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/flown/flown/internal/aggregator"
	"github.com/flown/flown/internal/airports"
	"github.com/flown/flown/internal/cache"
	"github.com/flown/flown/internal/graph"
	"github.com/flown/flown/internal/models"
	"github.com/flown/flown/internal/providers"
	"github.com/flown/flown/internal/routes"
	"github.com/flown/flown/pkg/currency"
	"github.com/flown/flown/pkg/dateutil"
)

type Config struct {
	International providers.FareProvider
	Domestic      providers.FareProvider
	Cache         cache.Store
	Classifier    airports.Classifier

	// MaxConcurrentFetches bounds in-flight provider requests per
	// search.
	MaxConcurrentFetches int64
	// MaxQueryDays caps how many dates of the request window are
	// queried per leg.
	MaxQueryDays int
	// MaxDatePairs caps how many (departure, return) combinations are
	// assembled.
	MaxDatePairs int

	InternationalTTL time.Duration
	DomesticTTL      time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxConcurrentFetches: 20,
		MaxQueryDays:         7,
		MaxDatePairs:         5,
		InternationalTTL:     3 * time.Hour,
		DomesticTTL:          6 * time.Hour,
	}
}

// Engine holds only immutable configuration; every Search call builds
// its own graph, so instances are safe for concurrent use and carry no
// state between requests.
type Engine struct {
	cfg     Config
	flights singleflight.Group
}

func New(cfg Config) *Engine {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNoOpStore()
	}
	if cfg.Classifier == nil {
		cfg.Classifier = airports.NewDefaultClassifier()
	}
	if cfg.MaxConcurrentFetches <= 0 {
		cfg.MaxConcurrentFetches = DefaultConfig().MaxConcurrentFetches
	}
	if cfg.MaxQueryDays <= 0 {
		cfg.MaxQueryDays = DefaultConfig().MaxQueryDays
	}
	if cfg.MaxDatePairs <= 0 {
		cfg.MaxDatePairs = DefaultConfig().MaxDatePairs
	}
	if cfg.InternationalTTL <= 0 {
		cfg.InternationalTTL = DefaultConfig().InternationalTTL
	}
	if cfg.DomesticTTL <= 0 {
		cfg.DomesticTTL = DefaultConfig().DomesticTTL
	}
	return &Engine{cfg: cfg}
}

// Search runs the full pipeline and always produces a response for
// ordinary outcomes; "no itinerary found" falls back to a direct-only
// response rather than an error.
func (e *Engine) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	start, err := dateutil.Parse(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dateutil.Parse(req.EndDate)
	if err != nil {
		return nil, err
	}

	dep := req.Departure
	dest := req.Destination
	log.Printf("search started: %s → %s (%s to %s)", dep, dest, req.StartDate, req.EndDate)

	g := graph.New()
	templateEngine := routes.NewEngine(g)
	agg := aggregator.New(g)

	// First generation runs against the default gateway candidates;
	// it only determines which legs to fetch.
	templates := templateEngine.Generate(dep, dest, true)
	log.Printf("generated %d provisional templates", len(templates))

	e.populateGraph(ctx, g, templates, start, end)

	// Now that real edges are known, recompute the gateway candidates
	// and regenerate. This second generation is authoritative.
	e.refreshEntryExit(g)
	templates = templateEngine.Generate(dep, dest, true)
	log.Printf("generated %d templates after entry/exit refresh", len(templates))

	pairs := dateutil.Pairs(start, end, req.Nights())
	if len(pairs) > e.cfg.MaxDatePairs {
		pairs = pairs[:e.cfg.MaxDatePairs]
	}

	var itineraries []models.Itinerary
	for _, template := range templates {
		if !templateEngine.Validate(template, dest) {
			continue
		}
		if len(templateEngine.Expand(template, nil)) == 0 {
			continue
		}

		for _, pair := range pairs {
			it, stage, ok := e.assemble(agg, template, pair, dest)
			if !ok {
				continue
			}
			log.Printf("itinerary assembled (%s match): %s, cost %d", stage, it.RoutePattern(), it.TotalCost)
			itineraries = append(itineraries, it)
		}
	}
	log.Printf("assembled %d itineraries", len(itineraries))

	cheapest, ok := aggregator.Cheapest(itineraries)
	if !ok {
		log.Printf("no itinerary assembled, returning direct-only response")
		return e.directResponse(ctx, req, start), nil
	}

	directCost := e.directCost(ctx, req, start)
	cheaperThanDirect := aggregator.BeatsDirect(cheapest, directCost)

	// Defensive filter against malformed assembly output.
	valid := make([]models.FareSegment, 0, len(cheapest.Segments))
	for _, seg := range cheapest.Segments {
		if seg.Valid() {
			valid = append(valid, seg)
		}
	}
	if len(valid) == 0 {
		log.Printf("all assembled segments were malformed, returning direct-only response")
		return e.directResponse(ctx, req, start), nil
	}

	return &models.SearchResponse{
		TotalCost:          cheapest.TotalCost,
		TotalCostFormatted: currency.FormatKRW(cheapest.TotalCost),
		Segments:           valid,
		RoutePattern:       cheapest.RoutePattern(),
		CheaperThanDirect:  cheaperThanDirect,
		DirectCost:         directCost,
	}, nil
}

// assemble tries strict date matching first, then relaxes to the
// all-dates fallback. The returned stage names which attempt produced
// the itinerary.
func (e *Engine) assemble(agg *aggregator.Aggregator, template []string, pair dateutil.Pair, destination string) (models.Itinerary, aggregator.MatchStage, bool) {
	it, ok := agg.Build(template, pair.Departure, pair.Return, destination, aggregator.BuildOptions{
		StrictDateMatch: true,
	})
	if ok {
		return it, aggregator.MatchStrict, true
	}

	it, ok = agg.Build(template, pair.Departure, pair.Return, destination, aggregator.BuildOptions{
		StrictDateMatch: false,
	})
	if ok {
		return it, aggregator.MatchRelaxed, true
	}

	return models.Itinerary{}, aggregator.MatchNone, false
}

// populateGraph fetches every (leg, date) combination the templates
// need, bounded by the concurrency cap, and ingests the results.
// Individual failures degrade to an absent segment.
func (e *Engine) populateGraph(ctx context.Context, g *graph.Graph, templates [][]string, start, end time.Time) {
	needed := make(map[graph.Edge]bool)
	for _, template := range templates {
		for i := 0; i < len(template)-1; i++ {
			needed[graph.Edge{From: template[i], To: template[i+1]}] = true
		}
	}

	dates := dateutil.Range(start, end)
	if len(dates) > e.cfg.MaxQueryDays {
		dates = dates[:e.cfg.MaxQueryDays]
	}

	sem := semaphore.NewWeighted(e.cfg.MaxConcurrentFetches)
	results := make(chan *models.FareSegment, len(needed)*len(dates))
	pending := 0

	for edge := range needed {
		for _, date := range dates {
			pending++
			go func(edge graph.Edge, date time.Time) {
				if err := sem.Acquire(ctx, 1); err != nil {
					results <- nil
					return
				}
				defer sem.Release(1)

				seg, err := e.fetchSegment(ctx, edge.From, edge.To, date)
				if err != nil {
					log.Printf("fetch failed for %s → %s on %s: %v", edge.From, edge.To, dateutil.Format(date), err)
					results <- nil
					return
				}
				results <- seg
			}(edge, date)
		}
	}

	// Ingestion happens on this goroutine only, so completion order
	// does not matter and the graph needs no locking.
	found := 0
	for i := 0; i < pending; i++ {
		if seg := <-results; seg != nil {
			g.AddSegment(*seg)
			found++
		}
	}
	log.Printf("graph populated: %d of %d fetches returned a segment", found, pending)
}

// refreshEntryExit classifies the endpoints of discovered edges and
// lets the graph recompute its gateway candidates from them.
func (e *Engine) refreshEntryExit(g *graph.Graph) {
	home := make(map[string]bool)
	dest := make(map[string]bool)

	for edge := range g.AllEdges() {
		for _, code := range []string{edge.From, edge.To} {
			switch e.cfg.Classifier.Classify(code) {
			case airports.RegionHome:
				home[code] = true
			case airports.RegionDestination:
				dest[code] = true
			}
		}
	}

	g.RefreshEntryExit(home, dest)
}

// directCost prices the direct round trip: outbound at the window
// start, inbound after the requested number of nights. Either leg
// missing yields an unknown cost.
func (e *Engine) directCost(ctx context.Context, req models.SearchRequest, start time.Time) *int {
	outbound, err := e.fetchSegment(ctx, req.Departure, req.Destination, start)
	if err != nil || outbound == nil {
		return nil
	}

	inbound, err := e.fetchSegment(ctx, req.Destination, req.Departure, dateutil.ReturnDate(start, req.Nights()))
	if err != nil || inbound == nil {
		return nil
	}

	total := outbound.Price + inbound.Price
	return &total
}

func (e *Engine) directResponse(ctx context.Context, req models.SearchRequest, start time.Time) *models.SearchResponse {
	directCost := e.directCost(ctx, req, start)

	total := 0
	if directCost != nil {
		total = *directCost
	}

	return &models.SearchResponse{
		TotalCost:          total,
		TotalCostFormatted: currency.FormatKRW(total),
		Segments:           []models.FareSegment{},
		RoutePattern:       models.DirectRoutePattern(req.Departure, req.Destination),
		CheaperThanDirect:  false,
		DirectCost:         directCost,
	}
}
