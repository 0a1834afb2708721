// Package graph holds the per-request price graph: airports as nodes,
// dated fare segments as edges. A graph is built fresh for every search
// and is read-only once the assembly phase starts.
package graph

import (
	"sort"
	"strings"
	"time"

	"github.com/flown/flown/internal/models"
)

// DefaultEntryAirports and DefaultExitAirports seed the international
// gateway candidates before any real edges are known.
var (
	DefaultEntryAirports = []string{"NRT", "KIX", "FUK"}
	DefaultExitAirports  = []string{"NRT", "KIX", "FUK"}
)

// Edge identifies a directed airport pair with at least one segment.
type Edge struct {
	From string
	To   string
}

type Graph struct {
	edges map[string]map[string][]models.FareSegment

	entryAirports []string
	exitAirports  []string
}

func New() *Graph {
	return &Graph{
		edges:         make(map[string]map[string][]models.FareSegment),
		entryAirports: append([]string(nil), DefaultEntryAirports...),
		exitAirports:  append([]string(nil), DefaultExitAirports...),
	}
}

// AddSegment appends a segment to the edge list for its airport pair.
// Codes are normalized to uppercase; segments with an empty code are
// dropped. Duplicates are kept: multiple segments per pair represent
// different dates and providers.
func (g *Graph) AddSegment(seg models.FareSegment) {
	from := strings.ToUpper(seg.From)
	to := strings.ToUpper(seg.To)
	if from == "" || to == "" {
		return
	}
	seg.From = from
	seg.To = to

	if g.edges[from] == nil {
		g.edges[from] = make(map[string][]models.FareSegment)
	}
	g.edges[from][to] = append(g.edges[from][to], seg)
}

func (g *Graph) AddSegments(segs []models.FareSegment) {
	for _, seg := range segs {
		g.AddSegment(seg)
	}
}

// Clear drops every edge but keeps the entry/exit candidate lists.
func (g *Graph) Clear() {
	g.edges = make(map[string]map[string][]models.FareSegment)
}

func (g *Graph) HasEdge(from, to string) bool {
	return len(g.segments(from, to)) > 0
}

func (g *Graph) segments(from, to string) []models.FareSegment {
	tos, ok := g.edges[strings.ToUpper(from)]
	if !ok {
		return nil
	}
	return tos[strings.ToUpper(to)]
}

// CheapestSegment returns the minimum-price segment for the pair across
// all dates. This is the relaxed query: callers wanting a specific date
// must use CheapestSegmentOn.
func (g *Graph) CheapestSegment(from, to string) (models.FareSegment, bool) {
	return cheapest(g.segments(from, to))
}

// CheapestSegmentOn returns the minimum-price segment for the pair on
// exactly the given date. No fallback to other dates.
func (g *Graph) CheapestSegmentOn(from, to string, date time.Time) (models.FareSegment, bool) {
	var matched []models.FareSegment
	for _, seg := range g.segments(from, to) {
		if sameDay(seg.Date, date) {
			matched = append(matched, seg)
		}
	}
	return cheapest(matched)
}

func cheapest(segs []models.FareSegment) (models.FareSegment, bool) {
	if len(segs) == 0 {
		return models.FareSegment{}, false
	}
	best := segs[0]
	for _, seg := range segs[1:] {
		if seg.Price < best.Price {
			best = seg
		}
	}
	return best, true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DestinationsFrom lists every airport reachable from the given origin.
func (g *Graph) DestinationsFrom(from string) []string {
	tos, ok := g.edges[strings.ToUpper(from)]
	if !ok {
		return nil
	}
	dests := make([]string, 0, len(tos))
	for to := range tos {
		dests = append(dests, to)
	}
	sort.Strings(dests)
	return dests
}

// AllEdges returns the set of airport pairs with at least one segment.
func (g *Graph) AllEdges() map[Edge]bool {
	edges := make(map[Edge]bool)
	for from, tos := range g.edges {
		for to, segs := range tos {
			if len(segs) > 0 {
				edges[Edge{From: from, To: to}] = true
			}
		}
	}
	return edges
}

func (g *Graph) EntryAirports() []string {
	return append([]string(nil), g.entryAirports...)
}

func (g *Graph) ExitAirports() []string {
	return append([]string(nil), g.exitAirports...)
}

func (g *Graph) SetEntryAirports(airports []string) {
	g.entryAirports = normalizeCodes(airports)
}

func (g *Graph) SetExitAirports(airports []string) {
	g.exitAirports = normalizeCodes(airports)
}

func normalizeCodes(airports []string) []string {
	out := make([]string, 0, len(airports))
	for _, a := range airports {
		if a == "" {
			continue
		}
		out = append(out, strings.ToUpper(a))
	}
	return out
}

// RefreshEntryExit recomputes the gateway candidates from edges
// actually present in the graph: destinations of home→destination edges
// become entries, origins of destination→home edges become exits. When
// no qualifying edges are found the previous candidates are retained,
// never emptied. Only meaningful after the graph has been populated.
func (g *Graph) RefreshEntryExit(homeSet, destSet map[string]bool) {
	entries := make(map[string]bool)
	exits := make(map[string]bool)

	for edge := range g.AllEdges() {
		if homeSet[edge.From] && destSet[edge.To] {
			entries[edge.To] = true
		}
		if destSet[edge.From] && homeSet[edge.To] {
			exits[edge.From] = true
		}
	}

	if len(entries) > 0 {
		g.entryAirports = sortedKeys(entries)
	}
	if len(exits) > 0 {
		g.exitAirports = sortedKeys(exits)
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
