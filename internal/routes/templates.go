// Package routes generates bounded round-trip route templates. Only a
// fixed set of shapes is produced, which keeps the search space small
// instead of exploding combinatorially over every airport pair.
package routes

import (
	"strings"

	"github.com/flown/flown/internal/graph"
)

// MaxInteriorStops bounds the number of airports between the departure
// and the closing return. The two-entry shape needs 4 (entry1, entry2,
// destination, exit), so the bound must not be tighter than that.
const MaxInteriorStops = 4

// Engine builds templates against a price graph's current entry/exit
// gateway candidates.
type Engine struct {
	graph *graph.Graph
}

func NewEngine(g *graph.Graph) *Engine {
	return &Engine{graph: g}
}

// Generate produces the candidate round-trip shapes for a departure and
// final destination:
//
//	A: DEP → DEST → DEP
//	B: DEP → ENTRY → DEST → DEP
//	C: DEP → ENTRY → DEST → EXIT → DEP
//	D: DEP → ENTRY1 → ENTRY2 → DEST → EXIT → DEP
//
// Shape D is ordered: (entry1, entry2) and (entry2, entry1) are
// distinct templates. Shape C skips entry == exit to cut duplicate
// loops.
func (e *Engine) Generate(departure, destination string, allowTwoEntries bool) [][]string {
	dep := strings.ToUpper(departure)
	dest := strings.ToUpper(destination)

	entries := e.graph.EntryAirports()
	exits := e.graph.ExitAirports()

	var templates [][]string

	templates = append(templates, []string{dep, dest, dep})

	for _, entry := range entries {
		if entry == dest {
			continue
		}
		templates = append(templates, []string{dep, entry, dest, dep})
	}

	for _, entry := range entries {
		if entry == dest {
			continue
		}
		for _, exit := range exits {
			if exit == entry {
				continue
			}
			templates = append(templates, []string{dep, entry, dest, exit, dep})
		}
	}

	if allowTwoEntries && len(entries) >= 2 {
		for _, entry1 := range entries {
			if entry1 == dest {
				continue
			}
			for _, entry2 := range entries {
				if entry2 == dest || entry2 == entry1 {
					continue
				}
				for _, exit := range exits {
					templates = append(templates, []string{dep, entry1, entry2, dest, exit, dep})
				}
			}
		}
	}

	return templates
}

// Validate checks a template's structure: at least 3 stops, the same
// airport at both ends, no repeated interior airport, no more than
// MaxInteriorStops interior airports, and, when destination is
// non-empty, the destination among the interior stops.
func (e *Engine) Validate(template []string, destination string) bool {
	if len(template) < 3 {
		return false
	}
	if !strings.EqualFold(template[0], template[len(template)-1]) {
		return false
	}

	interior := make([]string, 0, len(template)-2)
	for _, a := range template[1 : len(template)-1] {
		interior = append(interior, strings.ToUpper(a))
	}

	seen := make(map[string]bool, len(interior))
	for _, a := range interior {
		if seen[a] {
			return false
		}
		seen[a] = true
	}

	if len(interior) > MaxInteriorStops {
		return false
	}

	if destination != "" && !seen[strings.ToUpper(destination)] {
		return false
	}

	return true
}

// Expand confirms every consecutive pair in the template has at least
// one edge, checking the given availability map or the graph directly
// when the map is nil. It returns the template wrapped in a
// single-element slice when fully available, otherwise nil. This is the
// gate that keeps assembly away from legs that were never found.
func (e *Engine) Expand(template []string, available map[graph.Edge]bool) [][]string {
	if len(template) < 2 {
		return nil
	}

	for i := 0; i < len(template)-1; i++ {
		from := strings.ToUpper(template[i])
		to := strings.ToUpper(template[i+1])

		ok := false
		if available == nil {
			ok = e.graph.HasEdge(from, to)
		} else {
			ok = available[graph.Edge{From: from, To: to}]
		}
		if !ok {
			return nil
		}
	}

	return [][]string{template}
}
