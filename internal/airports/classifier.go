// Package airports classifies airport codes by country so the
// orchestrator can pick a fare provider per leg without hardcoding
// membership sets in the search logic.
package airports

import "strings"

type Region int

const (
	RegionUnknown Region = iota
	RegionHome
	RegionDestination
)

// Classifier maps an airport code to a region.
type Classifier interface {
	Classify(airport string) Region
}

// DefaultHomeAirports and DefaultDestinationAirports are the Korean and
// Japanese airports the service was built around.
var (
	DefaultHomeAirports        = []string{"ICN", "GMP", "PUS", "CJU"}
	DefaultDestinationAirports = []string{"NRT", "HND", "KIX", "CTS", "FUK", "OKA", "NGO", "ITM"}
)

// SetClassifier classifies by membership in two fixed sets.
type SetClassifier struct {
	home map[string]bool
	dest map[string]bool
}

func NewSetClassifier(home, destination []string) *SetClassifier {
	return &SetClassifier{
		home: toSet(home),
		dest: toSet(destination),
	}
}

func NewDefaultClassifier() *SetClassifier {
	return NewSetClassifier(DefaultHomeAirports, DefaultDestinationAirports)
}

func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[strings.ToUpper(c)] = true
	}
	return set
}

func (c *SetClassifier) Classify(airport string) Region {
	code := strings.ToUpper(airport)
	switch {
	case c.home[code]:
		return RegionHome
	case c.dest[code]:
		return RegionDestination
	default:
		return RegionUnknown
	}
}

// HomeSet and DestinationSet expose copies of the membership sets for
// entry/exit refresh against discovered edges.
func (c *SetClassifier) HomeSet() map[string]bool {
	return copySet(c.home)
}

func (c *SetClassifier) DestinationSet() map[string]bool {
	return copySet(c.dest)
}

func copySet(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out
}

// International reports whether a leg crosses between the home and
// destination countries. Legs inside the destination country, and any
// combination involving an unknown airport, count as domestic.
func International(c Classifier, from, to string) bool {
	f := c.Classify(from)
	t := c.Classify(to)
	return (f == RegionHome && t == RegionDestination) || (f == RegionDestination && t == RegionHome)
}
