// Package dateutil holds the civil-date helpers the search core works
// in: ISO date strings and whole-day arithmetic.
package dateutil

import "time"

const Layout = "2006-01-02"

// MaxReturnLookahead bounds how far past the window end a return date
// may land when pairing departures with returns.
const MaxReturnLookahead = 30 * 24 * time.Hour

// Pair is one candidate (departure, return) date combination.
type Pair struct {
	Departure time.Time
	Return    time.Time
}

// Range lists every date from start to end inclusive.
func Range(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ReturnDate computes the return date for a departure and a stay of
// the given number of nights.
func ReturnDate(departure time.Time, nights int) time.Time {
	return departure.AddDate(0, 0, nights)
}

// Pairs lists (departure, return) combinations for every departure in
// [start, end], dropping pairs whose return falls more than
// MaxReturnLookahead past the window end.
func Pairs(start, end time.Time, nights int) []Pair {
	limit := end.Add(MaxReturnLookahead)

	var pairs []Pair
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ret := ReturnDate(d, nights)
		if ret.After(limit) {
			continue
		}
		pairs = append(pairs, Pair{Departure: d, Return: ret})
	}
	return pairs
}

func Format(d time.Time) string {
	return d.Format(Layout)
}

func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// SegmentDates computes the date each leg of a template departs on,
// using the same cursor rule as itinerary assembly: jump to the return
// date after arriving at the template's final destination (the stop
// before the closing return), otherwise advance a day per leg unless
// same-day transfers are allowed.
func SegmentDates(template []string, departure, ret time.Time, allowSameDayTransfer bool) []time.Time {
	if len(template) < 2 {
		return nil
	}

	finalDestination := template[len(template)-2]
	current := departure

	dates := make([]time.Time, 0, len(template)-1)
	for i := 0; i < len(template)-1; i++ {
		dates = append(dates, current)
		if template[i+1] == finalDestination {
			current = ret
		} else if !allowSameDayTransfer {
			current = current.AddDate(0, 0, 1)
		}
	}
	return dates
}
