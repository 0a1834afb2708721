package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flown/flown/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func seg(from, to string, price int, date string) models.FareSegment {
	return models.FareSegment{
		From:     from,
		To:       to,
		Price:    price,
		Provider: "test",
		Date:     day(date),
	}
}

func TestAddSegment(t *testing.T) {
	t.Run("normalizes codes to uppercase", func(t *testing.T) {
		g := New()
		g.AddSegment(seg("icn", "kix", 80000, "2025-03-01"))

		assert.True(t, g.HasEdge("ICN", "KIX"))
		assert.True(t, g.HasEdge("icn", "kix"))
	})

	t.Run("rejects empty codes", func(t *testing.T) {
		g := New()
		g.AddSegment(seg("", "KIX", 80000, "2025-03-01"))
		g.AddSegment(seg("ICN", "", 80000, "2025-03-01"))

		assert.Empty(t, g.AllEdges())
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		g := New()
		g.AddSegment(seg("ICN", "KIX", 80000, "2025-03-01"))
		g.AddSegment(seg("ICN", "KIX", 80000, "2025-03-01"))

		cheapestSeg, ok := g.CheapestSegment("ICN", "KIX")
		require.True(t, ok)
		assert.Equal(t, 80000, cheapestSeg.Price)
	})
}

func TestCheapestSegmentOn(t *testing.T) {
	g := New()
	g.AddSegments([]models.FareSegment{
		seg("ICN", "KIX", 90000, "2025-03-01"),
		seg("ICN", "KIX", 82000, "2025-03-01"),
		seg("ICN", "KIX", 70000, "2025-03-02"),
	})

	t.Run("returns minimum among the exact date only", func(t *testing.T) {
		s, ok := g.CheapestSegmentOn("ICN", "KIX", day("2025-03-01"))
		require.True(t, ok)
		assert.Equal(t, 82000, s.Price)
	})

	t.Run("no fallback to other dates", func(t *testing.T) {
		_, ok := g.CheapestSegmentOn("ICN", "KIX", day("2025-03-05"))
		assert.False(t, ok)
	})

	t.Run("no match for unknown pair", func(t *testing.T) {
		_, ok := g.CheapestSegmentOn("ICN", "CTS", day("2025-03-01"))
		assert.False(t, ok)
	})
}

func TestCheapestSegment(t *testing.T) {
	g := New()
	g.AddSegments([]models.FareSegment{
		seg("ICN", "KIX", 90000, "2025-03-01"),
		seg("ICN", "KIX", 70000, "2025-03-02"),
		seg("ICN", "KIX", 85000, "2025-03-03"),
	})

	s, ok := g.CheapestSegment("ICN", "KIX")
	require.True(t, ok)
	assert.Equal(t, 70000, s.Price, "minimum across all dates, never date-filtered")
}

func TestDestinationsFrom(t *testing.T) {
	g := New()
	g.AddSegment(seg("ICN", "KIX", 80000, "2025-03-01"))
	g.AddSegment(seg("ICN", "CTS", 95000, "2025-03-01"))

	assert.Equal(t, []string{"CTS", "KIX"}, g.DestinationsFrom("ICN"))
	assert.Empty(t, g.DestinationsFrom("KIX"))
}

func TestClear(t *testing.T) {
	g := New()
	g.SetEntryAirports([]string{"CTS"})
	g.AddSegment(seg("ICN", "KIX", 80000, "2025-03-01"))

	g.Clear()

	assert.Empty(t, g.AllEdges())
	assert.Equal(t, []string{"CTS"}, g.EntryAirports(), "clear only drops edges")
}

func TestRefreshEntryExit(t *testing.T) {
	home := map[string]bool{"ICN": true, "GMP": true}
	dest := map[string]bool{"KIX": true, "NRT": true, "CTS": true}

	t.Run("recomputes from discovered edges", func(t *testing.T) {
		g := New()
		g.AddSegment(seg("ICN", "KIX", 80000, "2025-03-01"))
		g.AddSegment(seg("ICN", "NRT", 85000, "2025-03-01"))
		g.AddSegment(seg("CTS", "ICN", 90000, "2025-03-04"))

		g.RefreshEntryExit(home, dest)

		assert.Equal(t, []string{"KIX", "NRT"}, g.EntryAirports())
		assert.Equal(t, []string{"CTS"}, g.ExitAirports())
	})

	t.Run("retains previous candidates when nothing qualifies", func(t *testing.T) {
		g := New()
		g.AddSegment(seg("KIX", "CTS", 8000, "2025-03-02"))

		g.RefreshEntryExit(home, dest)

		assert.Equal(t, DefaultEntryAirports, g.EntryAirports())
		assert.Equal(t, DefaultExitAirports, g.ExitAirports())
	})
}

func TestEntryAirportsReturnsCopy(t *testing.T) {
	g := New()
	entries := g.EntryAirports()
	entries[0] = "XXX"

	assert.Equal(t, DefaultEntryAirports, g.EntryAirports())
}
