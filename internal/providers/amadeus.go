package providers

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/flown/flown/internal/models"
	"github.com/flown/flown/internal/ratelimit"
)

// AmadeusProvider serves international (Korea ↔ Japan) one-way fares.
// It stands in for the real Amadeus API with a mock fare table, the
// same way the other providers here ship mock data.
type AmadeusProvider struct {
	limiter *ratelimit.ProviderLimiter
}

func NewAmadeusProvider(limiter *ratelimit.ProviderLimiter) *AmadeusProvider {
	return &AmadeusProvider{limiter: limiter}
}

func (p *AmadeusProvider) Name() string {
	return "amadeus"
}

const minInternationalFare = 50000

func (p *AmadeusProvider) FetchCheapestOneWay(ctx context.Context, origin, destination string, date time.Time) (*models.FareSegment, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.Name()); err != nil {
			return nil, NewProviderError(p.Name(), err)
		}
	}

	return fetchWithRetry(ctx, p.Name(), func() (*models.FareSegment, error) {
		return p.search(ctx, origin, destination, date)
	})
}

func (p *AmadeusProvider) search(ctx context.Context, origin, destination string, date time.Time) (*models.FareSegment, error) {
	// Simulated network latency.
	delay := time.Duration(50+rand.Intn(50)) * time.Millisecond
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	from := strings.ToUpper(origin)
	to := strings.ToUpper(destination)

	basePrice := 70000
	if from == "ICN" {
		basePrice = 80000
	}

	price := basePrice + rand.Intn(30001) - 10000
	if price < minInternationalFare {
		price = minInternationalFare
	}

	seg := models.FareSegment{
		From:          from,
		To:            to,
		Price:         price,
		Provider:      p.Name(),
		Date:          date,
		FlightNumber:  fmt.Sprintf("KE%d", 100+rand.Intn(900)),
		DepartureTime: "09:00",
		ArrivalTime:   "11:30",
	}
	return &seg, nil
}
