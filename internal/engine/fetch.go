package engine

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/flown/flown/internal/airports"
	"github.com/flown/flown/internal/cache"
	"github.com/flown/flown/internal/models"
	"github.com/flown/flown/pkg/dateutil"
)

// cachedSegment is the stored form of a fare segment. The date travels
// as its ISO string so cached values survive round-tripping through
// any JSON-shaped store.
type cachedSegment struct {
	From          string `json:"from_airport"`
	To            string `json:"to_airport"`
	Price         int    `json:"price"`
	Provider      string `json:"provider"`
	Date          string `json:"date"`
	FlightNumber  string `json:"flight_number,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

// fetchSegment resolves one (leg, date) fare: classify the leg to pick
// a provider, check the cache, and on a miss call the provider and
// store the result. Corrupt cache entries are logged and treated as
// misses. Concurrent identical fetches are collapsed to one provider
// call.
func (e *Engine) fetchSegment(ctx context.Context, from, to string, date time.Time) (*models.FareSegment, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	provider := e.cfg.Domestic
	ttl := e.cfg.DomesticTTL
	if airports.International(e.cfg.Classifier, from, to) {
		provider = e.cfg.International
		ttl = e.cfg.InternationalTTL
	}

	key := cache.Key(provider.Name(), map[string]string{
		"from": from,
		"to":   to,
		"date": dateutil.Format(date),
	})

	if seg, ok := e.cacheLookup(ctx, key); ok {
		return seg, nil
	}

	v, err, _ := e.flights.Do(key, func() (interface{}, error) {
		seg, err := provider.FetchCheapestOneWay(ctx, from, to, date)
		if err != nil {
			return nil, err
		}
		if seg != nil {
			e.cacheStore(ctx, key, *seg, ttl)
		}
		return seg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.FareSegment), nil
}

func (e *Engine) cacheLookup(ctx context.Context, key string) (*models.FareSegment, bool) {
	data, ok := e.cfg.Cache.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var stored cachedSegment
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("cache entry %s is unreadable, falling through to live fetch: %v", key, err)
		return nil, false
	}

	date, err := dateutil.Parse(stored.Date)
	if err != nil {
		log.Printf("cache entry %s has a bad date %q, falling through to live fetch: %v", key, stored.Date, err)
		return nil, false
	}

	seg := models.FareSegment{
		From:          stored.From,
		To:            stored.To,
		Price:         stored.Price,
		Provider:      stored.Provider,
		Date:          date,
		FlightNumber:  stored.FlightNumber,
		DepartureTime: stored.DepartureTime,
		ArrivalTime:   stored.ArrivalTime,
	}
	return &seg, true
}

func (e *Engine) cacheStore(ctx context.Context, key string, seg models.FareSegment, ttl time.Duration) {
	stored := cachedSegment{
		From:          seg.From,
		To:            seg.To,
		Price:         seg.Price,
		Provider:      seg.Provider,
		Date:          dateutil.Format(seg.Date),
		FlightNumber:  seg.FlightNumber,
		DepartureTime: seg.DepartureTime,
		ArrivalTime:   seg.ArrivalTime,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		log.Printf("could not serialize segment for cache key %s: %v", key, err)
		return
	}
	e.cfg.Cache.Set(ctx, key, data, ttl)
}
