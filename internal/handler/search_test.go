package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flown/flown/internal/engine"
	"github.com/flown/flown/internal/models"
)

type fixedProvider struct {
	name  string
	fares map[string]int
}

func (p *fixedProvider) Name() string {
	return p.name
}

func (p *fixedProvider) FetchCheapestOneWay(ctx context.Context, origin, destination string, date time.Time) (*models.FareSegment, error) {
	price, ok := p.fares[origin+"-"+destination]
	if !ok {
		return nil, nil
	}
	return &models.FareSegment{
		From:     origin,
		To:       destination,
		Price:    price,
		Provider: p.name,
		Date:     date,
	}, nil
}

func newHandler() *SearchHandler {
	cfg := engine.DefaultConfig()
	cfg.International = &fixedProvider{
		name: "amadeus",
		fares: map[string]int{
			"ICN-KIX": 82000,
			"KIX-ICN": 85000,
		},
	}
	cfg.Domestic = &fixedProvider{name: "airlabs", fares: map[string]int{}}
	return NewSearchHandler(engine.New(cfg))
}

func post(t *testing.T, h *SearchHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Search(e.NewContext(req, rec)))
	return rec
}

func TestSearchHandler(t *testing.T) {
	t.Run("valid request returns an itinerary", func(t *testing.T) {
		rec := post(t, newHandler(), `{
			"departure": "icn",
			"destination": "kix",
			"start_date": "2025-03-01",
			"end_date": "2025-03-01"
		}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 167000, resp.TotalCost)
		assert.Equal(t, "ICN → KIX → ICN", resp.RoutePattern)
		assert.Len(t, resp.Segments, 2)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		rec := post(t, newHandler(), `{not json`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_request", resp.Error)
	})

	t.Run("validation failure is a 400", func(t *testing.T) {
		rec := post(t, newHandler(), `{
			"departure": "ICN",
			"destination": "",
			"start_date": "2025-03-01",
			"end_date": "2025-03-01"
		}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "validation_error", resp.Error)
	})
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
