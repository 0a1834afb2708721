package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLimiter(t *testing.T) {
	t.Run("burst allows immediate requests", func(t *testing.T) {
		p := NewProviderLimiter(Config{RequestsPerSecond: 1, BurstSize: 3})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		for i := 0; i < 3; i++ {
			require.NoError(t, p.Wait(ctx, "amadeus"))
		}
	})

	t.Run("blocks once the burst is spent", func(t *testing.T) {
		p := NewProviderLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		require.NoError(t, p.Wait(ctx, "amadeus"))
		assert.Error(t, p.Wait(ctx, "amadeus"))
	})

	t.Run("providers get independent buckets", func(t *testing.T) {
		p := NewProviderLimiterWithDefaults()
		p.SetLimit("amadeus", 0.001, 1)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		require.NoError(t, p.Wait(ctx, "amadeus"))
		assert.NoError(t, p.Wait(ctx, "airlabs"), "default bucket unaffected")
	})
}
