package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatKRW(t *testing.T) {
	cases := []struct {
		amount int
		want   string
	}{
		{0, "KRW 0"},
		{500, "KRW 500"},
		{1000, "KRW 1,000"},
		{167000, "KRW 167,000"},
		{1234567, "KRW 1,234,567"},
		{-82000, "-KRW 82,000"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatKRW(tc.amount))
	}
}

func TestConvert(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		got, ok := Convert(82000, "KRW", "KRW")
		require.True(t, ok)
		assert.Equal(t, 82000, got)
	})

	t.Run("krw to jpy", func(t *testing.T) {
		got, ok := Convert(100000, "KRW", "JPY")
		require.True(t, ok)
		assert.Equal(t, 11000, got)
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, ok := Convert(100, "KRW", "EUR")
		assert.False(t, ok)
		_, ok = Convert(100, "GBP", "KRW")
		assert.False(t, ok)
	})
}
