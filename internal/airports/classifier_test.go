package airports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetClassifier(t *testing.T) {
	c := NewDefaultClassifier()

	assert.Equal(t, RegionHome, c.Classify("ICN"))
	assert.Equal(t, RegionHome, c.Classify("icn"))
	assert.Equal(t, RegionDestination, c.Classify("KIX"))
	assert.Equal(t, RegionUnknown, c.Classify("LAX"))
}

func TestInternational(t *testing.T) {
	c := NewDefaultClassifier()

	cases := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"home to destination", "ICN", "KIX", true},
		{"destination to home", "CTS", "GMP", true},
		{"inside destination country", "KIX", "CTS", false},
		{"inside home country", "ICN", "PUS", false},
		{"unknown endpoint counts as domestic", "ICN", "LAX", false},
		{"both unknown", "LAX", "JFK", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, International(c, tc.from, tc.to))
		})
	}
}

func TestClassifierSetsAreCopies(t *testing.T) {
	c := NewDefaultClassifier()

	home := c.HomeSet()
	home["XXX"] = true

	assert.Equal(t, RegionUnknown, c.Classify("XXX"))
	assert.Len(t, c.HomeSet(), len(DefaultHomeAirports))
}
