package countrycode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToISO3(t *testing.T) {
	tests := []struct {
		alpha2 string
		want   string
	}{
		{"US", "USA"},
		{"FR", "FRA"},
		{"DE", "DEU"},
		{"BR", "BRA"},
		{"CN", "CHN"},
		{"IN", "IND"},
	}

	for _, tt := range tests {
		got, ok := ToISO3(tt.alpha2)
		assert.True(t, ok, "expected %s to map", tt.alpha2)
		assert.Equal(t, tt.want, got)
	}
}

func TestToISO3Unmapped(t *testing.T) {
	// Aggregate rows in the indicator feed carry pseudo codes that
	// must not map to a country.
	for _, alpha2 := range []string{"1A", "ZH", "XC", "ZZ", ""} {
		got, ok := ToISO3(alpha2)
		assert.False(t, ok, "expected %q to be unmapped", alpha2)
		assert.Empty(t, got)
	}
}

func TestToISO3RejectsLongInput(t *testing.T) {
	// Only alpha-2 input is accepted; full names and alpha-3 codes
	// are not resolved.
	_, ok := ToISO3("USA")
	assert.False(t, ok)

	_, ok = ToISO3("France")
	assert.False(t, ok)
}
