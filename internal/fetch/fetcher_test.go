// internal/fetch/fetcher_test.go
package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-scout/internal/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{"plain number", "1299", 1299, false},
		{"dollar", "$54.23", 54.23, false},
		{"rupee with lakh grouping", "₹1,29,999.00", 129999, false},
		{"pound", "£51.77", 51.77, false},
		{"embedded text", "now only 499 instead of 999", 499, false},
		{"no digits", "call for price", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAvailability(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Availability
	}{
		{"In stock", models.AvailabilityInStock},
		{"", models.AvailabilityInStock},
		{"Only a few left - LIMITED", models.AvailabilityLimitedStock},
		{"low stock", models.AvailabilityLimitedStock},
		{"Pre-order now", models.AvailabilityPreOrder},
		{"preorder", models.AvailabilityPreOrder},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseAvailability(tt.input))
		})
	}
}
