package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogRecord_HasCoordinates(t *testing.T) {
	tests := []struct {
		name        string
		record      CatalogRecord
		expected    bool
		description string
	}{
		{
			name: "both coordinates present",
			record: CatalogRecord{
				ID:  "photo-1",
				Lat: floatPtr(41.3851),
				Lon: floatPtr(2.1734),
			},
			expected:    true,
			description: "Should return true when both coordinates are present",
		},
		{
			name: "only latitude",
			record: CatalogRecord{
				ID:  "photo-2",
				Lat: floatPtr(41.3851),
			},
			expected:    false,
			description: "Should return false when longitude is missing",
		},
		{
			name: "only longitude",
			record: CatalogRecord{
				ID:  "photo-3",
				Lon: floatPtr(2.1734),
			},
			expected:    false,
			description: "Should return false when latitude is missing",
		},
		{
			name: "no coordinates",
			record: CatalogRecord{
				ID:    "photo-4",
				Title: "Scanned slide without GPS",
			},
			expected:    false,
			description: "Should return false when both coordinates are missing",
		},
		{
			name: "zero coordinates are still coordinates",
			record: CatalogRecord{
				ID:  "photo-5",
				Lat: floatPtr(0),
				Lon: floatPtr(0),
			},
			expected:    true,
			description: "Should return true for the valid point at lat=0 lon=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.record.HasCoordinates()
			assert.Equal(t, tt.expected, result, tt.description)
		})
	}
}

func TestPhoto_Position(t *testing.T) {
	photo := Photo{ID: "photo-1", Lon: 2.1734, Lat: 41.3851, Title: "Sagrada Familia"}

	pos := photo.Position()

	assert.Equal(t, 2.1734, pos.Lon)
	assert.Equal(t, 41.3851, pos.Lat)
}

// Helper function to create float64 pointers
func floatPtr(f float64) *float64 {
	return &f
}
