package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingBox_Pad(t *testing.T) {
	tests := []struct {
		name        string
		bounds      BoundingBox
		fraction    float64
		expected    BoundingBox
		description string
	}{
		{
			name:        "ten percent padding",
			bounds:      BoundingBox{West: 0, South: 0, East: 10, North: 10},
			fraction:    0.1,
			expected:    BoundingBox{West: -1, South: -1, East: 11, North: 11},
			description: "Should expand each edge by a tenth of the span",
		},
		{
			name:        "zero fraction keeps bounds",
			bounds:      BoundingBox{West: 2.1, South: 41.3, East: 2.3, North: 41.5},
			fraction:    0,
			expected:    BoundingBox{West: 2.1, South: 41.3, East: 2.3, North: 41.5},
			description: "Should keep the bounds untouched with zero padding",
		},
		{
			name:        "latitude clamped at the poles",
			bounds:      BoundingBox{West: -30, South: -85, East: 30, North: 85},
			fraction:    0.5,
			expected:    BoundingBox{West: -60, South: -90, East: 60, North: 90},
			description: "Should clamp latitude to the valid range",
		},
		{
			name:        "longitude may cross the antimeridian",
			bounds:      BoundingBox{West: 170, South: -10, East: 178, North: 10},
			fraction:    0.5,
			expected:    BoundingBox{West: 166, South: -20, East: 182, North: 20},
			description: "Should leave longitude unclamped so the index can split the query",
		},
		{
			name:        "wrapped viewport pads outward",
			bounds:      BoundingBox{West: 179, South: -1, East: -179, North: 1},
			fraction:    0.1,
			expected:    BoundingBox{West: 178.8, South: -1.2, East: -178.8, North: 1.2},
			description: "Should derive the longitude span through the antimeridian instead of inverting the box",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.bounds.Pad(tt.fraction)
			assert.InDelta(t, tt.expected.West, result.West, 1e-9, tt.description)
			assert.InDelta(t, tt.expected.South, result.South, 1e-9, tt.description)
			assert.InDelta(t, tt.expected.East, result.East, 1e-9, tt.description)
			assert.InDelta(t, tt.expected.North, result.North, 1e-9, tt.description)
		})
	}
}

func TestBoundingBox_Contains(t *testing.T) {
	bounds := BoundingBox{West: 2.0, South: 41.0, East: 3.0, North: 42.0}

	tests := []struct {
		name     string
		lat      float64
		lon      float64
		expected bool
	}{
		{name: "inside", lat: 41.5, lon: 2.5, expected: true},
		{name: "on the edge", lat: 41.0, lon: 2.0, expected: true},
		{name: "north of bounds", lat: 42.5, lon: 2.5, expected: false},
		{name: "west of bounds", lat: 41.5, lon: 1.5, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bounds.Contains(tt.lat, tt.lon))
		})
	}
}

func TestViewport_Bounds(t *testing.T) {
	viewport := Viewport{West: 2.1, South: 41.3, East: 2.3, North: 41.5, Zoom: 12.7}

	bounds := viewport.Bounds()

	assert.Equal(t, BoundingBox{West: 2.1, South: 41.3, East: 2.3, North: 41.5}, bounds)
}

func TestViewport_CenterLat(t *testing.T) {
	viewport := Viewport{West: 2.1, South: 41.0, East: 2.3, North: 42.0, Zoom: 12}

	assert.InDelta(t, 41.5, viewport.CenterLat(), 1e-9)
}
