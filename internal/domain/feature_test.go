package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeature_Key(t *testing.T) {
	tests := []struct {
		name        string
		feature     Feature
		expected    string
		description string
	}{
		{
			name: "photo feature uses photo id",
			feature: Feature{
				Photo: &Photo{ID: "photo-42", Lon: 2.17, Lat: 41.38},
			},
			expected:    "photo-42",
			description: "Should use the photo id as the marker key",
		},
		{
			name: "cluster feature uses prefixed cluster id",
			feature: Feature{
				Cluster: &Cluster{ClusterID: 1057, Centroid: Position{Lon: 2.2, Lat: 41.4}, PointCount: 12},
			},
			expected:    "cluster:1057",
			description: "Should prefix the cluster id so keys never collide with photo ids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.feature.Key(), tt.description)
		})
	}
}

func TestFeature_Position(t *testing.T) {
	photoFeature := Feature{Photo: &Photo{ID: "p1", Lon: 2.17, Lat: 41.38}}
	clusterFeature := Feature{Cluster: &Cluster{ClusterID: 99, Centroid: Position{Lon: -3.7, Lat: 40.4}, PointCount: 5}}

	assert.Equal(t, Position{Lon: 2.17, Lat: 41.38}, photoFeature.Position())
	assert.Equal(t, Position{Lon: -3.7, Lat: 40.4}, clusterFeature.Position())
}

func TestFeature_IsCluster(t *testing.T) {
	photoFeature := Feature{Photo: &Photo{ID: "p1"}}
	clusterFeature := Feature{Cluster: &Cluster{ClusterID: 1}}

	assert.False(t, photoFeature.IsCluster())
	assert.True(t, clusterFeature.IsCluster())
}

func TestClusterKey(t *testing.T) {
	assert.Equal(t, "cluster:0", ClusterKey(0))
	assert.Equal(t, "cluster:123456", ClusterKey(123456))
}
