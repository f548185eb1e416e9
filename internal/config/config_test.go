package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photomap-engine/internal/config"
	pkgerrors "github.com/photomap-engine/internal/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 60.0, cfg.Cluster.Radius)
	assert.Equal(t, 512.0, cfg.Cluster.Extent)
	assert.Equal(t, 64, cfg.Cluster.NodeSize)
	assert.Equal(t, 0, cfg.Cluster.MinZoom)
	assert.Equal(t, 16, cfg.Cluster.MaxZoom)
	assert.Equal(t, 2, cfg.Cluster.MinPoints)

	assert.Equal(t, 0.1, cfg.Query.BoundsPadding)

	assert.Equal(t, 10.0, cfg.Proximity.WidthThresholdKm)
	assert.Equal(t, 4, cfg.Proximity.SampleSize)
	assert.Equal(t, 0.1, cfg.Proximity.RoundStepKm)

	assert.Equal(t, 200, cfg.Pipeline.DebounceMs)
	assert.Equal(t, "catalog.geojson", cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.Watch)
	assert.Equal(t, 250, cfg.Catalog.WatchDebounceMs)
	assert.Equal(t, "/media/photos/%s/thumb.jpg", cfg.Media.ThumbnailPattern)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CLUSTER_RADIUS", "80")
	t.Setenv("CLUSTER_MAX_ZOOM", "18")
	t.Setenv("QUERY_BOUNDS_PADDING", "0.25")
	t.Setenv("PROXIMITY_WIDTH_THRESHOLD_KM", "5")
	t.Setenv("PIPELINE_DEBOUNCE_MS", "350")
	t.Setenv("CATALOG_PATH", "/data/photos.geojson")
	t.Setenv("CATALOG_WATCH", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 80.0, cfg.Cluster.Radius)
	assert.Equal(t, 18, cfg.Cluster.MaxZoom)
	assert.Equal(t, 0.25, cfg.Query.BoundsPadding)
	assert.Equal(t, 5.0, cfg.Proximity.WidthThresholdKm)
	assert.Equal(t, 350, cfg.Pipeline.DebounceMs)
	assert.Equal(t, "/data/photos.geojson", cfg.Catalog.Path)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ZeroPaddingIsRespected(t *testing.T) {
	t.Setenv("QUERY_BOUNDS_PADDING", "0")
	t.Setenv("PIPELINE_DEBOUNCE_MS", "0")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Query.BoundsPadding)
	assert.Equal(t, 0, cfg.Pipeline.DebounceMs)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative cluster radius", key: "CLUSTER_RADIUS", value: "-5"},
		{name: "min points below two", key: "CLUSTER_MIN_POINTS", value: "1"},
		{name: "max zoom above ceiling", key: "CLUSTER_MAX_ZOOM", value: "35"},
		{name: "padding above one", key: "QUERY_BOUNDS_PADDING", value: "1.5"},
		{name: "negative proximity threshold", key: "PROXIMITY_WIDTH_THRESHOLD_KM", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, pkgerrors.ErrInvalidConfig))
		})
	}
}

func TestLoad_MinZoomAboveMaxZoom(t *testing.T) {
	t.Setenv("CLUSTER_MIN_ZOOM", "12")
	t.Setenv("CLUSTER_MAX_ZOOM", "8")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidConfig))
}

func TestConfig_DurationHelpers(t *testing.T) {
	t.Setenv("PIPELINE_DEBOUNCE_MS", "150")
	t.Setenv("CATALOG_WATCH_DEBOUNCE_MS", "400")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, cfg.GetPipelineDebounce())
	assert.Equal(t, 400*time.Millisecond, cfg.GetWatchDebounce())
}
