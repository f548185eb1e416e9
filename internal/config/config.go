package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/photomap-engine/internal/pkg/errors"
	"github.com/photomap-engine/internal/pkg/validator"
)

type Config struct {
	Cluster   ClusterConfig
	Query     QueryConfig
	Proximity ProximityConfig
	Pipeline  PipelineConfig
	Catalog   CatalogConfig
	Media     MediaConfig
	Log       LogConfig
}

type ClusterConfig struct {
	Radius    float64 `validate:"gt=0"`
	Extent    float64 `validate:"gt=0"`
	NodeSize  int     `validate:"gt=0"`
	MinZoom   int     `validate:"gte=0,ltefield=MaxZoom"`
	MaxZoom   int     `validate:"gt=0,lte=30"`
	MinPoints int     `validate:"gte=2"`
}

type QueryConfig struct {
	BoundsPadding float64 `validate:"gte=0,lte=1"`
}

type ProximityConfig struct {
	WidthThresholdKm float64 `validate:"gt=0"`
	SampleSize       int     `validate:"gt=0"`
	RoundStepKm      float64 `validate:"gt=0"`
}

type PipelineConfig struct {
	DebounceMs int `validate:"gte=0"`
}

type CatalogConfig struct {
	Path            string `validate:"required"`
	Watch           bool
	WatchDebounceMs int `validate:"gte=0"`
}

type MediaConfig struct {
	ThumbnailPattern string `validate:"required"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env опционален: конфигурация может приходить только из окружения
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Cluster: ClusterConfig{
			Radius:    viper.GetFloat64("CLUSTER_RADIUS"),
			Extent:    viper.GetFloat64("CLUSTER_EXTENT"),
			NodeSize:  viper.GetInt("CLUSTER_NODE_SIZE"),
			MinZoom:   viper.GetInt("CLUSTER_MIN_ZOOM"),
			MaxZoom:   viper.GetInt("CLUSTER_MAX_ZOOM"),
			MinPoints: viper.GetInt("CLUSTER_MIN_POINTS"),
		},
		Query: QueryConfig{
			BoundsPadding: viper.GetFloat64("QUERY_BOUNDS_PADDING"),
		},
		Proximity: ProximityConfig{
			WidthThresholdKm: viper.GetFloat64("PROXIMITY_WIDTH_THRESHOLD_KM"),
			SampleSize:       viper.GetInt("PROXIMITY_SAMPLE_SIZE"),
			RoundStepKm:      viper.GetFloat64("PROXIMITY_ROUND_STEP_KM"),
		},
		Pipeline: PipelineConfig{
			DebounceMs: viper.GetInt("PIPELINE_DEBOUNCE_MS"),
		},
		Catalog: CatalogConfig{
			Path:            viper.GetString("CATALOG_PATH"),
			Watch:           viper.GetBool("CATALOG_WATCH"),
			WatchDebounceMs: viper.GetInt("CATALOG_WATCH_DEBOUNCE_MS"),
		},
		Media: MediaConfig{
			ThumbnailPattern: viper.GetString("MEDIA_THUMBNAIL_PATTERN"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Cluster.Radius == 0 {
		cfg.Cluster.Radius = 60
	}
	if cfg.Cluster.Extent == 0 {
		cfg.Cluster.Extent = 512
	}
	if cfg.Cluster.NodeSize == 0 {
		cfg.Cluster.NodeSize = 64
	}
	if cfg.Cluster.MaxZoom == 0 {
		cfg.Cluster.MaxZoom = 16
	}
	if cfg.Cluster.MinPoints == 0 {
		cfg.Cluster.MinPoints = 2
	}
	if cfg.Proximity.WidthThresholdKm == 0 {
		cfg.Proximity.WidthThresholdKm = 10
	}
	if cfg.Proximity.SampleSize == 0 {
		cfg.Proximity.SampleSize = 4
	}
	if cfg.Proximity.RoundStepKm == 0 {
		cfg.Proximity.RoundStepKm = 0.1
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "catalog.geojson"
	}
	if cfg.Media.ThumbnailPattern == "" {
		cfg.Media.ThumbnailPattern = "/media/photos/%s/thumb.jpg"
	}

	// Для этих параметров ноль - осмысленное значение, по умолчанию
	// подставляем только при отсутствии ключа
	if !viper.IsSet("QUERY_BOUNDS_PADDING") {
		cfg.Query.BoundsPadding = 0.1
	}
	if !viper.IsSet("PIPELINE_DEBOUNCE_MS") {
		cfg.Pipeline.DebounceMs = 200
	}
	if !viper.IsSet("CATALOG_WATCH_DEBOUNCE_MS") {
		cfg.Catalog.WatchDebounceMs = 250
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, errors.ErrInvalidConfig.WithDetails(map[string]interface{}{
			"error": err.Error(),
		})
	}

	return cfg, nil
}

func (c *Config) GetPipelineDebounce() time.Duration {
	return time.Duration(c.Pipeline.DebounceMs) * time.Millisecond
}

func (c *Config) GetWatchDebounce() time.Duration {
	return time.Duration(c.Catalog.WatchDebounceMs) * time.Millisecond
}
