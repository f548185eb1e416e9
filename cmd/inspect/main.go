package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/config"
	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/pkg/logger"
	"github.com/photomap-engine/internal/pkg/validator"
	"github.com/photomap-engine/internal/repository/geojsonfile"
	"github.com/photomap-engine/internal/usecase"
	"github.com/photomap-engine/internal/usecase/dto"
)

// queryParams - параметры запроса видимой области, пришедшие из флагов
type queryParams struct {
	West  float64 `validate:"gte=-360,lte=360"`
	South float64 `validate:"gte=-90,lte=90"`
	East  float64 `validate:"gte=-360,lte=360"`
	North float64 `validate:"gte=-90,lte=90,gtefield=South"`
	Zoom  float64 `validate:"gte=0,lte=31"`
}

func main() {
	catalogPath := flag.String("catalog", "", "catalog path (overrides CATALOG_PATH)")
	west := flag.Float64("west", -180, "west bound of the viewport")
	south := flag.Float64("south", -85, "south bound of the viewport")
	east := flag.Float64("east", 180, "east bound of the viewport")
	north := flag.Float64("north", 85, "north bound of the viewport")
	zoom := flag.Float64("zoom", 3, "viewport zoom level")
	outPath := flag.String("out", "", "write the GeoJSON result to a file instead of stdout")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	// 3. Validate query parameters
	params := queryParams{
		West:  *west,
		South: *south,
		East:  *east,
		North: *north,
		Zoom:  *zoom,
	}
	if err := validator.Validate(params); err != nil {
		log.Fatal("Invalid query parameters", zap.Error(err))
	}

	// 4. Load the photo catalog
	path := cfg.Catalog.Path
	if *catalogPath != "" {
		path = *catalogPath
	}

	photoRepo := geojsonfile.NewPhotoRepository(path, cfg.GetWatchDebounce(), log)
	records, err := photoRepo.LoadCatalog(context.Background())
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}

	// 5. Build the spatial index
	indexUC := usecase.NewIndexUseCase(cluster.Options{
		MinZoom:   cfg.Cluster.MinZoom,
		MaxZoom:   cfg.Cluster.MaxZoom,
		Radius:    cfg.Cluster.Radius,
		Extent:    cfg.Cluster.Extent,
		NodeSize:  cfg.Cluster.NodeSize,
		MinPoints: cfg.Cluster.MinPoints,
	}, log)
	ix := indexUC.Build(records)

	// 6. Run the viewport query
	viewportUC := usecase.NewViewportUseCase(cfg.Query.BoundsPadding, log)
	result, err := viewportUC.Query(ix, domain.Viewport{
		West:  params.West,
		South: params.South,
		East:  params.East,
		North: params.North,
		Zoom:  params.Zoom,
	})
	if err != nil {
		log.Fatal("Viewport query failed", zap.Error(err))
	}

	log.Info("Viewport query completed",
		zap.String("index_id", result.IndexID),
		zap.Int("zoom", result.Zoom),
		zap.Int("features", len(result.Features)),
		zap.Int("clusters", result.ClusterCount()),
		zap.Int("points", len(result.PointPhotos())))

	// 7. Print the result as a GeoJSON feature collection
	data, err := json.MarshalIndent(dto.ToFeatureCollection(result.Features), "", "  ")
	if err != nil {
		log.Fatal("Failed to marshal feature collection", zap.Error(err))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, data, 0o644); err != nil {
			log.Fatal("Failed to write result file",
				zap.String("path", *outPath),
				zap.Error(err))
		}
		log.Info("Result written", zap.String("path", *outPath))
		return
	}

	fmt.Println(string(data))
}
