package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/config"
	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/infrastructure/headless"
	"github.com/photomap-engine/internal/infrastructure/media"
	"github.com/photomap-engine/internal/pkg/logger"
	"github.com/photomap-engine/internal/repository/geojsonfile"
	"github.com/photomap-engine/internal/usecase"
	"github.com/photomap-engine/internal/worker"
	"github.com/photomap-engine/internal/worker/photomap"
)

// tourStop - шаг сценария осмотра: имя сцены и область, в которой
// пользователь остановил камеру
type tourStop struct {
	name     string
	viewport domain.Viewport
}

// Сценарий осмотра повторяет типичную сессию: мировой обзор, наезд
// на город, тесная сцена, переезд в другой город и возврат к миру.
// Города соответствуют каталогу из scripts/gen_catalog.go.
var tour = []tourStop{
	{name: "world overview", viewport: domain.Viewport{West: -180, South: -85, East: 180, North: 85, Zoom: 1}},
	{name: "europe", viewport: domain.Viewport{West: -12, South: 35, East: 26, North: 56, Zoom: 4}},
	{name: "barcelona", viewport: domain.Viewport{West: 2.04, South: 41.30, East: 2.31, North: 41.47, Zoom: 11}},
	{name: "barcelona close-up", viewport: domain.Viewport{West: 2.160, South: 41.376, East: 2.187, North: 41.394, Zoom: 14}},
	{name: "paris", viewport: domain.Viewport{West: 2.22, South: 48.80, East: 2.48, North: 48.91, Zoom: 11}},
	{name: "tokyo", viewport: domain.Viewport{West: 139.56, South: 35.60, East: 139.83, North: 35.78, Zoom: 11}},
	{name: "world again", viewport: domain.Viewport{West: -180, South: -85, East: 180, North: 85, Zoom: 1}},
}

func main() {
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

	log.Info("Starting Photomap Session Simulator")
	log.Info("Configuration loaded",
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Bool("catalog_watch", cfg.Catalog.Watch),
		zap.Float64("cluster_radius", cfg.Cluster.Radius),
		zap.Duration("pipeline_debounce", cfg.GetPipelineDebounce()))

	// 3. Photo catalog repository
	photoRepo := geojsonfile.NewPhotoRepository(cfg.Catalog.Path, cfg.GetWatchDebounce(), log)

	// 4. Headless map engine: viewport, markers and the overview panel
	engine := headless.New(tour[0].viewport, log)

	// 5. Initialize use cases
	expansionUC, err := usecase.NewExpansionUseCase(0, log)
	if err != nil {
		log.Fatal("Failed to initialize expansion use case", zap.Error(err))
	}

	photoMapUC := usecase.NewPhotoMapUseCase(
		usecase.NewIndexUseCase(cluster.Options{
			MinZoom:   cfg.Cluster.MinZoom,
			MaxZoom:   cfg.Cluster.MaxZoom,
			Radius:    cfg.Cluster.Radius,
			Extent:    cfg.Cluster.Extent,
			NodeSize:  cfg.Cluster.NodeSize,
			MinPoints: cfg.Cluster.MinPoints,
		}, log),
		usecase.NewViewportUseCase(cfg.Query.BoundsPadding, log),
		expansionUC,
		usecase.NewReconcileUseCase(log),
		usecase.NewProximityUseCase(
			cfg.Proximity.WidthThresholdKm,
			cfg.Proximity.SampleSize,
			cfg.Proximity.RoundStepKm,
			log,
		),
		engine,
		engine,
		media.NewPatternResolver(cfg.Media.ThumbnailPattern),
		engine,
		func(p domain.Photo) {
			// Заглушка детальной карточки фотографии из CMS
			log.Info("Photo opened in detail view",
				zap.String("photo_id", p.ID),
				zap.String("title", p.Title))
		},
		log,
	)

	log.Info("Use cases initialized")

	// 6. Create worker manager and register the session worker
	sessionWorker := photomap.NewSessionWorker(
		photoRepo,
		photoMapUC,
		engine,
		cfg.GetPipelineDebounce(),
		cfg.Catalog.Watch,
		log,
	)

	workerManager := worker.NewManager(log)
	workerManager.Register(sessionWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. Replay the viewport tour against the running session
	tourDone := make(chan struct{})
	go func() {
		defer close(tourDone)
		runTour(engine, cfg.GetPipelineDebounce(), log)
	}()

	// 8. Graceful shutdown on signal or tour end
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-tourDone:
		log.Info("Viewport tour finished")
	}

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Simulator shutdown complete")
}

// runTour прогоняет сценарий осмотра: после каждого шага ждёт, пока
// дебаунс конвейера отработает, и сводит состояние сцены в лог
func runTour(engine *headless.Engine, debounce time.Duration, log *zap.Logger) {
	// Пауза шага: дебаунс конвейера плюс запас на сам прогон
	pause := debounce + 300*time.Millisecond

	// Даём сессии смонтировать маркеры начальной области
	time.Sleep(pause)

	for _, stop := range tour {
		engine.SetViewport(stop.viewport)
		time.Sleep(pause)

		created, updated, removed := engine.Counts()
		log.Info("Tour stop rendered",
			zap.String("stop", stop.name),
			zap.Float64("zoom", stop.viewport.Zoom),
			zap.Int("markers", engine.MarkerCount()),
			zap.Int("created_total", created),
			zap.Int("updated_total", updated),
			zap.Int("removed_total", removed),
			zap.Bool("overview_open", engine.IsOpen()))

		if overview, ok := engine.Overview(); ok && engine.IsOpen() {
			log.Info("Proximity overview shown",
				zap.String("stop", stop.name),
				zap.Int("photos", len(overview.Photos)),
				zap.Float64("approx_radius_km", overview.ApproxRadiusKm))

			// Пользователь посмотрел подборку и закрыл панель
			engine.CloseOverview()
		}
	}
}
