package usecase

import (
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/domain/render"
)

// Число миниатюр в сетке кластерного маркера
const clusterGridLeaves = 4

// PhotoMapUseCase - use case карты фотографий: владеет текущим индексом,
// реестрами маркеров и состоянием триггера обзора, прогоняет конвейер
// "запрос - сверка - триггер" для актуальной видимой области.
//
// Не потокобезопасен: все методы должны вызываться из одной горутины
// сессии карты.
type PhotoMapUseCase struct {
	indexUC     *IndexUseCase
	viewportUC  *ViewportUseCase
	expansionUC *ExpansionUseCase
	reconcileUC *ReconcileUseCase
	proximityUC *ProximityUseCase

	engine       render.MapEngine
	sink         render.MarkerSink
	thumbnails   render.ThumbnailResolver
	presenter    render.OverviewPresenter
	onPhotoClick func(photo domain.Photo)
	logger       *zap.Logger

	index          *cluster.Index
	pointMarkers   *domain.MarkerRegistry
	clusterMarkers *domain.MarkerRegistry
	lastTriggerKey domain.TriggerKey
}

// NewPhotoMapUseCase - создание нового PhotoMapUseCase
func NewPhotoMapUseCase(
	indexUC *IndexUseCase,
	viewportUC *ViewportUseCase,
	expansionUC *ExpansionUseCase,
	reconcileUC *ReconcileUseCase,
	proximityUC *ProximityUseCase,
	engine render.MapEngine,
	sink render.MarkerSink,
	thumbnails render.ThumbnailResolver,
	presenter render.OverviewPresenter,
	onPhotoClick func(photo domain.Photo),
	logger *zap.Logger,
) *PhotoMapUseCase {
	return &PhotoMapUseCase{
		indexUC:        indexUC,
		viewportUC:     viewportUC,
		expansionUC:    expansionUC,
		reconcileUC:    reconcileUC,
		proximityUC:    proximityUC,
		engine:         engine,
		sink:           sink,
		thumbnails:     thumbnails,
		presenter:      presenter,
		onPhotoClick:   onPhotoClick,
		logger:         logger,
		pointMarkers:   domain.NewMarkerRegistry(),
		clusterMarkers: domain.NewMarkerRegistry(),
	}
}

// SetPhotos перестраивает индекс по новому каталогу и сразу перерисовывает
// маркеры для актуальной видимой области. Ключи фотографий переживают
// перестроение, поэтому их маркеры передвигаются без пересоздания.
func (uc *PhotoMapUseCase) SetPhotos(records []domain.CatalogRecord) {
	uc.index = uc.indexUC.Build(records)
	uc.RunViewport()
}

// RunViewport прогоняет конвейер для видимой области, которую движок
// отрисовки сообщает на момент вызова
func (uc *PhotoMapUseCase) RunViewport() {
	if uc.index == nil {
		uc.logger.Debug("Viewport pipeline skipped: no index yet")
		return
	}

	viewport := uc.engine.GetViewport()

	// Шаг 1: Запрос кластеров и фотографий для видимой области
	result, err := uc.viewportUC.Query(uc.index, viewport)
	if err != nil {
		uc.logger.Warn("Viewport query rejected", zap.Error(err))
		return
	}

	// Защита от устаревшего результата: если индекс успели заменить,
	// запрашиваем заново по актуальному
	if result.IndexID != uc.index.ID() {
		uc.logger.Warn("Stale viewport result discarded",
			zap.String("result_index_id", result.IndexID),
			zap.String("index_id", uc.index.ID()),
		)
		result, err = uc.viewportUC.Query(uc.index, viewport)
		if err != nil {
			uc.logger.Warn("Viewport query rejected", zap.Error(err))
			return
		}
	}

	// Шаг 2: Сверка маркеров, отдельно для фотографий и кластеров
	pointSpecs, clusterSpecs := uc.buildSpecs(result.Features)
	uc.pointMarkers = uc.reconcileUC.Reconcile(uc.pointMarkers, pointSpecs, uc.sink)
	uc.clusterMarkers = uc.reconcileUC.Reconcile(uc.clusterMarkers, clusterSpecs, uc.sink)

	// Шаг 3: Триггер обзора "фотографии рядом"
	uc.evaluateProximity(viewport, result.Features)

	uc.logger.Debug("Viewport pipeline completed",
		zap.Int("zoom", result.Zoom),
		zap.Int("point_markers", uc.pointMarkers.Len()),
		zap.Int("cluster_markers", uc.clusterMarkers.Len()),
	)
}

// buildSpecs собирает описания маркеров из элементов результата
func (uc *PhotoMapUseCase) buildSpecs(features []domain.Feature) ([]render.MarkerSpec, []render.MarkerSpec) {
	var pointSpecs, clusterSpecs []render.MarkerSpec

	for _, f := range features {
		if f.Cluster != nil {
			c := *f.Cluster
			clusterSpecs = append(clusterSpecs, render.MarkerSpec{
				Key:      domain.ClusterKey(c.ClusterID),
				Position: c.Centroid,
				Payload: render.MarkerPayload{
					Kind:              render.MarkerKindCluster,
					PointCount:        c.PointCount,
					GridThumbnailURLs: uc.clusterGrid(c.ClusterID),
					OnActivate: func() {
						uc.activateCluster(c)
					},
				},
			})
			continue
		}

		p := *f.Photo
		pointSpecs = append(pointSpecs, render.MarkerSpec{
			Key:      p.ID,
			Position: p.Position(),
			Payload: render.MarkerPayload{
				Kind:         render.MarkerKindPoint,
				Title:        p.Title,
				ThumbnailURL: uc.thumbnails.ThumbnailURL(p),
				OnActivate: func() {
					uc.activatePhoto(p)
				},
			},
		})
	}

	return pointSpecs, clusterSpecs
}

// clusterGrid возвращает миниатюры первых листьев кластера для сетки
// на маркере. При ошибке сетка остаётся пустой - маркер всё равно рисуется.
func (uc *PhotoMapUseCase) clusterGrid(clusterID int) []string {
	leaves, err := uc.expansionUC.Leaves(uc.index, clusterID, clusterGridLeaves, 0)
	if err != nil {
		uc.logger.Warn("Failed to resolve cluster grid",
			zap.Int("cluster_id", clusterID),
			zap.Error(err),
		)
		return nil
	}

	urls := make([]string, 0, len(leaves))
	for _, p := range leaves {
		urls = append(urls, uc.thumbnails.ThumbnailURL(p))
	}
	return urls
}

// activateCluster наезжает камерой на кластер до зума его раскрытия
func (uc *PhotoMapUseCase) activateCluster(c domain.Cluster) {
	zoom, err := uc.expansionUC.ExpansionZoom(uc.index, c.ClusterID)
	if err != nil {
		// Кластер мог исчезнуть после перестроения индекса
		uc.logger.Warn("Failed to resolve expansion zoom",
			zap.Int("cluster_id", c.ClusterID),
			zap.Error(err),
		)
		return
	}

	uc.logger.Debug("Cluster activated",
		zap.Int("cluster_id", c.ClusterID),
		zap.Int("point_count", c.PointCount),
		zap.Int("target_zoom", zoom),
	)
	uc.engine.EaseTo(c.Centroid, float64(zoom))
}

// activatePhoto передаёт клик по фотографии наружу
func (uc *PhotoMapUseCase) activatePhoto(p domain.Photo) {
	uc.logger.Debug("Photo activated", zap.String("photo_id", p.ID))
	if uc.onPhotoClick != nil {
		uc.onPhotoClick(p)
	}
}

// evaluateProximity показывает обзор "фотографии рядом", когда сцена
// этого заслуживает и обзор ещё не открыт
func (uc *PhotoMapUseCase) evaluateProximity(viewport domain.Viewport, features []domain.Feature) {
	if uc.presenter.IsOpen() {
		return
	}

	decision := uc.proximityUC.Evaluate(viewport, features, uc.lastTriggerKey)
	if !decision.ShouldOpen {
		return
	}

	// Ключ запоминаем до показа, чтобы отказ панели не зациклил триггер
	uc.lastTriggerKey = decision.TriggerKey
	if err := uc.presenter.Present(*decision.Overview); err != nil {
		uc.logger.Warn("Failed to present proximity overview", zap.Error(err))
		return
	}

	uc.logger.Info("Proximity overview opened",
		zap.Int("photos", len(decision.Overview.Photos)),
		zap.Float64("radius_km", decision.Overview.ApproxRadiusKm),
	)
}

// MarkerCounts возвращает число живых маркеров фотографий и кластеров
func (uc *PhotoMapUseCase) MarkerCounts() (points, clusters int) {
	return uc.pointMarkers.Len(), uc.clusterMarkers.Len()
}

// IndexID возвращает идентификатор текущего индекса или пустую строку
func (uc *PhotoMapUseCase) IndexID() string {
	if uc.index == nil {
		return ""
	}
	return uc.index.ID()
}
