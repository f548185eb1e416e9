package usecase

import (
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/pkg/utils"
)

// IndexUseCase - use case построения пространственного индекса из каталога
type IndexUseCase struct {
	opts   cluster.Options
	logger *zap.Logger
}

// NewIndexUseCase - создание нового IndexUseCase
func NewIndexUseCase(opts cluster.Options, logger *zap.Logger) *IndexUseCase {
	return &IndexUseCase{
		opts:   opts,
		logger: logger,
	}
}

// Build строит индекс по записям каталога. Записи без координат,
// с неконечными или выходящими за диапазон значениями отбрасываются.
func (uc *IndexUseCase) Build(records []domain.CatalogRecord) *cluster.Index {
	photos := make([]domain.Photo, 0, len(records))
	skipped := 0

	for _, r := range records {
		if !r.HasCoordinates() {
			skipped++
			continue
		}
		lat, lon := *r.Lat, *r.Lon
		if !utils.FiniteCoordinates(lat, lon) || !utils.ValidateCoordinates(lat, lon) {
			skipped++
			continue
		}

		photos = append(photos, domain.Photo{
			ID:    r.ID,
			Lon:   lon,
			Lat:   lat,
			Title: r.Title,
		})
	}

	ix := cluster.NewIndex(photos, uc.opts)

	stats := ix.Stats()
	uc.logger.Info("Spatial index built",
		zap.String("index_id", ix.ID()),
		zap.Int("points", stats.PointCount),
		zap.Int("skipped", skipped),
		zap.Int("levels", len(stats.Levels)),
		zap.Duration("build_time", stats.BuildDuration),
	)

	return ix
}
