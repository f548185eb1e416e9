package usecase

import (
	"math"

	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/pkg/errors"
	"github.com/photomap-engine/internal/pkg/utils"
	"github.com/photomap-engine/internal/usecase/dto"
)

// ViewportUseCase - use case запроса видимой области к индексу
type ViewportUseCase struct {
	boundsPadding float64
	logger        *zap.Logger
}

// NewViewportUseCase - создание нового ViewportUseCase.
// boundsPadding - доля расширения границ запроса с каждой стороны.
func NewViewportUseCase(boundsPadding float64, logger *zap.Logger) *ViewportUseCase {
	return &ViewportUseCase{
		boundsPadding: boundsPadding,
		logger:        logger,
	}
}

// Query возвращает кластеры и отдельные фотографии для видимой области.
// Границы запроса расширяются на boundsPadding, чтобы маркеры у кромки
// экрана не пропадали при малых сдвигах камеры.
func (uc *ViewportUseCase) Query(ix *cluster.Index, viewport domain.Viewport) (*dto.ViewportResult, error) {
	// Валидация видимой области
	if err := validateViewport(viewport); err != nil {
		uc.logger.Warn("Rejected viewport query",
			zap.Float64("west", viewport.West),
			zap.Float64("east", viewport.East),
			zap.Float64("south", viewport.South),
			zap.Float64("north", viewport.North),
			zap.Float64("zoom", viewport.Zoom),
			zap.Error(err),
		)
		return nil, err
	}

	// Индекса ещё нет: каталог не загружен
	if ix == nil {
		return &dto.ViewportResult{Features: []domain.Feature{}}, nil
	}

	padded := viewport.Bounds().Pad(uc.boundsPadding)
	zoom := int(math.Floor(viewport.Zoom))

	features := ix.Search(padded, zoom)

	uc.logger.Debug("Viewport query completed",
		zap.String("index_id", ix.ID()),
		zap.Int("zoom", zoom),
		zap.Int("features", len(features)),
	)

	return &dto.ViewportResult{
		IndexID:  ix.ID(),
		Zoom:     zoom,
		Bounds:   padded,
		Features: features,
	}, nil
}

// validateViewport отклоняет области с неконечными координатами,
// перевёрнутыми широтами или неконечным зумом
func validateViewport(v domain.Viewport) error {
	if !utils.FiniteCoordinates(v.South, v.West) || !utils.FiniteCoordinates(v.North, v.East) {
		return errors.ErrInvalidViewport.WithDetails(map[string]interface{}{
			"reason": "non-finite bounds",
		})
	}
	if v.South > v.North || v.South < -90 || v.North > 90 {
		return errors.ErrInvalidViewport.WithDetails(map[string]interface{}{
			"reason": "latitude range is invalid",
			"south":  v.South,
			"north":  v.North,
		})
	}
	if math.IsNaN(v.Zoom) || math.IsInf(v.Zoom, 0) {
		return errors.ErrInvalidZoom
	}
	return nil
}
