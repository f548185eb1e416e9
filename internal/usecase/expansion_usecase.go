package usecase

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/pkg/errors"
)

// Размер кэшей раскрытия по умолчанию
const DefaultExpansionCacheSize = 256

// ExpansionUseCase - use case раскрытия кластеров: листья и зум раскрытия.
// Оба запроса мемоизируются в LRU-кэшах; ключ включает идентификатор
// индекса, поэтому после перестроения старые записи не переиспользуются.
type ExpansionUseCase struct {
	leaves *lru.Cache[string, []domain.Photo]
	zooms  *lru.Cache[string, int]
	logger *zap.Logger
}

// NewExpansionUseCase - создание нового ExpansionUseCase
func NewExpansionUseCase(cacheSize int, logger *zap.Logger) (*ExpansionUseCase, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultExpansionCacheSize
	}

	leaves, err := lru.New[string, []domain.Photo](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaves cache: %w", err)
	}
	zooms, err := lru.New[string, int](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create zooms cache: %w", err)
	}

	return &ExpansionUseCase{
		leaves: leaves,
		zooms:  zooms,
		logger: logger,
	}, nil
}

// Leaves возвращает фотографии кластера с пагинацией
func (uc *ExpansionUseCase) Leaves(ix *cluster.Index, clusterID, limit, offset int) ([]domain.Photo, error) {
	if ix == nil {
		return nil, errors.ErrClusterNotFound.WithDetails(map[string]interface{}{
			"cluster_id": clusterID,
		})
	}

	key := fmt.Sprintf("%s:%d:%d:%d", ix.ID(), clusterID, limit, offset)
	if cached, ok := uc.leaves.Get(key); ok {
		return cached, nil
	}

	photos, err := ix.Leaves(clusterID, limit, offset)
	if err != nil {
		return nil, err
	}

	uc.leaves.Add(key, photos)
	uc.logger.Debug("Cluster leaves resolved",
		zap.Int("cluster_id", clusterID),
		zap.Int("count", len(photos)),
	)
	return photos, nil
}

// ExpansionZoom возвращает зум, на котором кластер распадается
func (uc *ExpansionUseCase) ExpansionZoom(ix *cluster.Index, clusterID int) (int, error) {
	if ix == nil {
		return 0, errors.ErrClusterNotFound.WithDetails(map[string]interface{}{
			"cluster_id": clusterID,
		})
	}

	key := fmt.Sprintf("%s:%d", ix.ID(), clusterID)
	if cached, ok := uc.zooms.Get(key); ok {
		return cached, nil
	}

	zoom, err := ix.ExpansionZoom(clusterID)
	if err != nil {
		return 0, err
	}

	uc.zooms.Add(key, zoom)
	return zoom, nil
}
