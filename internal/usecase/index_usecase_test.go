package usecase_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/usecase"
)

func TestIndexUseCase_Build(t *testing.T) {
	logger := zap.NewNop()
	uc := usecase.NewIndexUseCase(cluster.Options{}, logger)

	t.Run("skips records without usable coordinates", func(t *testing.T) {
		records := []domain.CatalogRecord{
			{ID: "placed-1", Lat: ptrFloat64(41.3851), Lon: ptrFloat64(2.1734), Title: "Barcelona"},
			{ID: "placed-2", Lat: ptrFloat64(48.8566), Lon: ptrFloat64(2.3522)},
			{ID: "unplaced", Title: "Scanned slide"},
			{ID: "nan-lat", Lat: ptrFloat64(math.NaN()), Lon: ptrFloat64(2.0)},
			{ID: "bad-lon", Lat: ptrFloat64(10.0), Lon: ptrFloat64(200.0)},
			{ID: "half-placed", Lat: ptrFloat64(10.0)},
		}

		ix := uc.Build(records)
		require.NotNil(t, ix)
		assert.Equal(t, 2, ix.PointCount())

		features := ix.Search(worldBounds(), ix.Options().MaxZoom+1)
		ids := make([]string, 0, len(features))
		for _, f := range features {
			require.NotNil(t, f.Photo)
			ids = append(ids, f.Photo.ID)
		}
		assert.ElementsMatch(t, []string{"placed-1", "placed-2"}, ids)
	})

	t.Run("empty catalog builds empty index", func(t *testing.T) {
		ix := uc.Build(nil)
		require.NotNil(t, ix)
		assert.Equal(t, 0, ix.PointCount())
		assert.Empty(t, ix.Search(worldBounds(), 0))
	})

	t.Run("rebuild produces a new index id", func(t *testing.T) {
		records := []domain.CatalogRecord{
			{ID: "placed-1", Lat: ptrFloat64(41.3851), Lon: ptrFloat64(2.1734)},
		}

		first := uc.Build(records)
		second := uc.Build(records)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func worldBounds() domain.BoundingBox {
	return domain.BoundingBox{West: -180, South: -85, East: 180, North: 85}
}

func ptrFloat64(v float64) *float64 {
	return &v
}
