package usecase_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/cluster"
	"github.com/photomap-engine/internal/domain"
	pkgerrors "github.com/photomap-engine/internal/pkg/errors"
	"github.com/photomap-engine/internal/usecase"
)

func TestExpansionUseCase_Leaves(t *testing.T) {
	logger := zap.NewNop()
	ix, clusterID := newColocatedCluster(t, 5)

	uc, err := usecase.NewExpansionUseCase(0, logger)
	require.NoError(t, err)

	t.Run("paginates cluster photos", func(t *testing.T) {
		var seen []string
		for offset := 0; offset < 5; offset += 2 {
			page, err := uc.Leaves(ix, clusterID, 2, offset)
			require.NoError(t, err)
			seen = append(seen, photoIDs(page)...)
		}

		assert.ElementsMatch(t, []string{"p-0", "p-1", "p-2", "p-3", "p-4"}, seen)
	})

	t.Run("repeated call returns the memoized slice", func(t *testing.T) {
		first, err := uc.Leaves(ix, clusterID, 3, 0)
		require.NoError(t, err)
		second, err := uc.Leaves(ix, clusterID, 3, 0)
		require.NoError(t, err)

		require.Len(t, second, 3)
		assert.Same(t, &first[0], &second[0])
	})

	t.Run("unknown cluster id", func(t *testing.T) {
		_, err := uc.Leaves(ix, 999999999, 10, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pkgerrors.ErrClusterNotFound))
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := uc.Leaves(nil, clusterID, 10, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pkgerrors.ErrClusterNotFound))
	})
}

func TestExpansionUseCase_ExpansionZoom(t *testing.T) {
	logger := zap.NewNop()

	uc, err := usecase.NewExpansionUseCase(16, logger)
	require.NoError(t, err)

	t.Run("colocated photos never split", func(t *testing.T) {
		ix, clusterID := newColocatedCluster(t, 4)

		zoom, err := uc.ExpansionZoom(ix, clusterID)
		require.NoError(t, err)
		assert.Equal(t, ix.Options().MaxZoom+1, zoom)
	})

	t.Run("separable pair resolves its split zoom", func(t *testing.T) {
		// Пара в полградуса долготы расходится на зуме 7
		photos := []domain.Photo{
			{ID: "west", Lon: 10.0, Lat: 0},
			{ID: "east", Lon: 10.5, Lat: 0},
		}
		ix := cluster.NewIndex(photos, cluster.Options{})

		region := domain.BoundingBox{West: 9, South: -1, East: 11.5, North: 1}
		features := ix.Search(region, 0)
		require.Len(t, features, 1)
		require.NotNil(t, features[0].Cluster)

		zoom, err := uc.ExpansionZoom(ix, features[0].Cluster.ClusterID)
		require.NoError(t, err)
		assert.Equal(t, 7, zoom)
		assert.Len(t, ix.Search(region, zoom), 2)
		assert.Len(t, ix.Search(region, zoom-1), 1)
	})

	t.Run("unknown cluster id", func(t *testing.T) {
		ix, _ := newColocatedCluster(t, 4)

		_, err := uc.ExpansionZoom(ix, 999999999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pkgerrors.ErrClusterNotFound))
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := uc.ExpansionZoom(nil, 42)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pkgerrors.ErrClusterNotFound))
	})
}

// newColocatedCluster строит индекс из count фотографий в одной точке
// и возвращает идентификатор единственного кластера на нулевом зуме
func newColocatedCluster(t *testing.T, count int) (*cluster.Index, int) {
	t.Helper()

	photos := make([]domain.Photo, 0, count)
	for i := 0; i < count; i++ {
		photos = append(photos, domain.Photo{
			ID:  fmt.Sprintf("p-%d", i),
			Lon: 2.1734,
			Lat: 41.3851,
		})
	}
	ix := cluster.NewIndex(photos, cluster.Options{})

	features := ix.Search(worldBounds(), 0)
	require.Len(t, features, 1)
	require.NotNil(t, features[0].Cluster)
	require.Equal(t, count, features[0].Cluster.PointCount)

	return ix, features[0].Cluster.ClusterID
}
