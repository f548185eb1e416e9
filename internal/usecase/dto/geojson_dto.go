package dto

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/photomap-engine/internal/domain"
)

// ToFeatureCollection конвертирует элементы результата запроса в GeoJSON.
// Кластеры получают свойства cluster/cluster_id/point_count в соответствии
// с общепринятым форматом кластерных слоёв.
func ToFeatureCollection(features []domain.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, f := range features {
		if f.Cluster != nil {
			c := f.Cluster
			gf := geojson.NewFeature(orb.Point{c.Centroid.Lon, c.Centroid.Lat})
			gf.Properties["cluster"] = true
			gf.Properties["cluster_id"] = c.ClusterID
			gf.Properties["point_count"] = c.PointCount
			fc.Append(gf)
			continue
		}

		p := f.Photo
		gf := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		gf.Properties["id"] = p.ID
		if p.Title != "" {
			gf.Properties["title"] = p.Title
		}
		fc.Append(gf)
	}

	return fc
}
