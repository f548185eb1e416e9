package dto

import (
	"github.com/photomap-engine/internal/domain"
)

// ViewportResult - результат запроса видимой области к пространственному
// индексу. IndexID фиксирует, каким построением индекса получен результат.
type ViewportResult struct {
	IndexID  string             `json:"index_id"`
	Zoom     int                `json:"zoom"`
	Bounds   domain.BoundingBox `json:"bounds"`
	Features []domain.Feature   `json:"features"`
}

// PointPhotos возвращает фотографии, видимые отдельными маркерами
func (r *ViewportResult) PointPhotos() []domain.Photo {
	photos := make([]domain.Photo, 0, len(r.Features))
	for _, f := range r.Features {
		if f.Photo != nil {
			photos = append(photos, *f.Photo)
		}
	}
	return photos
}

// ClusterCount возвращает число кластеров в результате
func (r *ViewportResult) ClusterCount() int {
	count := 0
	for _, f := range r.Features {
		if f.Cluster != nil {
			count++
		}
	}
	return count
}
