package render

import (
	"github.com/photomap-engine/internal/domain"
)

// ThumbnailResolver строит URL миниатюры для фотографии
type ThumbnailResolver interface {
	ThumbnailURL(photo domain.Photo) string
}
