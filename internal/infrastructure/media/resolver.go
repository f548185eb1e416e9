package media

import (
	"fmt"
	"strings"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/domain/render"
)

// Шаблон URL миниатюры по умолчанию
const DefaultThumbnailPattern = "/media/photos/%s/thumb.jpg"

type patternResolver struct {
	pattern string
}

// NewPatternResolver создает резолвер миниатюр, подставляющий идентификатор
// фотографии в шаблон. Шаблон без %s заменяется шаблоном по умолчанию.
func NewPatternResolver(pattern string) render.ThumbnailResolver {
	if !strings.Contains(pattern, "%s") {
		pattern = DefaultThumbnailPattern
	}
	return &patternResolver{pattern: pattern}
}

func (r *patternResolver) ThumbnailURL(photo domain.Photo) string {
	return fmt.Sprintf(r.pattern, photo.ID)
}
