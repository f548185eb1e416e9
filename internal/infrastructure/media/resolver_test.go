package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/infrastructure/media"
)

func TestPatternResolver_ThumbnailURL(t *testing.T) {
	resolver := media.NewPatternResolver("https://cdn.example.com/thumbs/%s.jpg")

	url := resolver.ThumbnailURL(domain.Photo{ID: "photo-42"})

	assert.Equal(t, "https://cdn.example.com/thumbs/photo-42.jpg", url)
}

func TestPatternResolver_FallbackOnBadPattern(t *testing.T) {
	resolver := media.NewPatternResolver("no-placeholder-here")

	url := resolver.ThumbnailURL(domain.Photo{ID: "photo-42"})

	assert.Equal(t, "/media/photos/photo-42/thumb.jpg", url)
}
