package repository

import (
	"context"

	"github.com/photomap-engine/internal/domain"
)

// PhotoRepository - интерфейс доступа к каталогу фотографий CMS
type PhotoRepository interface {
	// LoadCatalog загружает полный каталог фотографий
	LoadCatalog(ctx context.Context) ([]domain.CatalogRecord, error)

	// WatchCatalog подписывается на изменения каталога. Канал закрывается
	// при отмене контекста.
	WatchCatalog(ctx context.Context) (<-chan domain.CatalogUpdate, error)
}
