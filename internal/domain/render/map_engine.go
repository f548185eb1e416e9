package render

import (
	"github.com/photomap-engine/internal/domain"
)

// MapEngine - порт движка отрисовки карты
type MapEngine interface {
	// GetViewport возвращает текущую видимую область
	GetViewport() domain.Viewport

	// EaseTo плавно перемещает камеру к центру с заданным зумом.
	// По завершении движок сообщает новую область через move-end.
	EaseTo(center domain.Position, zoom float64)

	// SubscribeMoveEnd регистрирует обработчик окончания движения камеры
	SubscribeMoveEnd(handler func(viewport domain.Viewport))
}
