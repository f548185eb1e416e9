package render

import (
	"github.com/photomap-engine/internal/domain"
)

// MarkerKind различает визуальные представления маркеров
type MarkerKind string

const (
	MarkerKindPoint   MarkerKind = "point"
	MarkerKindCluster MarkerKind = "cluster"
)

// MarkerPayload - данные для визуального наполнения маркера.
// OnActivate навешивается один раз при создании маркера и остаётся
// неизменным до его удаления.
type MarkerPayload struct {
	Kind              MarkerKind
	Title             string
	ThumbnailURL      string
	GridThumbnailURLs []string
	PointCount        int
	OnActivate        func()
}

// MarkerSpec описывает маркер, который должен присутствовать на карте
// после сверки
type MarkerSpec struct {
	Key      string
	Position domain.Position
	Payload  MarkerPayload
}

// MarkerSink - порт примитивов движка отрисовки для работы с маркерами
type MarkerSink interface {
	// Create монтирует новый маркер и возвращает его ссылку
	Create(spec MarkerSpec) (domain.MarkerRef, error)

	// UpdatePosition передвигает существующий маркер без пересоздания
	UpdatePosition(ref domain.MarkerRef, position domain.Position) error

	// Remove демонтирует маркер
	Remove(ref domain.MarkerRef) error
}
