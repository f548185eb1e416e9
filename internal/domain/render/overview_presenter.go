package render

import (
	"github.com/photomap-engine/internal/domain"
)

// OverviewPresenter - порт панели обзора "фотографии рядом"
type OverviewPresenter interface {
	// Present показывает обзор с переданным набором фотографий
	Present(overview domain.Overview) error

	// IsOpen сообщает, открыта ли панель обзора сейчас
	IsOpen() bool
}
