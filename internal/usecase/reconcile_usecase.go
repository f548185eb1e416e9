package usecase

import (
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/domain/render"
)

// ReconcileUseCase - use case сверки маркеров: приводит множество
// смонтированных маркеров к требуемому, не пересоздавая выжившие
type ReconcileUseCase struct {
	logger *zap.Logger
}

// NewReconcileUseCase - создание нового ReconcileUseCase
func NewReconcileUseCase(logger *zap.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{
		logger: logger,
	}
}

// Reconcile сравнивает требуемые маркеры с реестром живых и применяет
// разницу через sink. Возвращает новый реестр; prev не модифицируется.
//
// Маркер с известным ключом передвигается без пересоздания, новый ключ
// монтируется, исчезнувший демонтируется. Отказ монтирования не прерывает
// сверку: ключ останется несмонтированным и будет повторён на следующем
// проходе, пока остаётся видимым.
func (uc *ReconcileUseCase) Reconcile(
	prev *domain.MarkerRegistry,
	specs []render.MarkerSpec,
	sink render.MarkerSink,
) *domain.MarkerRegistry {
	if prev == nil {
		prev = domain.NewMarkerRegistry()
	}

	next := domain.NewMarkerRegistry()
	created, updated := 0, 0

	// Шаг 1: Обновляем выжившие маркеры и монтируем новые
	for _, spec := range specs {
		if next.Has(spec.Key) {
			continue
		}

		if handle, ok := prev.Get(spec.Key); ok {
			if err := sink.UpdatePosition(handle.Ref, spec.Position); err != nil {
				uc.logger.Warn("Failed to move marker",
					zap.String("key", spec.Key),
					zap.Error(err),
				)
			} else {
				handle.RenderedAt = spec.Position
				updated++
			}
			next.Put(handle)
			continue
		}

		ref, err := sink.Create(spec)
		if err != nil {
			uc.logger.Warn("Marker rejected by rendering engine, will retry",
				zap.String("key", spec.Key),
				zap.Error(err),
			)
			continue
		}
		next.Put(domain.MarkerHandle{
			Key:        spec.Key,
			Ref:        ref,
			RenderedAt: spec.Position,
		})
		created++
	}

	// Шаг 2: Демонтируем маркеры, пропавшие из результата
	removed := 0
	for _, key := range prev.Keys() {
		if next.Has(key) {
			continue
		}
		handle, _ := prev.Get(key)
		if err := sink.Remove(handle.Ref); err != nil {
			uc.logger.Warn("Failed to remove marker",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		removed++
	}

	uc.logger.Debug("Markers reconciled",
		zap.Int("created", created),
		zap.Int("updated", updated),
		zap.Int("removed", removed),
		zap.Int("alive", next.Len()),
	)

	return next
}
