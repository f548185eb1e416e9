package photomap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/domain/render"
	"github.com/photomap-engine/internal/domain/repository"
	"github.com/photomap-engine/internal/usecase"
	"github.com/photomap-engine/internal/worker"
)

// SessionWorker обслуживает одну сессию карты: загружает каталог, владеет
// конвейером "запрос - сверка - триггер" на своей горутине, дебаунсит
// перемещения камеры и перестраивает индекс при изменениях каталога
type SessionWorker struct {
	*worker.BaseWorker
	photoRepo    repository.PhotoRepository
	photoMapUC   *usecase.PhotoMapUseCase
	engine       render.MapEngine
	moveDebounce time.Duration
	watchCatalog bool

	sessionID string
	moveCh    chan struct{}
}

// NewSessionWorker создает новый SessionWorker
func NewSessionWorker(
	photoRepo repository.PhotoRepository,
	photoMapUC *usecase.PhotoMapUseCase,
	engine render.MapEngine,
	moveDebounce time.Duration,
	watchCatalog bool,
	logger *zap.Logger,
) *SessionWorker {
	return &SessionWorker{
		BaseWorker:   worker.NewBaseWorker("photomap-session", logger),
		photoRepo:    photoRepo,
		photoMapUC:   photoMapUC,
		engine:       engine,
		moveDebounce: moveDebounce,
		watchCatalog: watchCatalog,
		sessionID:    uuid.NewString(),
		moveCh:       make(chan struct{}, 1),
	}
}

// Start запускает воркер
func (w *SessionWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting photomap session worker",
		zap.String("session_id", w.sessionID),
		zap.Duration("move_debounce", w.moveDebounce),
		zap.Bool("watch_catalog", w.watchCatalog))

	// Шаг 1: Загружаем каталог и строим индекс
	records, err := w.photoRepo.LoadCatalog(ctx)
	if err != nil {
		logger.Error("Failed to load catalog", zap.Error(err))
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	w.photoMapUC.SetPhotos(records)

	// Шаг 2: Подписываемся на изменения каталога
	var updates <-chan domain.CatalogUpdate
	if w.watchCatalog {
		updates, err = w.photoRepo.WatchCatalog(ctx)
		if err != nil {
			// Сессия живёт со снапшотом каталога, это не фатально
			logger.Warn("Catalog watching unavailable", zap.Error(err))
			updates = nil
		}
	}

	// Шаг 3: Подписываемся на окончания перемещений камеры.
	// Канал на один элемент: серия сигналов схлопывается в один,
	// обрабатывается последнее состояние камеры.
	w.engine.SubscribeMoveEnd(func(domain.Viewport) {
		select {
		case w.moveCh <- struct{}{}:
		default:
		}
	})

	// Шаг 4: Цикл сессии
	var debounce *time.Timer
	var debounceC <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped", zap.String("session_id", w.sessionID))
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled", zap.String("session_id", w.sessionID))
			return ctx.Err()

		case update, ok := <-updates:
			if !ok {
				// Вотчер завершился, дальше работаем со снапшотом
				updates = nil
				continue
			}
			logger.Info("Catalog changed, rebuilding index",
				zap.Int("records", len(update.Records)))
			w.photoMapUC.SetPhotos(update.Records)

		case <-w.moveCh:
			// Дебаунс по заднему фронту: конвейер прогоняется после
			// паузы в движениях камеры
			if debounce == nil {
				debounce = time.NewTimer(w.moveDebounce)
				debounceC = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(w.moveDebounce)
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil
			w.photoMapUC.RunViewport()
		}
	}
}
