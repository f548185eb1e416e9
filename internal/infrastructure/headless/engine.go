package headless

import (
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/domain/render"
	"github.com/photomap-engine/internal/pkg/errors"
	"github.com/photomap-engine/internal/pkg/utils"
)

// Широта обрезается раньше краёв проекции, как в картографических движках
const maxViewportLat = 85.0

// Engine - безголовый движок отрисовки: полноценная реализация портов
// карты, маркеров и панели обзора без графического вывода. Используется
// симулятором сессии и тестами конвейера.
//
// Потокобезопасен; обработчики move-end вызываются вне внутренней
// блокировки.
type Engine struct {
	mu       sync.Mutex
	viewport domain.Viewport
	markers  map[domain.MarkerRef]*marker
	byKey    map[string]domain.MarkerRef
	moveEnd  []func(viewport domain.Viewport)

	overview     *domain.Overview
	overviewOpen bool

	created int
	updated int
	removed int

	logger *zap.Logger
}

type marker struct {
	key      string
	position domain.Position
	payload  render.MarkerPayload
}

// New создает движок с начальной видимой областью
func New(initial domain.Viewport, logger *zap.Logger) *Engine {
	return &Engine{
		viewport: initial,
		markers:  make(map[domain.MarkerRef]*marker),
		byKey:    make(map[string]domain.MarkerRef),
		logger:   logger,
	}
}

// GetViewport возвращает текущую видимую область
func (e *Engine) GetViewport() domain.Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// SetViewport выставляет видимую область напрямую, как если бы пользователь
// закончил жест, и сообщает об этом подписчикам move-end
func (e *Engine) SetViewport(viewport domain.Viewport) {
	e.mu.Lock()
	e.viewport = viewport
	handlers := append([]func(domain.Viewport){}, e.moveEnd...)
	e.mu.Unlock()

	for _, handler := range handlers {
		handler(viewport)
	}
}

// EaseTo перемещает камеру к центру с заданным зумом. Размах области
// выводится из зума: на каждый уровень приходится вдвое меньший охват.
func (e *Engine) EaseTo(center domain.Position, zoom float64) {
	lonSpan := 360.0 / math.Exp2(zoom)
	latSpan := lonSpan / 2

	viewport := domain.Viewport{
		West:  center.Lon - lonSpan/2,
		East:  center.Lon + lonSpan/2,
		South: clampLat(center.Lat - latSpan/2),
		North: clampLat(center.Lat + latSpan/2),
		Zoom:  zoom,
	}

	e.logger.Debug("Camera eased",
		zap.Float64("lon", center.Lon),
		zap.Float64("lat", center.Lat),
		zap.Float64("zoom", zoom),
	)
	e.SetViewport(viewport)
}

// SubscribeMoveEnd регистрирует обработчик окончания движения камеры
func (e *Engine) SubscribeMoveEnd(handler func(viewport domain.Viewport)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveEnd = append(e.moveEnd, handler)
}

// Create монтирует маркер. Маркеры с невалидными координатами или
// дублирующимся ключом отклоняются.
func (e *Engine) Create(spec render.MarkerSpec) (domain.MarkerRef, error) {
	if !utils.FiniteCoordinates(spec.Position.Lat, spec.Position.Lon) ||
		!utils.ValidateCoordinates(spec.Position.Lat, spec.Position.Lon) {
		return "", errors.ErrMarkerRejected.WithDetails(map[string]interface{}{
			"key": spec.Key,
			"lat": spec.Position.Lat,
			"lon": spec.Position.Lon,
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byKey[spec.Key]; exists {
		return "", errors.ErrMarkerRejected.WithDetails(map[string]interface{}{
			"key":    spec.Key,
			"reason": "duplicate key",
		})
	}

	ref := domain.MarkerRef(uuid.NewString())
	e.markers[ref] = &marker{
		key:      spec.Key,
		position: spec.Position,
		payload:  spec.Payload,
	}
	e.byKey[spec.Key] = ref
	e.created++

	return ref, nil
}

// UpdatePosition передвигает смонтированный маркер
func (e *Engine) UpdatePosition(ref domain.MarkerRef, position domain.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.markers[ref]
	if !ok {
		return errors.ErrMarkerNotFound.WithDetails(map[string]interface{}{
			"ref": string(ref),
		})
	}

	m.position = position
	e.updated++
	return nil
}

// Remove демонтирует маркер
func (e *Engine) Remove(ref domain.MarkerRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.markers[ref]
	if !ok {
		return errors.ErrMarkerNotFound.WithDetails(map[string]interface{}{
			"ref": string(ref),
		})
	}

	delete(e.byKey, m.key)
	delete(e.markers, ref)
	e.removed++
	return nil
}

// Present показывает панель обзора
func (e *Engine) Present(overview domain.Overview) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.overview = &overview
	e.overviewOpen = true
	return nil
}

// IsOpen сообщает, открыта ли панель обзора
func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.overviewOpen
}

// CloseOverview закрывает панель обзора, как это делает пользователь
func (e *Engine) CloseOverview() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.overviewOpen = false
}

// Overview возвращает последний показанный обзор
func (e *Engine) Overview() (domain.Overview, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.overview == nil {
		return domain.Overview{}, false
	}
	return *e.overview, true
}

// Activate имитирует клик пользователя по маркеру с заданным ключом
func (e *Engine) Activate(key string) error {
	e.mu.Lock()
	ref, ok := e.byKey[key]
	if !ok {
		e.mu.Unlock()
		return errors.ErrMarkerNotFound.WithDetails(map[string]interface{}{
			"key": key,
		})
	}
	onActivate := e.markers[ref].payload.OnActivate
	e.mu.Unlock()

	if onActivate != nil {
		onActivate()
	}
	return nil
}

// MarkerCount возвращает число смонтированных маркеров
func (e *Engine) MarkerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.markers)
}

// MarkerKeys возвращает ключи смонтированных маркеров в отсортированном порядке
func (e *Engine) MarkerKeys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]string, 0, len(e.byKey))
	for key := range e.byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MarkerRefFor возвращает ссылку маркера по ключу
func (e *Engine) MarkerRefFor(key string) (domain.MarkerRef, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref, ok := e.byKey[key]
	return ref, ok
}

// MarkerPosition возвращает текущую позицию маркера по ключу
func (e *Engine) MarkerPosition(key string) (domain.Position, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref, ok := e.byKey[key]
	if !ok {
		return domain.Position{}, false
	}
	return e.markers[ref].position, true
}

// MarkerPayload возвращает полезную нагрузку маркера по ключу
func (e *Engine) MarkerPayload(key string) (render.MarkerPayload, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref, ok := e.byKey[key]
	if !ok {
		return render.MarkerPayload{}, false
	}
	return e.markers[ref].payload, true
}

// Counts возвращает счётчики операций с маркерами за время жизни движка
func (e *Engine) Counts() (created, updated, removed int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.created, e.updated, e.removed
}

func clampLat(lat float64) float64 {
	if lat < -maxViewportLat {
		return -maxViewportLat
	}
	if lat > maxViewportLat {
		return maxViewportLat
	}
	return lat
}
