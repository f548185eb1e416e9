package domain

import (
	"fmt"
	"sort"
)

// MarkerRef - непрозрачная ссылка на смонтированный маркер, выданная движком отрисовки
type MarkerRef string

// MarkerHandle - живой маркер на карте: ключ элемента, ссылка движка
// и последняя отрисованная позиция
type MarkerHandle struct {
	Key        string    `json:"key"`
	Ref        MarkerRef `json:"ref"`
	RenderedAt Position  `json:"rendered_at"`
}

// ClusterKey возвращает ключ маркера для кластера с заданным идентификатором
func ClusterKey(clusterID int) string {
	return fmt.Sprintf("cluster:%d", clusterID)
}

// MarkerRegistry - реестр живых маркеров по ключу. Не потокобезопасен:
// им владеет контроллер карты, и все операции происходят в цикле сессии.
type MarkerRegistry struct {
	handles map[string]MarkerHandle
}

// NewMarkerRegistry создает пустой реестр маркеров
func NewMarkerRegistry() *MarkerRegistry {
	return &MarkerRegistry{
		handles: make(map[string]MarkerHandle),
	}
}

// Get возвращает маркер по ключу
func (r *MarkerRegistry) Get(key string) (MarkerHandle, bool) {
	h, ok := r.handles[key]
	return h, ok
}

// Has проверяет наличие маркера с заданным ключом
func (r *MarkerRegistry) Has(key string) bool {
	_, ok := r.handles[key]
	return ok
}

// Put сохраняет маркер, заменяя существующий с тем же ключом
func (r *MarkerRegistry) Put(h MarkerHandle) {
	r.handles[h.Key] = h
}

// Len возвращает количество живых маркеров
func (r *MarkerRegistry) Len() int {
	return len(r.handles)
}

// Keys возвращает ключи маркеров в отсортированном порядке
// для детерминированного обхода
func (r *MarkerRegistry) Keys() []string {
	keys := make([]string, 0, len(r.handles))
	for key := range r.handles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
