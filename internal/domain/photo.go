package domain

import "time"

// Photo - геопривязанная фотография, попавшая в пространственный индекс.
// Создаётся только из записей каталога с обеими конечными координатами.
type Photo struct {
	ID    string  `json:"id"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Title string  `json:"title,omitempty"`
}

// Position возвращает координаты фотографии
func (p Photo) Position() Position {
	return Position{Lon: p.Lon, Lat: p.Lat}
}

// CatalogRecord - запись каталога в том виде, в каком её отдаёт слой данных CMS.
// Координаты опциональны: не все фотографии геопривязаны.
type CatalogRecord struct {
	ID    string   `json:"id"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
	Title string   `json:"title,omitempty"`
}

// HasCoordinates проверяет наличие обеих координат
func (r *CatalogRecord) HasCoordinates() bool {
	return r.Lat != nil && r.Lon != nil
}

// CatalogUpdate - событие изменения каталога фотографий
type CatalogUpdate struct {
	Records    []CatalogRecord
	ReloadedAt time.Time
}
