package domain

// Position - географическая позиция в градусах
type Position struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// BoundingBox - прямоугольная область запроса. West может быть больше East,
// если область пересекает антимеридиан.
type BoundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Pad расширяет границы на долю от размаха по каждой оси.
// Широта ограничивается диапазоном [-90, 90], долгота не ограничивается:
// выход за antimeridian обрабатывается при выборке из индекса.
func (b BoundingBox) Pad(fraction float64) BoundingBox {
	lonSpan := b.East - b.West
	if lonSpan < 0 {
		// West больше East: размах долготы считается через антимеридиан
		lonSpan += 360
	}
	lonPad := lonSpan * fraction
	latPad := (b.North - b.South) * fraction

	padded := BoundingBox{
		West:  b.West - lonPad,
		South: b.South - latPad,
		East:  b.East + lonPad,
		North: b.North + latPad,
	}
	if padded.South < -90 {
		padded.South = -90
	}
	if padded.North > 90 {
		padded.North = 90
	}
	return padded
}

// Contains проверяет попадание координат в прямоугольник
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}

// Viewport - видимая область карты, которую сообщает движок отрисовки
type Viewport struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
	Zoom  float64 `json:"zoom"`
}

// Bounds возвращает границы видимой области без зума
func (v Viewport) Bounds() BoundingBox {
	return BoundingBox{West: v.West, South: v.South, East: v.East, North: v.North}
}

// CenterLat возвращает широту центра видимой области
func (v Viewport) CenterLat() float64 {
	return (v.South + v.North) / 2
}
