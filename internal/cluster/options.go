package cluster

// Значения по умолчанию для параметров индекса
const (
	DefaultMinZoom   = 0
	DefaultMaxZoom   = 16
	DefaultRadius    = 60.0
	DefaultExtent    = 512.0
	DefaultNodeSize  = 64
	DefaultMinPoints = 2

	// Зум источника кластера кодируется пятью битами идентификатора
	maxZoomCeiling = 30
)

// Options задаёт параметры построения пространственного индекса
type Options struct {
	// MinZoom и MaxZoom ограничивают диапазон уровней кластеризации.
	// На зуме MaxZoom+1 индекс хранит исходные точки без кластеров.
	MinZoom int
	MaxZoom int

	// Radius - радиус слияния в экранных пикселях
	Radius float64

	// Extent - размер тайла в пикселях, относительно которого задан радиус
	Extent float64

	// NodeSize - размер листа kd-дерева
	NodeSize int

	// MinPoints - минимальное число точек для образования кластера
	MinPoints int
}

// withDefaults подставляет значения по умолчанию вместо нулевых
// и приводит параметры к допустимым диапазонам
func (o Options) withDefaults() Options {
	if o.MaxZoom <= 0 {
		o.MaxZoom = DefaultMaxZoom
	}
	if o.MaxZoom > maxZoomCeiling {
		o.MaxZoom = maxZoomCeiling
	}
	if o.MinZoom < 0 {
		o.MinZoom = DefaultMinZoom
	}
	if o.MinZoom > o.MaxZoom {
		o.MinZoom = o.MaxZoom
	}
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Extent <= 0 {
		o.Extent = DefaultExtent
	}
	if o.NodeSize <= 0 {
		o.NodeSize = DefaultNodeSize
	}
	if o.MinPoints < 2 {
		o.MinPoints = DefaultMinPoints
	}
	return o
}
