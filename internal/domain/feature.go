package domain

// Cluster - агрегат близко расположенных фотографий на заданном зуме.
// Идентификатор стабилен для фиксированного набора фотографий и параметров
// индекса, но меняется при перестроении с другим набором.
type Cluster struct {
	ClusterID  int      `json:"cluster_id"`
	Centroid   Position `json:"centroid"`
	PointCount int      `json:"point_count"`
}

// Feature - элемент результата запроса видимой области: отдельная фотография
// либо кластер. Заполнено ровно одно из двух полей.
type Feature struct {
	Photo   *Photo   `json:"photo,omitempty"`
	Cluster *Cluster `json:"cluster,omitempty"`
}

// IsCluster сообщает, является ли элемент кластером
func (f Feature) IsCluster() bool {
	return f.Cluster != nil
}

// Key возвращает ключ маркера для элемента. Ключи фотографий и кластеров
// не пересекаются между собой.
func (f Feature) Key() string {
	if f.Cluster != nil {
		return ClusterKey(f.Cluster.ClusterID)
	}
	return f.Photo.ID
}

// Position возвращает отображаемую позицию элемента
func (f Feature) Position() Position {
	if f.Cluster != nil {
		return f.Cluster.Centroid
	}
	return f.Photo.Position()
}
