package cluster

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/pkg/errors"
)

// Запись ещё не поглощена ни одним кластером
const zoomInfinity = math.MaxInt32

// Число листьев, возвращаемых Leaves по умолчанию
const defaultLeavesLimit = 10

// entry - запись уровня индекса: исходная точка или центроид кластера
// в мировых координатах
type entry struct {
	x float64
	y float64

	// zoom - зум, на котором запись была обработана при построении
	zoom int

	// source - индекс фотографии для исходной точки, иначе id кластера
	source int

	// parent - id кластера, поглотившего запись, или -1
	parent int

	// numPoints - суммарное число фотографий под записью
	numPoints int
}

// LevelStats - размер одного уровня индекса
type LevelStats struct {
	Zoom    int `json:"zoom"`
	Entries int `json:"entries"`
}

// IndexStats - сводка построенного индекса
type IndexStats struct {
	PointCount    int           `json:"point_count"`
	Levels        []LevelStats  `json:"levels"`
	BuildDuration time.Duration `json:"build_duration"`
}

// Index - неизменяемый многоуровневый кластерный индекс фотографий.
// Для каждого зума от MinZoom до MaxZoom+1 хранится kd-дерево, где уровень
// MaxZoom+1 содержит исходные точки, а каждый уровень ниже получается
// жадным слиянием записей предыдущего в радиусе, зависящем от зума.
// После построения индекс безопасен для конкурентного чтения.
type Index struct {
	opts   Options
	id     string
	photos []domain.Photo
	trees  []*kdtree
	stats  IndexStats
}

// NewIndex строит индекс по набору фотографий. Фотографии должны иметь
// конечные координаты; фильтрация записей каталога происходит выше.
func NewIndex(photos []domain.Photo, opts Options) *Index {
	start := time.Now()
	opts = opts.withDefaults()

	// Канонизируем порядок входа: одно и то же множество фотографий даёт
	// одинаковые id кластеров независимо от порядка в каталоге
	sorted := make([]domain.Photo, len(photos))
	copy(sorted, photos)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	ix := &Index{
		opts:   opts,
		id:     uuid.NewString(),
		photos: sorted,
		trees:  make([]*kdtree, opts.MaxZoom+2),
	}

	entries := make([]entry, len(sorted))
	for i, p := range sorted {
		entries[i] = entry{
			x:         lngX(p.Lon),
			y:         latY(p.Lat),
			zoom:      zoomInfinity,
			source:    i,
			parent:    -1,
			numPoints: 1,
		}
	}

	// Дерево зума MaxZoom+1 хранит исходные точки, каждый следующий
	// уровень вниз строится кластеризацией предыдущего
	ix.trees[opts.MaxZoom+1] = newKDTree(entries, opts.NodeSize)
	for z := opts.MaxZoom; z >= opts.MinZoom; z-- {
		next := ix.clusterLevel(ix.trees[z+1], z)
		ix.trees[z] = newKDTree(next, opts.NodeSize)
	}

	ix.stats = IndexStats{
		PointCount:    len(sorted),
		BuildDuration: time.Since(start),
	}
	for z := opts.MinZoom; z <= opts.MaxZoom+1; z++ {
		ix.stats.Levels = append(ix.stats.Levels, LevelStats{Zoom: z, Entries: len(ix.trees[z].entries)})
	}

	return ix
}

// clusterLevel строит записи уровня zoom жадным слиянием записей дерева
// уровня zoom+1. Поглощённые записи помечаются в родительском дереве.
func (ix *Index) clusterLevel(t *kdtree, zoom int) []entry {
	r := ix.opts.Radius / (ix.opts.Extent * math.Exp2(float64(zoom)))
	data := t.entries
	next := make([]entry, 0, len(data))

	for i := range data {
		// Запись уже поглощена на этом зуме или ниже
		if data[i].zoom <= zoom {
			continue
		}
		data[i].zoom = zoom

		neighborIDs := t.Within(data[i].x, data[i].y, r)

		numPointsOrigin := data[i].numPoints
		numPoints := numPointsOrigin
		for _, n := range neighborIDs {
			if data[n].zoom > zoom {
				numPoints += data[n].numPoints
			}
		}

		if numPoints > numPointsOrigin && numPoints >= ix.opts.MinPoints {
			// Сливаем соседей во взвешенный центроид. Идентификатор кластера
			// кодирует зум и позицию исходной записи со сдвигом на число
			// фотографий, чтобы не пересекаться с их индексами.
			wx := data[i].x * float64(numPointsOrigin)
			wy := data[i].y * float64(numPointsOrigin)
			id := (i << 5) + (zoom + 1) + len(ix.photos)

			for _, n := range neighborIDs {
				if data[n].zoom <= zoom {
					continue
				}
				data[n].zoom = zoom

				wx += data[n].x * float64(data[n].numPoints)
				wy += data[n].y * float64(data[n].numPoints)
				data[n].parent = id
			}
			data[i].parent = id

			next = append(next, entry{
				x:         wx / float64(numPoints),
				y:         wy / float64(numPoints),
				zoom:      zoomInfinity,
				source:    id,
				parent:    -1,
				numPoints: numPoints,
			})
		} else {
			// Группа меньше MinPoints: записи переходят на следующий
			// уровень поодиночке
			next = append(next, data[i])

			if numPoints > 1 {
				for _, n := range neighborIDs {
					if data[n].zoom <= zoom {
						continue
					}
					data[n].zoom = zoom
					next = append(next, data[n])
				}
			}
		}
	}

	return next
}

// Search возвращает кластеры и отдельные фотографии внутри границ
// на заданном зуме. Область, пересекающая антимеридиан, разбивается
// на две выборки: восточная часть идёт первой.
func (ix *Index) Search(bounds domain.BoundingBox, zoom int) []domain.Feature {
	if len(ix.photos) == 0 {
		return []domain.Feature{}
	}

	minLng := normalizeLng(bounds.West)
	minLat := math.Max(-90, math.Min(90, bounds.South))
	maxLng := bounds.East
	if maxLng != 180 {
		maxLng = normalizeLng(bounds.East)
	}
	maxLat := math.Max(-90, math.Min(90, bounds.North))

	if bounds.East-bounds.West >= 360 {
		minLng = -180
		maxLng = 180
	} else if minLng > maxLng {
		east := ix.Search(domain.BoundingBox{West: minLng, South: minLat, East: 180, North: maxLat}, zoom)
		west := ix.Search(domain.BoundingBox{West: -180, South: minLat, East: maxLng, North: maxLat}, zoom)
		return append(east, west...)
	}

	t := ix.trees[ix.limitZoom(zoom)]
	ids := t.Range(lngX(minLng), latY(maxLat), lngX(maxLng), latY(minLat))

	features := make([]domain.Feature, 0, len(ids))
	for _, i := range ids {
		features = append(features, ix.entryFeature(t.entries[i]))
	}
	return features
}

// Children возвращает непосредственных детей кластера на следующем зуме
func (ix *Index) Children(clusterID int) ([]domain.Feature, error) {
	originID, originZoom, err := ix.decodeCluster(clusterID)
	if err != nil {
		return nil, err
	}

	t := ix.trees[originZoom]
	origin := t.entries[originID]
	r := ix.opts.Radius / (ix.opts.Extent * math.Exp2(float64(originZoom-1)))
	ids := t.Within(origin.x, origin.y, r)

	var children []domain.Feature
	for _, i := range ids {
		if t.entries[i].parent != clusterID {
			continue
		}
		children = append(children, ix.entryFeature(t.entries[i]))
	}

	if len(children) == 0 {
		return nil, errors.ErrClusterNotFound.WithDetails(map[string]interface{}{
			"cluster_id": clusterID,
		})
	}
	return children, nil
}

// Leaves возвращает фотографии кластера со сквозной пагинацией.
// При limit <= 0 используется значение по умолчанию.
func (ix *Index) Leaves(clusterID, limit, offset int) ([]domain.Photo, error) {
	if limit <= 0 {
		limit = defaultLeavesLimit
	}
	if offset < 0 {
		offset = 0
	}

	leaves := make([]domain.Photo, 0, limit)
	if _, err := ix.appendLeaves(&leaves, clusterID, limit, offset, 0); err != nil {
		return nil, err
	}
	return leaves, nil
}

// appendLeaves обходит детей кластера в глубину, пропуская offset листьев
// и останавливаясь при наборе limit
func (ix *Index) appendLeaves(result *[]domain.Photo, clusterID, limit, offset, skipped int) (int, error) {
	children, err := ix.Children(clusterID)
	if err != nil {
		return skipped, err
	}

	for _, child := range children {
		if child.Cluster != nil {
			if skipped+child.Cluster.PointCount <= offset {
				// Пропускаем кластер целиком, не спускаясь в него
				skipped += child.Cluster.PointCount
			} else {
				skipped, err = ix.appendLeaves(result, child.Cluster.ClusterID, limit, offset, skipped)
				if err != nil {
					return skipped, err
				}
			}
		} else if skipped < offset {
			skipped++
		} else {
			*result = append(*result, *child.Photo)
		}

		if len(*result) == limit {
			break
		}
	}

	return skipped, nil
}

// ExpansionZoom возвращает минимальный зум, на котором кластер
// перестаёт быть единым агрегатом. Не бывает больше MaxZoom+1.
func (ix *Index) ExpansionZoom(clusterID int) (int, error) {
	_, originZoom, err := ix.decodeCluster(clusterID)
	if err != nil {
		return 0, err
	}

	expansionZoom := originZoom - 1
	for expansionZoom <= ix.opts.MaxZoom {
		children, err := ix.Children(clusterID)
		if err != nil {
			return 0, err
		}
		expansionZoom++

		if len(children) != 1 {
			break
		}
		child := children[0]
		if child.Cluster == nil {
			break
		}
		clusterID = child.Cluster.ClusterID
	}

	return expansionZoom, nil
}

// ID возвращает уникальный идентификатор построенного индекса
func (ix *Index) ID() string {
	return ix.id
}

// PointCount возвращает число проиндексированных фотографий
func (ix *Index) PointCount() int {
	return len(ix.photos)
}

// Stats возвращает сводку построения
func (ix *Index) Stats() IndexStats {
	return ix.stats
}

// Options возвращает действующие параметры индекса
func (ix *Index) Options() Options {
	return ix.opts
}

// entryFeature конвертирует запись уровня в элемент результата
func (ix *Index) entryFeature(e entry) domain.Feature {
	if e.numPoints > 1 {
		return domain.Feature{Cluster: &domain.Cluster{
			ClusterID:  e.source,
			Centroid:   domain.Position{Lon: xLng(e.x), Lat: yLat(e.y)},
			PointCount: e.numPoints,
		}}
	}
	p := ix.photos[e.source]
	return domain.Feature{Photo: &p}
}

// decodeCluster извлекает из идентификатора кластера зум и позицию
// исходной записи в дереве этого зума
func (ix *Index) decodeCluster(clusterID int) (originID, originZoom int, err error) {
	rel := clusterID - len(ix.photos)
	if rel < 0 {
		return 0, 0, errors.ErrClusterNotFound.WithDetails(map[string]interface{}{
			"cluster_id": clusterID,
		})
	}

	originZoom = rel % 32
	originID = rel >> 5
	if originZoom >= len(ix.trees) || ix.trees[originZoom] == nil || originID >= len(ix.trees[originZoom].entries) {
		return 0, 0, errors.ErrClusterNotFound.WithDetails(map[string]interface{}{
			"cluster_id": clusterID,
		})
	}
	return originID, originZoom, nil
}

// limitZoom приводит запрошенный зум к диапазону уровней индекса
func (ix *Index) limitZoom(zoom int) int {
	if zoom < ix.opts.MinZoom {
		return ix.opts.MinZoom
	}
	if zoom > ix.opts.MaxZoom+1 {
		return ix.opts.MaxZoom + 1
	}
	return zoom
}

// normalizeLng приводит долготу к диапазону [-180, 180)
func normalizeLng(lng float64) float64 {
	return math.Mod(math.Mod(lng+180, 360)+360, 360) - 180
}
