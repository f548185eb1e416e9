package geojsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/domain/repository"
	pkgerrors "github.com/photomap-engine/internal/pkg/errors"
)

type photoRepository struct {
	path          string
	watchDebounce time.Duration
	logger        *zap.Logger
}

// NewPhotoRepository создает новый экземпляр PhotoRepository поверх
// GeoJSON-файла каталога
func NewPhotoRepository(path string, watchDebounce time.Duration, logger *zap.Logger) repository.PhotoRepository {
	return &photoRepository{
		path:          path,
		watchDebounce: watchDebounce,
		logger:        logger,
	}
}

// LoadCatalog читает файл каталога и разбирает его как GeoJSON FeatureCollection.
// Фичи без точечной геометрии становятся записями без координат, фичи без
// идентификатора пропускаются.
func (r *photoRepository) LoadCatalog(ctx context.Context) ([]domain.CatalogRecord, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("Failed to read catalog file",
			zap.String("path", r.path),
			zap.Error(err))
		return nil, pkgerrors.ErrCatalogRead.WithDetails(map[string]interface{}{
			"path":  r.path,
			"error": err.Error(),
		})
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		r.logger.Error("Failed to parse catalog file",
			zap.String("path", r.path),
			zap.Error(err))
		return nil, pkgerrors.ErrCatalogRead.WithDetails(map[string]interface{}{
			"path":  r.path,
			"error": err.Error(),
		})
	}

	records := make([]domain.CatalogRecord, 0, len(fc.Features))
	skipped := 0
	for _, f := range fc.Features {
		id := featureID(f)
		if id == "" {
			r.logger.Warn("Catalog feature without id skipped",
				zap.String("path", r.path))
			skipped++
			continue
		}

		record := domain.CatalogRecord{
			ID:    id,
			Title: f.Properties.MustString("title", ""),
		}
		// Не-точечная или отсутствующая геометрия означает негеопривязанную запись
		if point, ok := f.Geometry.(orb.Point); ok {
			lon, lat := point.Lon(), point.Lat()
			record.Lon = &lon
			record.Lat = &lat
		}
		records = append(records, record)
	}

	r.logger.Info("Catalog loaded",
		zap.String("path", r.path),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped))
	return records, nil
}

// WatchCatalog следит за изменениями файла каталога через fsnotify.
// Наблюдается родительская директория: редакторы и CMS обычно заменяют файл
// атомарным rename, при котором watch на сам файл теряется.
func (r *photoRepository) WatchCatalog(ctx context.Context) (<-chan domain.CatalogUpdate, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.logger.Error("Failed to create catalog watcher", zap.Error(err))
		return nil, pkgerrors.ErrCatalogWatch.WithDetails(map[string]interface{}{
			"error": err.Error(),
		})
	}

	dir := filepath.Dir(r.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		r.logger.Error("Failed to watch catalog directory",
			zap.String("dir", dir),
			zap.Error(err))
		return nil, pkgerrors.ErrCatalogWatch.WithDetails(map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
	}

	updates := make(chan domain.CatalogUpdate, 1)

	go func() {
		defer close(updates)
		defer watcher.Close()

		var timer *time.Timer
		var timerC <-chan time.Time
		target := filepath.Clean(r.path)

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Catalog watcher stopped",
					zap.String("path", r.path))
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				// Сворачиваем серию событий записи в одну перезагрузку
				if timer == nil {
					timer = time.NewTimer(r.watchDebounce)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(r.watchDebounce)
				}

			case <-timerC:
				timer = nil
				timerC = nil

				records, err := r.LoadCatalog(ctx)
				if err != nil {
					r.logger.Warn("Catalog reload failed, keeping previous snapshot",
						zap.Error(err))
					continue
				}

				// Непрочитанное обновление вытесняется более свежим
				select {
				case <-updates:
					r.logger.Debug("Unconsumed catalog update superseded")
				default:
				}
				updates <- domain.CatalogUpdate{
					Records:    records,
					ReloadedAt: time.Now(),
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				r.logger.Error("Catalog watcher error", zap.Error(err))
			}
		}
	}()

	r.logger.Info("Catalog watcher started",
		zap.String("path", r.path),
		zap.Duration("debounce", r.watchDebounce))
	return updates, nil
}

// featureID извлекает идентификатор фотографии из свойств фичи
func featureID(f *geojson.Feature) string {
	if id := f.Properties.MustString("id", ""); id != "" {
		return id
	}
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return ""
}
