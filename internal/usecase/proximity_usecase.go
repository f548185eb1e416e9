package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/photomap-engine/internal/domain"
	"github.com/photomap-engine/internal/pkg/utils"
	"github.com/photomap-engine/internal/usecase/dto"
)

// ProximityUseCase - use case триггера обзора "фотографии рядом":
// решает, пора ли показать пользователю подборку видимых фотографий
type ProximityUseCase struct {
	widthThresholdKm float64
	sampleSize       int
	roundStepKm      float64
	logger           *zap.Logger
}

// NewProximityUseCase - создание нового ProximityUseCase.
// widthThresholdKm - максимальная ширина области, при которой срабатывает
// триггер; sampleSize - число идентификаторов в отпечатке сцены;
// roundStepKm - шаг округления ширины в отпечатке.
func NewProximityUseCase(widthThresholdKm float64, sampleSize int, roundStepKm float64, logger *zap.Logger) *ProximityUseCase {
	// Установка значений по умолчанию
	if widthThresholdKm <= 0 {
		widthThresholdKm = 10
	}
	if sampleSize <= 0 {
		sampleSize = 4
	}
	if roundStepKm <= 0 {
		roundStepKm = 0.1
	}

	return &ProximityUseCase{
		widthThresholdKm: widthThresholdKm,
		sampleSize:       sampleSize,
		roundStepKm:      roundStepKm,
		logger:           logger,
	}
}

// Evaluate решает по текущей сцене, показывать ли обзор. Триггер
// срабатывает, когда область уже порога и видно больше одной отдельной
// фотографии, а отпечаток сцены отличается от последнего сработавшего.
func (uc *ProximityUseCase) Evaluate(
	viewport domain.Viewport,
	features []domain.Feature,
	lastKey domain.TriggerKey,
) dto.ProximityDecision {
	closed := dto.ProximityDecision{ShouldOpen: false, TriggerKey: lastKey}

	widthKm := utils.ViewportWidthKm(viewport.CenterLat(), viewport.West, viewport.East)
	if widthKm > uc.widthThresholdKm {
		return closed
	}

	photos := visiblePhotos(features)
	if len(photos) <= 1 {
		return closed
	}

	key := uc.triggerKey(widthKm, photos)
	if key == lastKey {
		// Та же сцена: обзор уже показывался
		return closed
	}

	uc.logger.Debug("Proximity trigger fired",
		zap.Float64("width_km", widthKm),
		zap.Int("photos", len(photos)),
	)

	return dto.ProximityDecision{
		ShouldOpen: true,
		Overview: &domain.Overview{
			Photos:         photos,
			ApproxRadiusKm: widthKm / 2,
		},
		TriggerKey: key,
	}
}

// triggerKey строит отпечаток сцены: ширина области, округлённая до шага
// roundStepKm, и первые sampleSize отсортированных идентификаторов
func (uc *ProximityUseCase) triggerKey(widthKm float64, photos []domain.Photo) domain.TriggerKey {
	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	if len(ids) > uc.sampleSize {
		ids = ids[:uc.sampleSize]
	}

	// Ширина кодируется числом шагов округления: целое сравнивается точно,
	// в отличие от форматированного float
	steps := int(math.Round(widthKm / uc.roundStepKm))
	return domain.TriggerKey(fmt.Sprintf("%d|%s", steps, strings.Join(ids, ",")))
}

// visiblePhotos собирает фотографии, видимые отдельными маркерами
func visiblePhotos(features []domain.Feature) []domain.Photo {
	photos := make([]domain.Photo, 0, len(features))
	for _, f := range features {
		if f.Photo != nil {
			photos = append(photos, *f.Photo)
		}
	}
	return photos
}
