package port

import (
	"context"

	"roadscan/internal/domain/entity"
)

// DefectDetector интерфейс детектора дефектов дорожного покрытия
type DefectDetector interface {
	// Detect прогоняет снимок через модель и возвращает найденные дефекты.
	// Пустой список — корректный результат: дефектов нет.
	Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error)
}
