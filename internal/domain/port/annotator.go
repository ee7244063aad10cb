package port

import (
	"roadscan/internal/domain/entity"
)

// Annotator интерфейс отрисовки найденных дефектов поверх снимка
type Annotator interface {
	// Annotate рисует рамку и подпись для каждого дефекта на копии снимка.
	// Исходные байты не изменяются; рамки рисуются в порядке списка.
	Annotate(imageData []byte, detections []entity.Detection) ([]byte, error)
}
