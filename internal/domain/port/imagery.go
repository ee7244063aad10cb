package port

import (
	"context"

	"roadscan/internal/domain/entity"
)

// ImageryProvider интерфейс внешнего сервиса снимков улиц
type ImageryProvider interface {
	// Locate геокодирует адрес в координаты.
	Locate(ctx context.Context, address string) (entity.Coordinates, error)

	// FetchImage загружает статический снимок улицы по координатам.
	FetchImage(ctx context.Context, location entity.Coordinates) ([]byte, error)
}
