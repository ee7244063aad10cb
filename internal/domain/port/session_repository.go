package port

import (
	"context"

	"roadscan/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	// Get возвращает сессию по ID, создаёт новую если не найдена
	Get(ctx context.Context, id string, chatID int64) (*entity.Session, error)

	// Save сохраняет состояние сессии
	Save(ctx context.Context, session *entity.Session) error
}
