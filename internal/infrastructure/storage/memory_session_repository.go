package storage

import (
	"context"
	"sync"

	"roadscan/internal/domain/entity"
	"roadscan/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// Get возвращает сессию по ID, создаёт новую если не найдена.
// Поиск и создание идут под одной блокировкой: два параллельных первых
// запроса одной сессии должны получить один и тот же объект.
func (r *MemorySessionRepository) Get(ctx context.Context, id string, chatID int64) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, exists := r.sessions[id]; exists {
		return session, nil
	}

	// Создаём новую сессию
	newSession := entity.NewSession(id, chatID)
	r.sessions[id] = newSession

	return newSession, nil
}

// Save сохраняет состояние сессии
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
