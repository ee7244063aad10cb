package entity

import "sync"

// SessionState состояние диалога с пользователем
type SessionState string

const (
	StateIdle            SessionState = "idle"             // Ожидание команды
	StateAwaitingAddress SessionState = "awaiting_address" // Ожидание адреса для проверки
	StateProcessing      SessionState = "processing"       // Обработка запроса
)

// SessionLog — журнал результатов одной сессии. Записи только добавляются,
// изменение или удаление прошлых записей не предусмотрено.
// Веб-сервер обслуживает запросы одной сессии параллельно,
// поэтому доступ к записям защищён мьютексом.
type SessionLog struct {
	mu      sync.RWMutex
	records []DetectionRecord
}

// Append добавляет готовую запись в конец журнала и возвращает её индекс.
func (l *SessionLog) Append(record DetectionRecord) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	return len(l.records) - 1
}

// Records возвращает копию журнала в порядке добавления.
func (l *SessionLog) Records() []DetectionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]DetectionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// At возвращает запись по индексу и признак её наличия.
// Записи после добавления не изменяются, поэтому указатель безопасен.
func (l *SessionLog) At(index int) (*DetectionRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.records) {
		return nil, false
	}
	return &l.records[index], true
}

// Len возвращает количество записей в журнале.
func (l *SessionLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Session представляет одну пользовательскую сессию: веб-куки или чат в Telegram.
// Журнал принадлежит сессии и никогда не разделяется между сессиями.
type Session struct {
	ID     string       // идентификатор сессии (uuid для веба, chat ID для бота)
	ChatID int64        // Telegram Chat ID, 0 для веб-сессий
	State  SessionState // текущее состояние диалога
	Log    SessionLog   // журнал результатов сессии
}

// NewSession создаёт новую сессию с пустым журналом.
func NewSession(id string, chatID int64) *Session {
	return &Session{
		ID:     id,
		ChatID: chatID,
		State:  StateIdle,
	}
}

// SetState обновляет состояние сессии.
func (s *Session) SetState(state SessionState) {
	s.State = state
}
