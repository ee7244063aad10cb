package app

import (
	"context"

	"roadscan/internal/domain/entity"
	"roadscan/internal/domain/port"
)

type SessionService struct {
	repo port.SessionRepository
}

func NewSessionService(repo port.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Get(ctx context.Context, id string, chatID int64) (*entity.Session, error) {
	return s.repo.Get(ctx, id, chatID)
}

func (s *SessionService) SetState(ctx context.Context, id string, chatID int64, state entity.SessionState) (*entity.Session, error) {
	session, err := s.repo.Get(ctx, id, chatID)
	if err != nil {
		return nil, err
	}

	session.SetState(state)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SessionService) BeginScan(ctx context.Context, id string, chatID int64) (*entity.Session, error) {
	return s.SetState(ctx, id, chatID, entity.StateAwaitingAddress)
}

func (s *SessionService) Cancel(ctx context.Context, id string, chatID int64) (*entity.Session, error) {
	return s.SetState(ctx, id, chatID, entity.StateIdle)
}

// History возвращает журнал сессии в порядке добавления записей.
func (s *SessionService) History(ctx context.Context, id string, chatID int64) ([]entity.DetectionRecord, error) {
	session, err := s.repo.Get(ctx, id, chatID)
	if err != nil {
		return nil, err
	}
	return session.Log.Records(), nil
}

// Append добавляет готовую запись в журнал сессии и возвращает её индекс.
func (s *SessionService) Append(ctx context.Context, id string, chatID int64, record entity.DetectionRecord) (int, error) {
	session, err := s.repo.Get(ctx, id, chatID)
	if err != nil {
		return 0, err
	}

	index := session.Log.Append(record)
	if err := s.repo.Save(ctx, session); err != nil {
		return 0, err
	}

	return index, nil
}
