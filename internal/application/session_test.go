package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"roadscan/internal/domain/entity"
	"roadscan/internal/infrastructure/storage"
)

func TestSessionServiceBeginScan(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	session, err := svc.BeginScan(ctx, "tg-10", 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingAddress, session.State)
}

func TestSessionServiceCancel(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	_, err := svc.BeginScan(ctx, "tg-10", 10)
	require.NoError(t, err)

	session, err := svc.Cancel(ctx, "tg-10", 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateIdle, session.State)
}

func TestSessionServiceAppendAndHistory(t *testing.T) {
	svc := NewSessionService(storage.NewMemorySessionRepository())
	ctx := context.Background()

	index, err := svc.Append(ctx, "web-1", 0, entity.DetectionRecord{Address: "первый"})
	require.NoError(t, err)
	require.Equal(t, 0, index)

	index, err = svc.Append(ctx, "web-1", 0, entity.DetectionRecord{Address: "второй"})
	require.NoError(t, err)
	require.Equal(t, 1, index)

	history, err := svc.History(ctx, "web-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "первый", history[0].Address)
}
