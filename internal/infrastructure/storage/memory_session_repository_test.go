package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"roadscan/internal/domain/entity"
)

func TestMemorySessionRepositoryCreatesMissing(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := repo.Get(ctx, "web-1", 0)
	require.NoError(t, err)
	require.Equal(t, entity.StateIdle, s.State)

	// Повторный Get возвращает ту же сессию, а не новую.
	s.Log.Append(entity.DetectionRecord{Address: "адрес"})
	again, err := repo.Get(ctx, "web-1", 0)
	require.NoError(t, err)
	require.Equal(t, 1, again.Log.Len())
}

func TestMemorySessionRepositoryConcurrentFirstGet(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	type result struct {
		session *entity.Session
		err     error
	}

	const workers = 16
	results := make(chan result, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := repo.Get(ctx, "web-1", 0)
			results <- result{session: s, err: err}
		}()
	}
	wg.Wait()
	close(results)

	// Все горутины получили один и тот же объект сессии.
	var first *entity.Session
	for r := range results {
		require.NoError(t, r.err)
		if first == nil {
			first = r.session
		}
		require.Same(t, first, r.session)
	}
}

func TestMemorySessionRepositoryIsolatesSessions(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	first, err := repo.Get(ctx, "web-1", 0)
	require.NoError(t, err)
	first.Log.Append(entity.DetectionRecord{Address: "адрес"})
	require.NoError(t, repo.Save(ctx, first))

	second, err := repo.Get(ctx, "web-2", 0)
	require.NoError(t, err)
	require.Equal(t, 0, second.Log.Len())
}
