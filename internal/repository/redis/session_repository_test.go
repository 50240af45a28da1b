package redis

import (
	"context"
	"testing"
	"time"

	"course-copilot-be/pkg/store"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewSessionRepository(client), mr
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	session := &store.Session{
		UserID:      "user-42",
		State:       store.StateContentMenu,
		Language:    store.LangSpanish,
		Course:      "Algoritmos",
		Cycle:       "20241",
		Section:     "G1",
		LastUpdated: time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(ctx, session))

	got, found, err := repo.Get(ctx, "user-42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, session.State, got.State)
	assert.Equal(t, session.Language, got.Language)
	assert.Equal(t, session.Course, got.Course)
	assert.True(t, session.LastUpdated.Equal(got.LastUpdated))
}

func TestGetMissingSession(t *testing.T) {
	repo, _ := newTestRepository(t)

	got, found, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestSessionsHaveNoExpiry(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	session := store.NewSession("user-1", time.Now())
	require.NoError(t, repo.Save(ctx, session))

	// Idle handling is conversation logic; the store must keep sessions
	// until they are overwritten.
	mr.FastForward(24 * time.Hour)

	_, found, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestSaveOverwrites(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	session := store.NewSession("user-1", time.Now())
	require.NoError(t, repo.Save(ctx, session))

	session.State = store.StateMainMenu
	session.Language = store.LangQuechua
	require.NoError(t, repo.Save(ctx, session))

	got, found, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, store.StateMainMenu, got.State)
	assert.Equal(t, store.LangQuechua, got.Language)
}
