package memory

import (
	"context"
	"testing"
	"time"

	"course-copilot-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := store.NewSession("user-1", time.Now())
	session.Language = store.LangSpanish
	require.NoError(t, repo.Save(ctx, session))

	got, found, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, store.LangSpanish, got.Language)
}

func TestGetMissing(t *testing.T) {
	repo := NewSessionRepository()

	got, found, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}
