package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona-chat-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := store.NewSession("sess-1", "recruiter")
	session.SignalCounts["hiring_intent"] = 2
	session.ResourceOfferMade = true

	require.NoError(t, repo.Save(ctx, session))

	got, found := repo.Get(ctx, "sess-1")
	require.True(t, found)
	assert.Equal(t, "recruiter", got.Role)
	assert.Equal(t, 2, got.SignalCounts["hiring_intent"])
	assert.True(t, got.ResourceOfferMade)
	assert.False(t, got.UpdatedAt.IsZero(), "save stamps the session")
}

func TestSessionRepositoryMiss(t *testing.T) {
	repo := NewSessionRepository()

	got, found := repo.Get(context.Background(), "missing")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, store.NewSession("sess-2", "visitor")))
	require.NoError(t, repo.Delete(ctx, "sess-2"))

	_, found := repo.Get(ctx, "sess-2")
	assert.False(t, found)
}
