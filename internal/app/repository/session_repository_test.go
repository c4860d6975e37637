package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadz/threadz-backend/internal/app/model"
)

func TestSessionRepository_CreateAndFind(t *testing.T) {
	repo := NewSessionRepository()

	session := repo.Create()
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, model.StageBrowsing, session.Stage)

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, found.ID)
}

func TestSessionRepository_FindByID_NotFound(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.FindByID("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_FindByID_ReturnsCopy(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create()

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)

	// Mutating the returned session must not leak into the store
	found.Stage = model.StageTracking

	again, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StageBrowsing, again.Stage)
}

func TestSessionRepository_Update(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create()

	session.Stage = model.StageCartReview
	require.NoError(t, repo.Update(session))

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StageCartReview, found.Stage)
}

func TestSessionRepository_Update_NotFound(t *testing.T) {
	repo := NewSessionRepository()

	err := repo.Update(&model.Session{ID: "no-such-session"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := NewSessionRepository()

	stale := repo.Create()
	fresh := repo.Create()

	// Backdate the stale session past the TTL
	raw := repo.(*sessionRepository)
	raw.mu.Lock()
	raw.sessions[stale.ID].LastActive = time.Now().Add(-3 * time.Hour)
	raw.mu.Unlock()

	removed := repo.DeleteExpired(2 * time.Hour)
	assert.Equal(t, 1, removed)

	_, err := repo.FindByID(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = repo.FindByID(fresh.ID)
	assert.NoError(t, err)
}

func TestSessionRepository_Touch_KeepsSessionAlive(t *testing.T) {
	repo := NewSessionRepository()
	session := repo.Create()

	raw := repo.(*sessionRepository)
	raw.mu.Lock()
	raw.sessions[session.ID].LastActive = time.Now().Add(-3 * time.Hour)
	raw.mu.Unlock()

	repo.Touch(session.ID)

	removed := repo.DeleteExpired(2 * time.Hour)
	assert.Equal(t, 0, removed)
}
