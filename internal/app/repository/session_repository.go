package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/threadz/threadz-backend/internal/app/model"
	"github.com/threadz/threadz-backend/pkg/util"
)

// ErrSessionNotFound is returned when no session exists for an ID.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository holds per-browser-session checkout state. Sessions
// live in memory only: expiry or process restart discards them, which
// matches the storefront's session-only cart lifetime.
type SessionRepository interface {
	Create() *model.Session
	FindByID(id string) (*model.Session, error)
	Update(session *model.Session) error
	Touch(id string)
	Delete(id string)
	DeleteExpired(ttl time.Duration) int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*model.Session),
	}
}

func (r *sessionRepository) Create() *model.Session {
	now := time.Now()
	session := &model.Session{
		ID:         util.NewSessionID(),
		Stage:      model.StageBrowsing,
		CreatedAt:  now,
		LastActive: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return session
}

func (r *sessionRepository) FindByID(id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

func (r *sessionRepository) Update(session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}

	copied := *session
	copied.LastActive = time.Now()
	r.sessions[session.ID] = &copied
	return nil
}

func (r *sessionRepository) Touch(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok {
		session.LastActive = time.Now()
	}
}

func (r *sessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *sessionRepository) DeleteExpired(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for id, session := range r.sessions {
		if session.LastActive.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
