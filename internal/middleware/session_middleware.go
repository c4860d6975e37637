package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/threadz/threadz-backend/config"
	"github.com/threadz/threadz-backend/internal/app/repository"
)

const sessionIDKey = "session_id"

// SessionMiddleware binds each request to a server-side session. A
// missing or expired cookie gets a fresh session; a known cookie keeps
// the session alive. Every handler downstream can rely on a session
// existing.
type SessionMiddleware struct {
	sessionRepo repository.SessionRepository
	cfg         config.SessionConfig
}

func NewSessionMiddleware(sessionRepo repository.SessionRepository, cfg config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		cookie, err := c.Cookie(m.cfg.CookieName)
		if err == nil && cookie != "" {
			if _, findErr := m.sessionRepo.FindByID(cookie); findErr == nil {
				m.sessionRepo.Touch(cookie)
				c.Set(sessionIDKey, cookie)
				c.Next()
				return
			}
			log.Debug("Unknown session cookie, issuing a new session", map[string]interface{}{
				"cookie": cookie,
			})
		}

		session := m.sessionRepo.Create()
		maxAge := int(m.cfg.TTL.Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cfg.CookieName, session.ID, maxAge, "/", "", false, true)
		c.Set(sessionIDKey, session.ID)

		log.Debug("New session issued", map[string]interface{}{
			"session_id": session.ID,
		})

		c.Next()
	}
}

// GetSessionID retrieves the session ID bound by the middleware.
func GetSessionID(c *gin.Context) (string, bool) {
	id := c.GetString(sessionIDKey)
	return id, id != ""
}
