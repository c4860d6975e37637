package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/threadz/threadz-backend/config"
	"github.com/threadz/threadz-backend/internal/app/repository"
	"github.com/threadz/threadz-backend/pkg/logger"
)

// SessionScheduler periodically sweeps sessions idle past the TTL.
// Everything hanging off a swept session (cart, checkout progress) goes
// with it; placed orders are unaffected.
type SessionScheduler struct {
	cron        *cron.Cron
	sessionRepo repository.SessionRepository
	cfg         config.SessionConfig
}

func NewSessionScheduler(sessionRepo repository.SessionRepository, cfg config.SessionConfig) *SessionScheduler {
	return &SessionScheduler{
		cron:        cron.New(),
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

func (s *SessionScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.SweepSchedule, func() {
		removed := s.sessionRepo.DeleteExpired(s.cfg.TTL)
		if removed > 0 {
			logger.Info("Swept expired sessions", map[string]interface{}{
				"removed": removed,
				"ttl":     s.cfg.TTL.String(),
			})
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for session sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Session scheduler started successfully", map[string]interface{}{
		"schedule": s.cfg.SweepSchedule,
	})

	return nil
}

func (s *SessionScheduler) Stop() {
	logger.Info("Stopping session scheduler...")
	s.cron.Stop()
	logger.Info("Session scheduler stopped")
}
