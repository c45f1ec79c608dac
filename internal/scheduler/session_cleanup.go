package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
)

// SessionExpirer remove sessões ociosas
type SessionExpirer interface {
	Expire(idle time.Duration) int
	Len() int
}

type SessionCleanupService struct {
	scheduler      *gocron.Scheduler
	sessions       SessionExpirer
	idleTimeout    time.Duration
	interval       time.Duration
	mu             sync.Mutex
	lastRunAt      time.Time
	lastRunExpired int
	totalExpired   int
}

func NewSessionCleanupService(sessions SessionExpirer, cfg *config.Config) *SessionCleanupService {
	return &SessionCleanupService{
		scheduler:   gocron.NewScheduler(time.Local),
		sessions:    sessions,
		idleTimeout: cfg.Sessions.IdleTimeout,
		interval:    cfg.Sessions.CleanupInterval,
	}
}

func (s *SessionCleanupService) Start(ctx context.Context) error {
	if s.interval <= 0 || s.idleTimeout <= 0 {
		logrus.Info("Limpeza de sessões desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"interval":     s.interval.String(),
		"idle_timeout": s.idleTimeout.String(),
	}).Info("Iniciando limpeza periódica de sessões")

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.Cleanup)
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

// Cleanup remove as sessões ociosas e retorna quantas foram removidas
func (s *SessionCleanupService) Cleanup() int {
	expired := s.sessions.Expire(s.idleTimeout)

	s.mu.Lock()
	s.lastRunAt = time.Now()
	s.lastRunExpired = expired
	s.totalExpired += expired
	s.mu.Unlock()

	if expired > 0 {
		logrus.WithFields(logrus.Fields{
			"expired": expired,
			"open":    s.sessions.Len(),
		}).Info("Sessões ociosas removidas")
	}

	return expired
}

// TriggerManualSync executa a limpeza imediatamente
func (s *SessionCleanupService) TriggerManualSync(context.Context) bool {
	logrus.Info("Iniciando limpeza manual de sessões")
	s.Cleanup()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *SessionCleanupService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"cleanup_interval": s.interval.String(),
		"idle_timeout":     s.idleTimeout.String(),
		"open_sessions":    s.sessions.Len(),
		"last_run_at":      s.lastRunAt,
		"last_run_expired": s.lastRunExpired,
		"total_expired":    s.totalExpired,
	}
}
