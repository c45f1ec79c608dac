// Package scheduler contém os serviços de agendamento: recarga do snapshot e
// limpeza de sessões ociosas
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

// ErrSyncRunning indica que outra recarga do snapshot está em andamento
var ErrSyncRunning = errors.New("recarga do snapshot já está em execução")

// SnapshotRefresher recarrega o snapshot vigente
type SnapshotRefresher interface {
	Refresh(ctx context.Context) (*domain.Snapshot, error)
	Version() int64
}

type SnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	refresher           SnapshotRefresher
	config              SnapshotSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewSnapshotSyncService(refresher SnapshotRefresher, cfg *config.Config) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule: cfg.SnapshotSync.CronSchedule,
		SyncEnabled:  cfg.SnapshotSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"enabled":       syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga do snapshot carregada")

	return &SnapshotSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		refresher: refresher,
		config:    syncConfig,
	}
}

func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de recarga do snapshot desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de recarga do snapshot")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		_ = s.syncSnapshot(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga do snapshot: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de recarga do snapshot")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSnapshot executa uma recarga; chamadas concorrentes recebem ErrSyncRunning
func (s *SnapshotSyncService) syncSnapshot(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Recarga do snapshot já está em execução")
		return ErrSyncRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, correlationID := log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx)
	logger.Info("Iniciando recarga do snapshot")

	_, err := s.refresher.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		logger.WithError(err).Error("Erro na recarga do snapshot")
		return err
	}

	logrus.WithField("correlation_id", correlationID).Info("Recarga do snapshot concluída")
	return nil
}

// TriggerManualSync inicia manualmente uma recarga do snapshot
func (s *SnapshotSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga do snapshot já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual do snapshot")
	go s.syncSnapshot(context.WithoutCancel(ctx))

	return true
}

// RunNow executa a recarga de forma síncrona, usado na inicialização
func (s *SnapshotSyncService) RunNow(ctx context.Context) error {
	err := s.syncSnapshot(ctx)
	if err == nil || errors.Is(err, ErrSyncRunning) {
		return err
	}
	return fmt.Errorf("recarga do snapshot falhou: %w", err)
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"snapshot_version":       s.refresher.Version(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
