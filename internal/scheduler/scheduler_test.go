package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

type fakeRefresher struct {
	mu      sync.Mutex
	calls   int
	version int64
	err     error
}

func (f *fakeRefresher) Refresh(context.Context) (*domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.version++
	return &domain.Snapshot{Version: f.version}, nil
}

func (f *fakeRefresher) Version() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version
}

type fakeSessions struct {
	idle    time.Duration
	expired int
	open    int
}

func (f *fakeSessions) Expire(idle time.Duration) int {
	f.idle = idle
	f.open -= f.expired
	return f.expired
}

func (f *fakeSessions) Len() int {
	return f.open
}

func TestSnapshotSyncService_RunNow(t *testing.T) {
	log.SetupTestLogger()
	refresher := &fakeRefresher{}
	service := NewSnapshotSyncService(refresher, &config.Config{
		SnapshotSync: config.SnapshotSync{CronSchedule: "*/5 * * * *", Enabled: true},
	})

	require.NoError(t, service.RunNow(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, int64(1), status["snapshot_version"])
	assert.Equal(t, "", status["last_sync_error"])
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "*/5 * * * *", status["sync_cron"])

	refresher.err = errors.New("db down")
	err := service.RunNow(context.Background())
	assert.EqualError(t, err, "recarga do snapshot falhou: db down")
	assert.Equal(t, "db down", service.GetStatus()["last_sync_error"])
	assert.Equal(t, int64(1), service.GetStatus()["snapshot_version"])
}

type blockingRefresher struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingRefresher) Refresh(context.Context) (*domain.Snapshot, error) {
	close(b.started)
	<-b.release
	return &domain.Snapshot{Version: 1}, nil
}

func (b *blockingRefresher) Version() int64 {
	return 0
}

func TestSnapshotSyncService_RunNowWhileRunning(t *testing.T) {
	log.SetupTestLogger()
	refresher := &blockingRefresher{started: make(chan struct{}), release: make(chan struct{})}
	service := NewSnapshotSyncService(refresher, &config.Config{})

	// Erro de uma execução anterior não pode ser devolvido como se fosse desta
	service.lastSyncError = "erro antigo"

	done := make(chan error, 1)
	go func() {
		done <- service.RunNow(context.Background())
	}()
	<-refresher.started

	err := service.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrSyncRunning)
	assert.NotContains(t, err.Error(), "erro antigo")

	close(refresher.release)
	assert.NoError(t, <-done)
	assert.Equal(t, "", service.GetStatus()["last_sync_error"])
}

func TestSnapshotSyncService_TriggerManualSync(t *testing.T) {
	log.SetupTestLogger()
	refresher := &fakeRefresher{}
	service := NewSnapshotSyncService(refresher, &config.Config{})

	assert.True(t, service.TriggerManualSync(context.Background()))

	assert.Eventually(t, func() bool {
		return refresher.Version() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSnapshotSyncService_Start(t *testing.T) {
	log.SetupTestLogger()

	t.Run("Desabilitado não agenda", func(t *testing.T) {
		service := NewSnapshotSyncService(&fakeRefresher{}, &config.Config{})
		assert.NoError(t, service.Start(context.Background()))
		assert.False(t, service.scheduler.IsRunning())
	})

	t.Run("Expressão inválida", func(t *testing.T) {
		service := NewSnapshotSyncService(&fakeRefresher{}, &config.Config{
			SnapshotSync: config.SnapshotSync{CronSchedule: "not a cron", Enabled: true},
		})
		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Para ao cancelar o contexto", func(t *testing.T) {
		service := NewSnapshotSyncService(&fakeRefresher{}, &config.Config{
			SnapshotSync: config.SnapshotSync{CronSchedule: "0 3 * * *", Enabled: true},
		})

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, service.Start(ctx))
		assert.True(t, service.scheduler.IsRunning())

		cancel()
		assert.Eventually(t, func() bool {
			return !service.scheduler.IsRunning()
		}, time.Second, 10*time.Millisecond)
	})
}

func TestSessionCleanupService(t *testing.T) {
	log.SetupTestLogger()
	sessions := &fakeSessions{expired: 2, open: 5}
	service := NewSessionCleanupService(sessions, &config.Config{
		Sessions: config.Sessions{IdleTimeout: 30 * time.Minute, CleanupInterval: time.Minute},
	})

	assert.Equal(t, 2, service.Cleanup())
	assert.Equal(t, 30*time.Minute, sessions.idle)

	assert.True(t, service.TriggerManualSync(context.Background()))

	status := service.GetStatus()
	assert.Equal(t, 4, status["total_expired"])
	assert.Equal(t, 2, status["last_run_expired"])
	assert.Equal(t, 1, status["open_sessions"])
	assert.Equal(t, "30m0s", status["idle_timeout"])
}

func TestSessionCleanupService_StartDisabled(t *testing.T) {
	service := NewSessionCleanupService(&fakeSessions{}, &config.Config{})
	assert.NoError(t, service.Start(context.Background()))
	assert.False(t, service.scheduler.IsRunning())
}
