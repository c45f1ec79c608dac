// Package snapshot mantém o snapshot vigente das três coleções e o recarrega
// a partir de uma origem (banco ou arquivo)
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

// Source carrega as três coleções
type Source interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// RepositorySource lê o snapshot do postgres
type RepositorySource struct {
	accounts  repository.AccountRepository
	profiles  repository.ProfileRepository
	campaigns repository.CampaignRepository
}

func NewRepositorySource(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	campaigns repository.CampaignRepository,
) *RepositorySource {
	return &RepositorySource{
		accounts:  accounts,
		profiles:  profiles,
		campaigns: campaigns,
	}
}

func (s *RepositorySource) Load(ctx context.Context) (*domain.Snapshot, error) {
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load accounts")
	}

	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load profiles")
	}

	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load campaigns")
	}

	return &domain.Snapshot{
		Accounts:  accounts,
		Profiles:  profiles,
		Campaigns: campaigns,
	}, nil
}

// Service guarda o snapshot vigente. Leituras e recargas podem ser concorrentes.
type Service struct {
	source Source

	mu      sync.RWMutex
	current *domain.Snapshot
	version int64
	lastErr error

	now func() time.Time
}

func NewService(source Source) *Service {
	return &Service{
		source:  source,
		current: domain.EmptySnapshot(),
		now:     time.Now,
	}
}

// Current retorna o snapshot vigente (vazio antes da primeira carga)
func (s *Service) Current() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version retorna a versão do snapshot vigente
func (s *Service) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LastError retorna o erro da última recarga, ou nil se ela funcionou
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Refresh carrega um novo snapshot. Em erro o snapshot anterior continua vigente.
func (s *Service) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	logger := log.ForContext(ctx)

	loaded, err := s.source.Load(ctx)
	if err == nil && loaded == nil {
		err = errors.New("source returned no snapshot")
	}
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()

		logger.WithError(err).Error("Erro ao recarregar snapshot, mantendo o anterior")
		return nil, err
	}

	s.mu.Lock()
	s.version++
	loaded.Version = s.version
	loaded.LoadedAt = s.now()
	s.current = loaded
	s.lastErr = nil
	s.mu.Unlock()

	counts := loaded.Counts()
	logger.WithField("version", loaded.Version).Infof(
		"Snapshot recarregado: %d contas, %d perfis, %d campanhas",
		counts["accounts"], counts["profiles"], counts["campaigns"],
	)

	return loaded, nil
}
