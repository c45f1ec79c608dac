package browsing

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
	"github.com/vfg2006/traffic-manager-browser/pkg/utils"
)

// SnapshotProvider fornece o snapshot vigente
type SnapshotProvider interface {
	Current() *domain.Snapshot
}

type session struct {
	mu       sync.Mutex
	browser  *Browser
	version  int64
	lastSeen time.Time
}

// SessionStore guarda uma tela por sessão. O mapa é protegido por um RWMutex e
// cada sessão tem seu próprio mutex, então operações em sessões distintas não
// se bloqueiam.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*session
	snapshots SnapshotProvider
	now       func() time.Time
	newID     func() (string, error)
}

func NewSessionStore(snapshots SnapshotProvider) *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*session),
		snapshots: snapshots,
		now:       time.Now,
		newID:     utils.GenerateSessionID,
	}
}

// Create abre uma sessão nova, sem seleção, sobre o snapshot vigente
func (s *SessionStore) Create(ctx context.Context) (string, *View, error) {
	logger := log.ForContext(ctx)

	id, err := s.newID()
	if err != nil {
		logger.WithError(err).Error("Erro ao gerar ID de sessão")
		return "", nil, NewBrowsingError(ErrGenerateID, "", err.Error())
	}

	snapshot := s.current()
	browser, err := NewBrowser(snapshot)
	if err != nil {
		logger.WithError(err).Error("Erro ao montar tabela de contas")
		return "", nil, NewBrowsingError(err, id, "")
	}

	view, err := browser.Render()
	if err != nil {
		return "", nil, NewBrowsingError(err, id, "")
	}

	s.mu.Lock()
	s.sessions[id] = &session{
		browser:  browser,
		version:  snapshot.Version,
		lastSeen: s.now(),
	}
	s.mu.Unlock()

	logger.WithField("session_id", id).WithField("version", snapshot.Version).Info("Sessão de navegação criada")

	return id, view, nil
}

// View renderiza a sessão sem alterar a seleção
func (s *SessionStore) View(ctx context.Context, id string) (*View, error) {
	return s.with(ctx, id, func(*Browser) error { return nil })
}

// Click trata o clique em uma linha do nível informado
func (s *SessionStore) Click(ctx context.Context, id string, level string, key string) (*View, error) {
	parsed, ok := domain.ParseLevel(level)
	if !ok {
		return nil, NewBrowsingError(ErrUnknownLevel, id, level)
	}

	return s.with(ctx, id, func(b *Browser) error {
		log.ForContext(ctx).WithFields(log.Fields{
			"session_id": id,
			"level":      parsed.String(),
			"key":        key,
		}).Debug("Clique em linha")

		return b.Click(parsed, key)
	})
}

// ToggleSort inverte a ordenação da tabela do nível informado
func (s *SessionStore) ToggleSort(ctx context.Context, id string, level string) (*View, error) {
	parsed, ok := domain.ParseLevel(level)
	if !ok {
		return nil, NewBrowsingError(ErrUnknownLevel, id, level)
	}

	return s.with(ctx, id, func(b *Browser) error {
		return b.ToggleSort(parsed)
	})
}

// Delete encerra a sessão
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, exists := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !exists {
		return NewBrowsingError(ErrSessionNotFound, id, "")
	}

	log.ForContext(ctx).WithField("session_id", id).Info("Sessão de navegação encerrada")
	return nil
}

// Expire remove sessões sem uso há mais de `idle` e retorna quantas foram removidas
func (s *SessionStore) Expire(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()

		if stale {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}

// Len retorna a quantidade de sessões abertas
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// with executa fn com a sessão travada. Se houver snapshot mais novo ele é
// aplicado antes, preservando a seleção.
func (s *SessionStore) with(ctx context.Context, id string, fn func(*Browser) error) (*View, error) {
	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return nil, NewBrowsingError(ErrSessionNotFound, id, "")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()

	if snapshot := s.current(); snapshot.Version != sess.version {
		if err := sess.browser.Refresh(snapshot); err != nil {
			return nil, NewBrowsingError(err, id, "")
		}

		log.ForContext(ctx).WithFields(log.Fields{
			"session_id": id,
			"version":    snapshot.Version,
		}).Debug("Sessão atualizada para novo snapshot")

		sess.version = snapshot.Version
	}

	if err := fn(sess.browser); err != nil {
		return nil, NewBrowsingError(err, id, "")
	}

	view, err := sess.browser.Render()
	if err != nil {
		return nil, NewBrowsingError(err, id, "")
	}

	return view, nil
}

func (s *SessionStore) current() *domain.Snapshot {
	if s.snapshots == nil {
		return domain.EmptySnapshot()
	}

	snapshot := s.snapshots.Current()
	if snapshot == nil {
		return domain.EmptySnapshot()
	}

	return snapshot
}
