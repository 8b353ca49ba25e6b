// internal/domain/session/manager.go
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/filter"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/state"
)

// ErrInvalidSessionID is returned for an empty session ID
var ErrInvalidSessionID = errors.New("invalid session id")

// Config configures a Manager
type Config struct {
	Storage       state.Storage
	KeyPrefix     string
	CheckoutDelay time.Duration
	Logger        logrus.FieldLogger
	Metrics       *metrics.Metrics
}

// Manager keeps the live sessions of this process. Sessions that are not in
// memory are rehydrated from storage on first use, so persisted carts,
// wishlists and auth state outlive both eviction and restarts.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      Config
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewManager creates a session manager
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns the live session with id, rehydrating it if needed. Storage
// is read without holding the manager lock; when two requests open the same
// session at once the first one inserted wins.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrInvalidSessionID
	}

	if s, ok := m.live(id); ok {
		return s, nil
	}

	opened := m.open(ctx, id)

	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		s.touch(m.now())
		return s, nil
	}
	m.sessions[id] = opened
	m.mu.Unlock()

	m.cfg.Metrics.SessionOpened()
	return opened, nil
}

func (m *Manager) live(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

func (m *Manager) open(ctx context.Context, id string) *Session {
	prefix := id
	if m.cfg.KeyPrefix != "" {
		prefix = m.cfg.KeyPrefix + ":" + id
	}

	logger := m.logger.WithField("session_id", id)
	storage := state.Namespace(m.cfg.Storage, prefix)
	opts := state.Options{Logger: logger, Metrics: m.cfg.Metrics}

	s := &Session{
		ID:       id,
		Cart:     cart.NewStore(ctx, storage, opts),
		Wishlist: wishlist.NewStore(ctx, storage, opts),
		Filters:  filter.NewStore(m.cfg.Metrics),
		Auth:     user.NewAuthStore(ctx, storage, opts),
		Checkout: checkout.NewTracker(m.cfg.CheckoutDelay, m.cfg.Metrics, logger),
	}
	s.touch(m.now())

	logger.Debug("Session opened")
	return s
}

// Drop tears down the live session with id. Its persisted state is kept.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		m.close(s)
	}
}

// EvictIdle drops every session unused for longer than idle and returns how
// many were dropped.
func (m *Manager) EvictIdle(idle time.Duration) int {
	now := m.now()

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.idleSince(now) > idle {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		m.close(s)
	}
	return len(stale)
}

// Run evicts idle sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(idle); n > 0 {
				m.logger.WithField("count", n).Info("Evicted idle sessions")
			}
		}
	}
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close drops every live session
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		m.close(s)
	}
}

func (m *Manager) close(s *Session) {
	s.Checkout.Dismiss()
	m.cfg.Metrics.SessionClosed()
	m.logger.WithField("session_id", s.ID).Debug("Session closed")
}
