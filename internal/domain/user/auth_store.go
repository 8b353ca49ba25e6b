// internal/domain/user/auth_store.go
package user

import (
	"context"
	"sync"

	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/state"
)

// StorageKey is the namespace the auth state is persisted under
const StorageKey = "auth"

// AuthStore holds the stub authentication state of one session.
//
// Login performs no credential check: any non-empty email and password are
// accepted. It must be replaced by real authentication before it guards
// anything of value.
type AuthStore struct {
	mu        sync.Mutex
	state     AuthState
	persister *state.Persister[AuthState]
	notifier  state.Notifier[AuthState]
	metrics   *metrics.Metrics
}

// NewAuthStore creates an auth store and rehydrates it from storage
func NewAuthStore(ctx context.Context, storage state.Storage, opts state.Options) *AuthStore {
	s := &AuthStore{
		persister: state.NewPersister[AuthState](storage, StorageKey, opts),
		metrics:   opts.Metrics,
	}

	if st, ok := s.persister.Restore(ctx); ok && st.IsAuthenticated && st.User != nil {
		s.state = st
	}

	return s
}

// Login signs the session in when both email and password are non-empty
func (s *AuthStore) Login(ctx context.Context, email, password string) bool {
	if email == "" || password == "" {
		return false
	}

	s.mutate(ctx, "login", func(st *AuthState) {
		st.IsAuthenticated = true
		st.User = newAuthUser(email)
	})
	return true
}

// Logout clears the authenticated flag and the user record
func (s *AuthStore) Logout(ctx context.Context) {
	s.mutate(ctx, "logout", func(st *AuthState) {
		*st = AuthState{}
	})
}

// IsAuthenticated reports whether the session is signed in
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsAuthenticated
}

// User returns a copy of the signed-in user
func (s *AuthStore) User() (AuthUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return AuthUser{}, false
	}
	return *s.state.User, true
}

// Subscribe registers fn to receive the auth state after every change
func (s *AuthStore) Subscribe(fn func(AuthState)) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

func (s *AuthStore) mutate(ctx context.Context, op string, fn func(*AuthState)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.snapshot()
	_ = s.persister.Persist(ctx, snapshot)
	s.mu.Unlock()

	s.metrics.ObserveMutation(StorageKey, op)
	s.notifier.Notify(snapshot)
}

func (s *AuthStore) snapshot() AuthState {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
