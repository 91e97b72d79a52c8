// Package session holds the client-side authentication state of the app:
// who is logged in, whether a login is in flight, and the last auth error.
// The store is the single writer; any number of readers observe it through
// Snapshot or Subscribe. A configurable subset of the state survives
// restarts through a pluggable SessionStorage.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/georgemunganga/ntumai-core/internal/api/metrics"
	"github.com/georgemunganga/ntumai-core/internal/core/domain"
	"github.com/georgemunganga/ntumai-core/internal/core/ports"
)

const (
	defaultLoginTimeout = 10 * time.Second
	genericLoginError   = "Login failed. Please try again."
)

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	User         *domain.User
	Token        string
	RefreshToken string
	ExpiresIn    int64

	IsAuthenticated bool
	IsLoading       bool
	// IsInitializing stays true until Rehydrate has run. Readers must treat
	// it as "unknown", never as "logged out".
	IsInitializing bool
	Err            string
}

// Store is the persistent session store. Construct with New, call Rehydrate
// once at startup, then mutate only through its methods.
type Store struct {
	client  ports.AuthClient
	storage ports.SessionStorage
	log     zerolog.Logger

	loginTimeout time.Duration

	mu   sync.RWMutex
	snap Snapshot

	lmu       sync.Mutex
	listeners map[int]func(Snapshot)
	nextID    int
}

// Option configures a Store.
type Option func(*Store)

// WithLoginTimeout bounds the remote login call. Without it a hung backend
// would leave IsLoading set forever.
func WithLoginTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.loginTimeout = d
		}
	}
}

// New creates a Store. storage may be nil, in which case nothing persists
// and Rehydrate only clears IsInitializing.
func New(client ports.AuthClient, storage ports.SessionStorage, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		client:       client,
		storage:      storage,
		log:          log,
		loginTimeout: defaultLoginTimeout,
		snap:         Snapshot{IsInitializing: true},
		listeners:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current session state. The User pointer is
// cloned so callers cannot mutate the store through it.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneLocked()
}

func (s *Store) cloneLocked() Snapshot {
	snap := s.snap
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// Subscribe registers fn to be called with a fresh snapshot after every
// mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()
	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) notify() {
	snap := s.Snapshot()
	s.lmu.Lock()
	fns := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// Rehydrate restores persisted state into memory. Any storage failure,
// missing snapshot, or snapshot violating the authenticated invariant is
// treated as "no prior session". Always clears IsInitializing.
func (s *Store) Rehydrate(ctx context.Context) {
	var restored *domain.PersistedSession
	if s.storage != nil {
		loaded, err := s.storage.Load(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("session rehydration failed, starting logged out")
			metrics.SessionRehydrationsTotal.WithLabelValues("error").Inc()
		case loaded == nil:
			metrics.SessionRehydrationsTotal.WithLabelValues("empty").Inc()
		default:
			restored = loaded
			metrics.SessionRehydrationsTotal.WithLabelValues("restored").Inc()
		}
	}

	s.mu.Lock()
	if restored != nil && restored.IsAuthenticated && restored.User != nil && restored.Token != "" {
		s.snap.User = restored.User
		s.snap.Token = restored.Token
		s.snap.IsAuthenticated = true
	}
	s.snap.IsInitializing = false
	s.mu.Unlock()
	s.notify()
}

// Login overwrites the session unconditionally: no validation, no remote
// call. Used by pre-validated flows such as post-registration auto-login.
func (s *Store) Login(user *domain.User, token string) {
	s.mu.Lock()
	s.snap.User = user
	s.snap.Token = token
	s.snap.IsAuthenticated = true
	s.snap.IsLoading = false
	s.snap.Err = ""
	p := s.persistedLocked()
	s.mu.Unlock()
	s.save(p)
	s.notify()
}

// LoginWithCredentials validates the credentials, performs the remote login
// and updates the session. It reports success through its return value and
// the Err field only; no failure of any kind escapes it. A call made while
// another login is in flight is rejected without touching the in-flight
// attempt's state.
func (s *Store) LoginWithCredentials(ctx context.Context, creds domain.LoginCredentials) bool {
	s.mu.Lock()
	if s.snap.IsLoading {
		s.mu.Unlock()
		s.log.Warn().Msg("login rejected: another login is in flight")
		metrics.LoginsTotal.WithLabelValues("in_flight").Inc()
		return false
	}
	s.snap.IsLoading = true
	s.snap.Err = ""
	s.mu.Unlock()
	s.notify()

	if res := domain.ValidateCredentials(creds); !res.Valid {
		s.fail(strings.Join(res.Errors, ", "))
		metrics.LoginsTotal.WithLabelValues("validation_failed").Inc()
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	result, err := s.client.Login(ctx, creds)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = genericLoginError
		}
		s.fail(msg)
		metrics.LoginsTotal.WithLabelValues("transport_error").Inc()
		return false
	}

	if !result.Success || result.Data == nil || result.Data.User == nil || result.Data.Token == "" {
		msg := result.Error
		if msg == "" {
			msg = genericLoginError
		}
		s.fail(msg)
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return false
	}

	s.mu.Lock()
	s.snap.User = result.Data.User
	s.snap.Token = result.Data.Token
	s.snap.RefreshToken = result.Data.RefreshToken
	s.snap.ExpiresIn = result.Data.ExpiresIn
	s.snap.IsAuthenticated = true
	s.snap.IsLoading = false
	s.snap.Err = ""
	p := s.persistedLocked()
	s.mu.Unlock()
	s.save(p)
	s.notify()
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return true
}

// Logout resets the session to its logged-out defaults and clears the
// persisted snapshot. IsInitializing is left alone.
func (s *Store) Logout() {
	s.mu.Lock()
	init := s.snap.IsInitializing
	s.snap = Snapshot{IsInitializing: init}
	s.mu.Unlock()
	if s.storage != nil {
		if err := s.storage.Clear(context.Background()); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear persisted session")
			metrics.SessionPersistErrorsTotal.Inc()
		}
	}
	s.notify()
}

// UpdateUser merges the patch into the current user. A no-op when nobody is
// logged in.
func (s *Store) UpdateUser(patch domain.UserPatch) {
	s.mu.Lock()
	if s.snap.User == nil {
		s.mu.Unlock()
		return
	}
	u := *s.snap.User
	u.Apply(patch)
	s.snap.User = &u
	p := s.persistedLocked()
	s.mu.Unlock()
	s.save(p)
	s.notify()
}

// SetLoading sets the loading flag directly.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.snap.IsLoading = loading
	s.mu.Unlock()
	s.notify()
}

// SetError records an error message and stops any loading indicator.
func (s *Store) SetError(msg string) {
	s.fail(msg)
}

// ClearError clears the last error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.snap.Err = ""
	s.mu.Unlock()
	s.notify()
}

// IsAuthenticated reports whether a user is currently logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.IsAuthenticated
}

// CurrentRole returns the active role, if any.
func (s *Store) CurrentRole() (domain.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.snap.IsAuthenticated || s.snap.User == nil {
		return "", false
	}
	return s.snap.User.Role, true
}

// HasRole reports whether the active role equals r.
func (s *Store) HasRole(r domain.Role) bool {
	role, ok := s.CurrentRole()
	return ok && role == r
}

// Features returns the capability set of the active role. Logged-out
// sessions get an empty set.
func (s *Store) Features() domain.Features {
	role, ok := s.CurrentRole()
	if !ok {
		return domain.Features{}
	}
	return domain.FeaturesFor(role)
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.snap.Err = msg
	s.snap.IsLoading = false
	s.mu.Unlock()
	s.notify()
}

func (s *Store) persistedLocked() domain.PersistedSession {
	p := domain.PersistedSession{
		Token:           s.snap.Token,
		IsAuthenticated: s.snap.IsAuthenticated,
	}
	if s.snap.User != nil {
		u := *s.snap.User
		p.User = &u
	}
	return p
}

// save writes the snapshot to durable storage. Failures are logged and
// counted, never surfaced to the caller of the mutating action.
func (s *Store) save(p domain.PersistedSession) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Save(context.Background(), p); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session snapshot")
		metrics.SessionPersistErrorsTotal.Inc()
	}
}
