// Package guard decides whether protected content may render for the
// current session. A guard never panics and never returns an error: an
// unauthorized access resolves to a redirect or a denied render.
package guard

import (
	"sync"

	"github.com/georgemunganga/ntumai-core/internal/api/metrics"
	"github.com/georgemunganga/ntumai-core/internal/core/domain"
	"github.com/georgemunganga/ntumai-core/internal/core/ports"
	"github.com/georgemunganga/ntumai-core/internal/core/session"
)

// Outcome is a guard decision for a single evaluation.
type Outcome int

const (
	// OutcomePending means the session has not been rehydrated yet; render
	// nothing and decide later. Never redirect on a pending session.
	OutcomePending Outcome = iota
	// OutcomeAllow renders the protected content.
	OutcomeAllow
	// OutcomeRedirect renders nothing; a navigation to the configured route
	// has been (or already was) issued.
	OutcomeRedirect
	// OutcomeDeny renders the access-denied fallback without navigating.
	OutcomeDeny
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeAllow:
		return "allow"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeDeny:
		return "deny"
	default:
		return "unknown"
	}
}

const defaultLoginRoute = "/login"

// Guard protects a route with authentication and optional role requirements.
type Guard struct {
	store *session.Store
	nav   ports.Navigator

	requireAuth   bool
	allowedRoles  map[domain.Role]struct{}
	loginRoute    string
	fallbackRoute string

	mu          sync.Mutex
	redirected  bool
	lastTrigger string
}

// Option configures a Guard.
type Option func(*Guard)

// WithoutAuth disables the authentication requirement. Useful for guards
// that only gate on roles supplied by an outer guard.
func WithoutAuth() Option {
	return func(g *Guard) { g.requireAuth = false }
}

// WithRoles restricts the guard to the given roles. A session whose role is
// not in the set is denied (or redirected when a fallback route is set).
func WithRoles(roles ...domain.Role) Option {
	return func(g *Guard) {
		g.allowedRoles = make(map[domain.Role]struct{}, len(roles))
		for _, r := range roles {
			g.allowedRoles[r] = struct{}{}
		}
	}
}

// WithLoginRoute overrides the route unauthenticated sessions are sent to.
func WithLoginRoute(route string) Option {
	return func(g *Guard) { g.loginRoute = route }
}

// WithFallbackRoute switches role denial from rendering a fallback view to
// navigating to the given route.
func WithFallbackRoute(route string) Option {
	return func(g *Guard) { g.fallbackRoute = route }
}

// New creates a Guard over the store. Authentication is required by default.
func New(store *session.Store, nav ports.Navigator, opts ...Option) *Guard {
	g := &Guard{
		store:       store,
		nav:         nav,
		requireAuth: true,
		loginRoute:  defaultLoginRoute,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates the guard against the current session. It is meant to be
// called on every render or navigation; the redirect side effect fires at
// most once per unauthenticated episode, however often Check runs.
func (g *Guard) Check() Outcome {
	outcome := g.resolve()
	metrics.GuardDecisionsTotal.WithLabelValues(outcome.String()).Inc()
	return outcome
}

func (g *Guard) resolve() Outcome {
	snap := g.store.Snapshot()

	if snap.IsInitializing {
		return OutcomePending
	}

	if g.requireAuth && !snap.IsAuthenticated {
		g.navigateOnce("unauthenticated", g.loginRoute)
		return OutcomeRedirect
	}

	if len(g.allowedRoles) > 0 {
		role, ok := g.currentRole(snap)
		if !ok {
			return g.denied()
		}
		if _, allowed := g.allowedRoles[role]; !allowed {
			return g.denied()
		}
	}

	g.mu.Lock()
	g.redirected = false
	g.lastTrigger = ""
	g.mu.Unlock()
	return OutcomeAllow
}

func (g *Guard) currentRole(snap session.Snapshot) (domain.Role, bool) {
	if snap.User == nil {
		return "", false
	}
	return snap.User.Role, snap.User.Role.Valid()
}

func (g *Guard) denied() Outcome {
	if g.fallbackRoute != "" {
		g.navigateOnce("role_denied", g.fallbackRoute)
		return OutcomeRedirect
	}
	return OutcomeDeny
}

// navigateOnce fires at most once per blocking condition. The latch is keyed
// on the trigger, so moving from a role denial to an unauthenticated session
// (or back) issues a fresh navigation even before an Allow re-arms it.
func (g *Guard) navigateOnce(trigger, route string) {
	g.mu.Lock()
	fire := !g.redirected || g.lastTrigger != trigger
	g.redirected = true
	g.lastTrigger = trigger
	g.mu.Unlock()
	if fire && g.nav != nil {
		g.nav.Navigate(route)
	}
}
