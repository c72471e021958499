package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"portfolio/internal/domain/models"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultInactivityTimeout ends an admin session after two idle minutes.
const DefaultInactivityTimeout = 2 * time.Minute

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Policy reports whether a session last active at last has expired at now.
type Policy func(last, now time.Time) bool

// InactivityPolicy expires a session once timeout has passed without activity.
func InactivityPolicy(timeout time.Duration) Policy {
	return func(last, now time.Time) bool {
		return now.Sub(last) >= timeout
	}
}

type State struct {
	ID           string
	AdminID      string
	StartedAt    time.Time
	LastActivity time.Time
}

// Tracker holds live admin sessions. Liveness is decided by the policy
// against the injected clock; the cache TTL only bounds how long abandoned
// sessions are kept in memory.
type Tracker struct {
	log    *slog.Logger
	clock  Clock
	policy Policy

	mu       sync.Mutex
	sessions *cache.Cache
}

func NewTracker(log *slog.Logger, clock Clock, policy Policy, retention time.Duration) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	if policy == nil {
		policy = InactivityPolicy(DefaultInactivityTimeout)
	}
	if retention <= 0 {
		retention = time.Hour
	}

	return &Tracker{
		log:      log,
		clock:    clock,
		policy:   policy,
		sessions: cache.New(retention, retention),
	}
}

// Start opens a session for an admin.
func (t *Tracker) Start(adminID string) State {
	now := t.clock.Now()
	st := State{
		ID:           uuid.NewString(),
		AdminID:      adminID,
		StartedAt:    now,
		LastActivity: now,
	}

	t.mu.Lock()
	t.sessions.SetDefault(st.ID, st)
	t.mu.Unlock()

	t.log.Debug("session started", slog.String("session_id", st.ID), slog.String("admin_id", adminID))

	return st
}

// Touch records activity on a live session. An expired session is dropped.
func (t *Tracker) Touch(id string) error {
	const op = "session_service.Touch"

	t.mu.Lock()
	defer t.mu.Unlock()

	st, err := t.live(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	st.LastActivity = t.clock.Now()
	t.sessions.SetDefault(id, st)
	return nil
}

// Active reports whether a session exists and has not expired.
func (t *Tracker) Active(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.live(id)
	return err == nil
}

// Get returns the state of a live session.
func (t *Tracker) Get(id string) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.live(id)
}

func (t *Tracker) End(id string) {
	t.mu.Lock()
	t.sessions.Delete(id)
	t.mu.Unlock()
}

// live must be called with mu held.
func (t *Tracker) live(id string) (State, error) {
	v, ok := t.sessions.Get(id)
	if !ok {
		return State{}, models.ErrSessionNotFound
	}
	st := v.(State)

	if t.policy(st.LastActivity, t.clock.Now()) {
		t.sessions.Delete(id)
		t.log.Debug("session expired", slog.String("session_id", id), slog.String("admin_id", st.AdminID))
		return State{}, models.ErrSessionExpired
	}
	return st, nil
}
