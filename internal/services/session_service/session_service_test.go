package services_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"portfolio/internal/domain/models"
	services "portfolio/internal/services/session_service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTracker() (*services.Tracker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return services.NewTracker(log, clock, services.InactivityPolicy(2*time.Minute), time.Hour), clock
}

func TestTracker_ExpiresAfterInactivity(t *testing.T) {
	tracker, clock := newTracker()

	st := tracker.Start("admin-1")
	assert.True(t, tracker.Active(st.ID))

	clock.Advance(2*time.Minute - time.Second)
	assert.True(t, tracker.Active(st.ID))

	clock.Advance(time.Second)
	assert.False(t, tracker.Active(st.ID))

	err := tracker.Touch(st.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestTracker_TouchExtends(t *testing.T) {
	tracker, clock := newTracker()

	st := tracker.Start("admin-1")

	for i := 0; i < 5; i++ {
		clock.Advance(90 * time.Second)
		require.NoError(t, tracker.Touch(st.ID))
	}

	got, err := tracker.Get(st.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", got.AdminID)
	assert.Equal(t, st.StartedAt.Add(450*time.Second), got.LastActivity)

	clock.Advance(2 * time.Minute)
	assert.ErrorIs(t, tracker.Touch(st.ID), models.ErrSessionExpired)
}

func TestTracker_End(t *testing.T) {
	tracker, _ := newTracker()

	st := tracker.Start("admin-1")
	tracker.End(st.ID)

	assert.False(t, tracker.Active(st.ID))
	_, err := tracker.Get(st.ID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestTracker_CustomPolicy(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	never := func(last, now time.Time) bool { return false }
	tracker := services.NewTracker(slog.New(slog.NewTextHandler(io.Discard, nil)), clock, never, time.Hour)

	st := tracker.Start("admin-1")
	clock.Advance(24 * time.Hour)
	assert.True(t, tracker.Active(st.ID))
}

func TestInactivityPolicy(t *testing.T) {
	policy := services.InactivityPolicy(time.Minute)
	last := time.Unix(1000, 0)

	assert.False(t, policy(last, last))
	assert.False(t, policy(last, last.Add(59*time.Second)))
	assert.True(t, policy(last, last.Add(time.Minute)))
}
