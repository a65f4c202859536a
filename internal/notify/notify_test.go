package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler records scheduled callbacks so tests can fire them.
type manualScheduler struct {
	pending []func()
	delays  []time.Duration
	mu      sync.Mutex
}

func (m *manualScheduler) schedule(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
	return func() bool { return true }
}

func (m *manualScheduler) fire(i int) {
	m.mu.Lock()
	f := m.pending[i]
	m.mu.Unlock()
	f()
}

func TestNotifier_ShowsAndExpires(t *testing.T) {
	sched := &manualScheduler{}
	n := New(WithScheduler(sched.schedule))

	notice := n.Success("Call metrics saved")
	assert.Equal(t, KindSuccess, notice.Kind)

	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Call metrics saved", current.Message)
	assert.Equal(t, []time.Duration{DefaultTTL}, sched.delays)

	sched.fire(0)
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifier_StaleTimerKeepsNewerNotice(t *testing.T) {
	sched := &manualScheduler{}
	n := New(WithScheduler(sched.schedule))

	first := n.Success("Call metrics saved")
	second := n.Error("Error saving resolution data")
	assert.NotEqual(t, first.ID, second.ID)

	// The first notice's timer fires after it was superseded.
	sched.fire(0)
	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, KindError, current.Kind)

	sched.fire(1)
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifier_ExpireUnknownID(t *testing.T) {
	n := New(WithScheduler((&manualScheduler{}).schedule))
	n.Success("saved")

	assert.False(t, n.Expire(newID()))
	_, ok := n.Current()
	assert.True(t, ok)
}

func TestNotifier_Options(t *testing.T) {
	sched := &manualScheduler{}
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	n := New(
		WithTTL(500*time.Millisecond),
		WithScheduler(sched.schedule),
		WithClock(func() time.Time { return fixed }),
		WithTTL(0), // ignored
	)

	notice := n.Error("boom")
	assert.Equal(t, 500*time.Millisecond, n.TTL())
	assert.Equal(t, fixed, notice.CreatedAt)
	assert.Equal(t, uuid.Version(7), notice.ID.Version())
}

func TestNotifier_RealTimerExpires(t *testing.T) {
	n := New(WithTTL(10 * time.Millisecond))
	defer n.Close()

	n.Success("saved")
	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "success", KindSuccess.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
