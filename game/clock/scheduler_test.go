package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockfall/game/engine"
)

type fakeTarget struct {
	mu       sync.Mutex
	active   bool
	interval time.Duration
	ticks    int
}

func (f *fakeTarget) Gravity() (bool, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.interval
}

func (f *fakeTarget) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks++
}

func (f *fakeTarget) set(active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = active
}

func (f *fakeTarget) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticks
}

// engineTarget adapts a bare engine for scheduler tests
type engineTarget struct {
	eng *engine.GameEngine
}

func (e engineTarget) Gravity() (bool, time.Duration) {
	return e.eng.IsRunning() && !e.eng.IsPaused(), e.eng.GetGravityInterval()
}

func (e engineTarget) Tick() {
	e.eng.Tick()
}

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestScheduler_TicksAfterIntervalElapses(t *testing.T) {
	target := &fakeTarget{active: true, interval: time.Second}
	clk := NewMockTimeProvider(start)
	s := NewScheduler(target, clk)

	// First active frame only establishes the reference
	assert.False(t, s.Frame(clk.Now()))

	clk.Advance(time.Second)
	assert.False(t, s.Frame(clk.Now()), "exactly one interval is not enough")

	clk.Advance(time.Millisecond)
	assert.True(t, s.Frame(clk.Now()))
	assert.Equal(t, 1, target.count())

	// The tick moved the reference to the tick frame
	clk.Advance(time.Second)
	assert.False(t, s.Frame(clk.Now()))
	clk.Advance(time.Millisecond)
	assert.True(t, s.Frame(clk.Now()))
	assert.Equal(t, 2, target.count())
}

func TestScheduler_AtMostOneTickPerFrame(t *testing.T) {
	target := &fakeTarget{active: true, interval: 100 * time.Millisecond}
	clk := NewMockTimeProvider(start)
	s := NewScheduler(target, clk)
	s.Frame(clk.Now())

	clk.Advance(time.Second)
	assert.True(t, s.Frame(clk.Now()))
	assert.False(t, s.Frame(clk.Now()))
	assert.Equal(t, 1, target.count())
}

func TestScheduler_NoTicksWhilePaused(t *testing.T) {
	target := &fakeTarget{active: true, interval: 100 * time.Millisecond}
	clk := NewMockTimeProvider(start)
	s := NewScheduler(target, clk)
	s.Frame(clk.Now())

	target.set(false)
	for i := 0; i < 10; i++ {
		clk.Advance(time.Second)
		assert.False(t, s.Frame(clk.Now()))
	}
	assert.Equal(t, 0, target.count())
}

func TestScheduler_ResumeDoesNotDropImmediately(t *testing.T) {
	target := &fakeTarget{active: true, interval: 100 * time.Millisecond}
	clk := NewMockTimeProvider(start)
	s := NewScheduler(target, clk)
	s.Frame(clk.Now())

	target.set(false)
	clk.Advance(5 * time.Second)
	s.Frame(clk.Now())

	target.set(true)
	assert.False(t, s.Frame(clk.Now()), "resume frame must not drop")

	clk.Advance(50 * time.Millisecond)
	assert.False(t, s.Frame(clk.Now()))

	clk.Advance(60 * time.Millisecond)
	assert.True(t, s.Frame(clk.Now()))
	assert.Equal(t, 1, target.count())
}

func TestScheduler_Reset(t *testing.T) {
	target := &fakeTarget{active: true, interval: 100 * time.Millisecond}
	clk := NewMockTimeProvider(start)
	s := NewScheduler(target, clk)
	s.Frame(clk.Now())

	clk.Advance(90 * time.Millisecond)
	s.Reset(clk.Now())

	clk.Advance(90 * time.Millisecond)
	assert.False(t, s.Frame(clk.Now()))
	assert.Equal(t, 0, target.count())
}

func TestScheduler_DrivesEngine(t *testing.T) {
	eng, err := engine.NewEngine(engine.DefaultRuleset(), engine.NewSequenceSource(engine.KindO))
	require.NoError(t, err)
	eng.Start()

	clk := NewMockTimeProvider(start)
	s := NewScheduler(engineTarget{eng}, clk)
	s.Frame(clk.Now())

	// 16ms frames against a 1000ms gravity interval
	for i := 0; i < 62; i++ {
		clk.Advance(16 * time.Millisecond)
		s.Frame(clk.Now())
	}
	assert.Equal(t, 0, eng.GetActivePiece().Pos.Y)

	clk.Advance(16 * time.Millisecond)
	assert.True(t, s.Frame(clk.Now()))
	assert.Equal(t, 1, eng.GetActivePiece().Pos.Y)

	eng.TogglePause()
	clk.Advance(10 * time.Second)
	assert.False(t, s.Frame(clk.Now()))
	assert.Equal(t, 1, eng.GetActivePiece().Pos.Y)
}

func TestScheduler_Run(t *testing.T) {
	target := &fakeTarget{active: true, interval: time.Millisecond}
	s := NewScheduler(target, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, 2*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, target.count(), 0)
}
