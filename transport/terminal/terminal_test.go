package terminal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockfall/game/clock"
	"github.com/wricardo/blockfall/game/config"
	"github.com/wricardo/blockfall/game/engine"
	"github.com/wricardo/blockfall/game/service"
	"github.com/wricardo/blockfall/game/session"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func textAt(screen tcell.Screen, x, y, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = runeAt(screen, x+i, y)
	}
	return string(out)
}

type recordingPlayer struct {
	events []service.GameEvent
}

func (p *recordingPlayer) Handle(events []service.GameEvent) {
	p.events = append(p.events, events...)
}

func newTestApp(t *testing.T, kinds ...engine.Kind) (*App, tcell.SimulationScreen, *clock.MockTimeProvider, *recordingPlayer) {
	t.Helper()

	sessions := session.NewManager(session.WithSourceFactory(func(*engine.Ruleset) engine.PieceSource {
		return engine.NewSequenceSource(kinds...)
	}))
	configs, err := config.NewManager(filepath.Join(t.TempDir(), "none"))
	require.NoError(t, err)
	svc := service.NewGameService(sessions, configs)

	info, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)

	screen := newSimScreen(t)
	clk := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	player := &recordingPlayer{}

	app, err := NewApp(svc, screen, info.ID, Options{Sound: player, Clock: clk})
	require.NoError(t, err)
	return app, screen, clk, player
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestRenderer_DrawsBoardAndActivePiece(t *testing.T) {
	screen := newSimScreen(t)
	state := engine.InitGameState(nil)
	state.Running = true
	state.Active = engine.NewPiece(engine.KindO, 10)
	state.Next = engine.NewPiece(engine.KindI, 10)
	state.Board[19][0] = engine.Cell(engine.KindL)

	NewRenderer(screen).Draw(state)

	ox, oy := BoardOrigin()
	assert.Equal(t, '┌', runeAt(screen, ox-1, oy-1))
	assert.Equal(t, '┘', runeAt(screen, ox+20, oy+20))

	// O at columns 4-5 of row 0, each cell two screen columns
	assert.Equal(t, "████", textAt(screen, ox+8, oy, 4))
	assert.Equal(t, " ·", textAt(screen, ox, oy, 2))
	assert.Equal(t, "██", textAt(screen, ox, oy+19, 2))

	px := ox + 20 + 1 + panelGap
	assert.Equal(t, "NEXT", textAt(screen, px, oy-1, 4))
	assert.Equal(t, "████████", textAt(screen, px, oy, 8))
	assert.Equal(t, "Score  0", textAt(screen, px, oy+3, 8))
}

func TestRenderer_Banners(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen)
	ox, oy := BoardOrigin()
	bannerX, bannerY := ox+20+1+panelGap, oy+8

	state := engine.InitGameState(nil)
	r.Draw(state)
	assert.Equal(t, "Press Space", textAt(screen, bannerX, bannerY, 11))

	state.Running, state.Paused = true, true
	r.Draw(state)
	assert.Equal(t, "PAUSED", textAt(screen, bannerX, bannerY, 6))

	state.Running, state.Paused, state.GameOver = false, false, true
	state.Active = engine.NewPiece(engine.KindO, 10)
	r.Draw(state)
	assert.Equal(t, "GAME OVER", textAt(screen, bannerX, bannerY, 9))
	assert.Equal(t, " ·", textAt(screen, ox+8, oy, 2), "active piece hidden after game over")
}

func TestApp_KeysMovePiece(t *testing.T) {
	app, _, _, _ := newTestApp(t, engine.KindT)
	require.Equal(t, 4, app.State().Active.Pos.X)

	assert.True(t, app.HandleEvent(key(tcell.KeyLeft, 0)))
	assert.True(t, app.HandleEvent(key(tcell.KeyRune, 'a')))
	assert.Equal(t, 2, app.State().Active.Pos.X)

	assert.True(t, app.HandleEvent(key(tcell.KeyUp, 0)))
	assert.Equal(t, 1, app.State().Active.Rotation)

	assert.True(t, app.HandleEvent(key(tcell.KeyRune, 's')))
	assert.Equal(t, 1, app.State().Active.Pos.Y)

	assert.True(t, app.HandleEvent(key(tcell.KeyRune, 'x')))
	assert.False(t, app.HandleEvent(key(tcell.KeyRune, 'q')))
	assert.False(t, app.HandleEvent(key(tcell.KeyEscape, 0)))
}

func TestApp_PauseIgnoresMovesAndGravity(t *testing.T) {
	app, _, clk, _ := newTestApp(t, engine.KindO)
	app.scheduler.Frame(clk.Now())

	app.HandleEvent(key(tcell.KeyRune, ' '))
	assert.Equal(t, engine.PhasePaused, app.State().Phase())

	app.HandleEvent(key(tcell.KeyLeft, 0))
	assert.Equal(t, 4, app.State().Active.Pos.X)

	clk.Advance(10 * time.Second)
	assert.False(t, app.scheduler.Frame(clk.Now()))
	assert.Equal(t, 0, app.State().Active.Pos.Y)

	app.HandleEvent(key(tcell.KeyRune, ' '))
	assert.Equal(t, engine.PhaseRunning, app.State().Phase())
	assert.False(t, app.scheduler.Frame(clk.Now()), "no drop on the resume frame")

	clk.Advance(1001 * time.Millisecond)
	assert.True(t, app.scheduler.Frame(clk.Now()))
	assert.Equal(t, 1, app.State().Active.Pos.Y)
}

func TestApp_GravityLocksAndReportsEvents(t *testing.T) {
	app, _, clk, player := newTestApp(t, engine.KindO)
	app.scheduler.Frame(clk.Now())

	for i := 0; i < 19; i++ {
		clk.Advance(1001 * time.Millisecond)
		require.True(t, app.scheduler.Frame(clk.Now()))
	}

	assert.Equal(t, 3, app.State().PiecesSpawned)
	var types []service.EventType
	for _, ev := range player.events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, service.EventDrop)
	assert.Contains(t, types, service.EventLock)
}

func TestApp_RestartAfterGameOver(t *testing.T) {
	app, _, _, _ := newTestApp(t, engine.KindO)

	// Stack Os in the spawn columns until the next one cannot spawn
	for i := 0; i < 200 && !app.State().GameOver; i++ {
		app.Tick()
	}
	require.True(t, app.State().GameOver)

	app.HandleEvent(key(tcell.KeyLeft, 0))
	assert.True(t, app.State().GameOver)

	app.HandleEvent(key(tcell.KeyRune, ' '))
	assert.Equal(t, engine.PhaseRunning, app.State().Phase())
	assert.Equal(t, 0, engine.CountFilledCells(app.State().Board))
}

func TestApp_RunQuitsOnKey(t *testing.T) {
	app, screen, _, _ := newTestApp(t, engine.KindO)

	done := make(chan error, 1)
	go func() {
		done <- app.Run(context.Background())
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit key")
	}
}

func TestApp_RunStopsOnContext(t *testing.T) {
	app, _, _, _ := newTestApp(t, engine.KindO)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, app.Run(ctx))
}
