package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/blockfall/game/clock"
	"github.com/wricardo/blockfall/game/engine"
	"github.com/wricardo/blockfall/game/service"
	"github.com/wricardo/blockfall/transport/sound"
)

// DefaultFrameInterval is roughly 60 frames per second
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures an App
type Options struct {
	FrameInterval time.Duration
	Sound         sound.Player
	Clock         clock.TimeProvider
}

// App runs one game session in a terminal. A single goroutine handles both
// input and frames, so service calls from keys and gravity never overlap.
type App struct {
	svc       service.GameService
	sessionID string
	screen    tcell.Screen
	renderer  *Renderer
	scheduler *clock.Scheduler
	clock     clock.TimeProvider
	sound     sound.Player
	frame     time.Duration
	state     *engine.GameState
}

// NewApp creates an app for an existing session. The caller owns the screen's
// Init and Fini.
func NewApp(svc service.GameService, screen tcell.Screen, sessionID string, opts Options) (*App, error) {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Sound == nil {
		opts.Sound = sound.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealTimeProvider()
	}

	state, err := svc.GetGameState(context.Background(), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	a := &App{
		svc:       svc,
		sessionID: sessionID,
		screen:    screen,
		renderer:  NewRenderer(screen),
		clock:     opts.Clock,
		sound:     opts.Sound,
		frame:     opts.FrameInterval,
		state:     state,
	}
	a.scheduler = clock.NewScheduler(a, opts.Clock)
	return a, nil
}

// Run polls input and drives frames until the player quits or ctx is done
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	a.scheduler.Frame(a.clock.Now())
	a.renderer.Draw(a.state)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
			a.renderer.Draw(a.state)
		case <-ticker.C:
			a.scheduler.Frame(a.clock.Now())
			a.renderer.Draw(a.state)
		}
	}
}

// HandleEvent applies one terminal event and reports whether the app keeps running
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, ok := MapKey(ev.Key(), ev.Rune())
		if !ok {
			return true
		}
		if action.Quit {
			return false
		}
		a.command(action.Command)

	case *tcell.EventResize:
		a.screen.Sync()
	}

	return true
}

// State returns the latest snapshot the app has seen
func (a *App) State() *engine.GameState {
	return a.state
}

// Gravity reports whether the session's piece should fall and how often
func (a *App) Gravity() (bool, time.Duration) {
	if a.state == nil {
		return false, 0
	}
	return a.state.Running && !a.state.Paused, time.Duration(a.state.GravityIntervalMs) * time.Millisecond
}

// Tick applies one gravity step to the session
func (a *App) Tick() {
	res, err := a.svc.Tick(context.Background(), a.sessionID)
	if err != nil {
		log.Printf("tick failed: %v", err)
		return
	}
	a.apply(res)
}

func (a *App) command(cmd service.Command) {
	cmd, ok := FilterCommand(cmd, a.state.Phase())
	if !ok {
		return
	}

	res, err := a.svc.Command(context.Background(), a.sessionID, cmd)
	if err != nil {
		log.Printf("command %s failed: %v", cmd, err)
		return
	}
	a.apply(res)

	if cmd == service.CommandRestart {
		a.scheduler.Reset(a.clock.Now())
	}
}

func (a *App) apply(res *service.CommandResult) {
	if res.GameState != nil {
		a.state = res.GameState
	}
	a.sound.Handle(res.Events)
}
