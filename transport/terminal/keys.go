package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/blockfall/game/engine"
	"github.com/wricardo/blockfall/game/service"
)

// Action is what a key press asks the app to do
type Action struct {
	Command service.Command
	Quit    bool
}

// MapKey translates a key press into an action. ok is false for unbound keys.
//
//	←/A left   →/D right   ↓/S down   ↑/W rotate
//	Space pause   R restart   Q/Esc/Ctrl-C quit
func MapKey(key tcell.Key, r rune) (Action, bool) {
	switch key {
	case tcell.KeyLeft:
		return Action{Command: service.CommandLeft}, true
	case tcell.KeyRight:
		return Action{Command: service.CommandRight}, true
	case tcell.KeyDown:
		return Action{Command: service.CommandDown}, true
	case tcell.KeyUp:
		return Action{Command: service.CommandRotate}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Quit: true}, true
	case tcell.KeyRune:
	default:
		return Action{}, false
	}

	switch unicode.ToLower(r) {
	case 'a':
		return Action{Command: service.CommandLeft}, true
	case 'd':
		return Action{Command: service.CommandRight}, true
	case 's':
		return Action{Command: service.CommandDown}, true
	case 'w':
		return Action{Command: service.CommandRotate}, true
	case ' ':
		return Action{Command: service.CommandPause}, true
	case 'r':
		return Action{Command: service.CommandRestart}, true
	case 'q':
		return Action{Quit: true}, true
	}
	return Action{}, false
}

// FilterCommand decides what a mapped command does in the current phase.
// Only pause and restart get through while the game is paused, over or not
// started, and pause then acts as the start button when no game is running.
func FilterCommand(cmd service.Command, phase engine.Phase) (service.Command, bool) {
	switch phase {
	case engine.PhaseRunning:
		return cmd, true
	case engine.PhasePaused:
		if cmd == service.CommandPause || cmd == service.CommandRestart {
			return cmd, true
		}
	case engine.PhaseNotStarted, engine.PhaseGameOver:
		if cmd == service.CommandPause || cmd == service.CommandRestart {
			return service.CommandRestart, true
		}
	}
	return "", false
}
