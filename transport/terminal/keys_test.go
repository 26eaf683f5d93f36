package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/wricardo/blockfall/game/engine"
	"github.com/wricardo/blockfall/game/service"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want Action
		ok   bool
	}{
		{"arrow left", tcell.KeyLeft, 0, Action{Command: service.CommandLeft}, true},
		{"arrow right", tcell.KeyRight, 0, Action{Command: service.CommandRight}, true},
		{"arrow down", tcell.KeyDown, 0, Action{Command: service.CommandDown}, true},
		{"arrow up rotates", tcell.KeyUp, 0, Action{Command: service.CommandRotate}, true},
		{"a", tcell.KeyRune, 'a', Action{Command: service.CommandLeft}, true},
		{"D upper case", tcell.KeyRune, 'D', Action{Command: service.CommandRight}, true},
		{"s", tcell.KeyRune, 's', Action{Command: service.CommandDown}, true},
		{"w", tcell.KeyRune, 'w', Action{Command: service.CommandRotate}, true},
		{"space", tcell.KeyRune, ' ', Action{Command: service.CommandPause}, true},
		{"r", tcell.KeyRune, 'r', Action{Command: service.CommandRestart}, true},
		{"q", tcell.KeyRune, 'q', Action{Quit: true}, true},
		{"escape", tcell.KeyEscape, 0, Action{Quit: true}, true},
		{"ctrl-c", tcell.KeyCtrlC, 0, Action{Quit: true}, true},
		{"unbound rune", tcell.KeyRune, 'x', Action{}, false},
		{"unbound key", tcell.KeyF1, 0, Action{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapKey(tt.key, tt.r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterCommand(t *testing.T) {
	tests := []struct {
		phase engine.Phase
		cmd   service.Command
		want  service.Command
		ok    bool
	}{
		{engine.PhaseRunning, service.CommandLeft, service.CommandLeft, true},
		{engine.PhaseRunning, service.CommandPause, service.CommandPause, true},
		{engine.PhasePaused, service.CommandLeft, "", false},
		{engine.PhasePaused, service.CommandRotate, "", false},
		{engine.PhasePaused, service.CommandPause, service.CommandPause, true},
		{engine.PhasePaused, service.CommandRestart, service.CommandRestart, true},
		{engine.PhaseGameOver, service.CommandDown, "", false},
		{engine.PhaseGameOver, service.CommandPause, service.CommandRestart, true},
		{engine.PhaseNotStarted, service.CommandPause, service.CommandRestart, true},
		{engine.PhaseNotStarted, service.CommandRight, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase)+"/"+string(tt.cmd), func(t *testing.T) {
			got, ok := FilterCommand(tt.cmd, tt.phase)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
