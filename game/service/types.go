package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/blockfall/game/engine"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is a discrete player action delivered by an input source
type Command string

const (
	CommandLeft    Command = "left"
	CommandRight   Command = "right"
	CommandDown    Command = "down"
	CommandRotate  Command = "rotate"
	CommandPause   Command = "pause"
	CommandRestart Command = "restart"
)

// Commands lists every command an input source may send
func Commands() []Command {
	return []Command{CommandLeft, CommandRight, CommandDown, CommandRotate, CommandPause, CommandRestart}
}

// ParseCommand maps a command name (case-insensitive) to a Command
func ParseCommand(s string) (Command, error) {
	cmd := Command(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Commands() {
		if cmd == known {
			return cmd, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// EventType classifies a GameEvent
type EventType string

const (
	EventMove      EventType = "move"
	EventRotate    EventType = "rotate"
	EventBlocked   EventType = "blocked"
	EventDrop      EventType = "drop"
	EventLock      EventType = "lock"
	EventLineClear EventType = "line_clear"
	EventLevelUp   EventType = "level_up"
	EventPause     EventType = "pause"
	EventResume    EventType = "resume"
	EventRestart   EventType = "restart"
	EventGameOver  EventType = "game_over"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type       EventType `json:"type"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Lines      int       `json:"lines,omitempty"`
	ScoreDelta int       `json:"score_delta,omitempty"`
	Level      int       `json:"level,omitempty"`
}

// CommandResult contains the outcome of a command or gravity tick
type CommandResult struct {
	Command   Command            `json:"command,omitempty"`
	Success   bool               `json:"success"`
	GameState *engine.GameState  `json:"game_state"`
	Phase     engine.Phase       `json:"phase"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
	Tick      *engine.TickResult `json:"tick,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	RulesetName    string            `json:"ruleset_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Phase          engine.Phase      `json:"phase"`
	GameState      *engine.GameState `json:"game_state"`
	Ruleset        *engine.Ruleset   `json:"ruleset"`
}

// RulesetInfo provides information about a ruleset file
type RulesetInfo struct {
	Filename    string `json:"filename"`
	RulesetID   string `json:"ruleset_id"` // The identifier to use for session creation
	Name        string `json:"name"`       // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
