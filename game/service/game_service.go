package service

import (
	"context"
	"time"

	"github.com/wricardo/blockfall/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, rulesetName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Command(ctx context.Context, sessionID string, cmd Command) (*CommandResult, error)
	Tick(ctx context.Context, sessionID string) (*CommandResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Rulesets
	ListRulesets(ctx context.Context) ([]*RulesetInfo, error)
	LoadRuleset(ctx context.Context, name string) (*engine.Ruleset, error)
	SaveRuleset(ctx context.Context, name string, rules *engine.Ruleset) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, rules *engine.Ruleset) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles ruleset loading
type ConfigManager interface {
	LoadRuleset(name string) (*engine.Ruleset, error)
	ListRulesets() ([]*RulesetInfo, error)
	GetDefault() *engine.Ruleset
	SaveRuleset(name string, rules *engine.Ruleset) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Ruleset        *engine.Ruleset
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
