package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wricardo/blockfall/game/engine"
)

// gameServiceImpl implements the GameService interface. Its mutex is the single
// point that serializes every engine call, so the engine itself never sees
// interleaved operations.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
	now      func() time.Time
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		now:      time.Now,
	}
}

// CreateSession creates and starts a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, rulesetName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rules *engine.Ruleset
	var err error
	if rulesetName != "" {
		rules, err = s.configs.LoadRuleset(rulesetName)
		if err != nil {
			return nil, fmt.Errorf("failed to load ruleset %s: %w", rulesetName, err)
		}
	} else {
		rules = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess.Engine.Start()
	log.Printf("Session %s started with ruleset %s", sess.ID, rules.Name)

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Command applies one player action to a session
func (s *gameServiceImpl) Command(ctx context.Context, sessionID string, cmd Command) (*CommandResult, error) {
	cmd, err := ParseCommand(string(cmd))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	result := &CommandResult{Command: cmd}

	switch cmd {
	case CommandLeft, CommandRight, CommandDown:
		dx, dy := commandOffset(cmd)
		result.Success = eng.Move(dx, dy)
		if result.Success {
			result.Events = append(result.Events, s.event(EventMove, fmt.Sprintf("Moved %s", cmd)))
		} else {
			result.Events = append(result.Events, s.event(EventBlocked, blockedReason(eng, cmd)))
		}

	case CommandRotate:
		result.Success = eng.Rotate()
		if result.Success {
			result.Events = append(result.Events, s.event(EventRotate, fmt.Sprintf("Rotated to state %d", eng.GetActivePiece().Rotation)))
		} else {
			result.Events = append(result.Events, s.event(EventBlocked, blockedReason(eng, cmd)))
		}

	case CommandPause:
		if !eng.IsRunning() {
			result.Events = append(result.Events, s.event(EventBlocked, "Game is not running"))
			break
		}
		result.Success = true
		if eng.TogglePause() {
			result.Events = append(result.Events, s.event(EventPause, "Game paused"))
		} else {
			result.Events = append(result.Events, s.event(EventResume, "Game resumed"))
		}

	case CommandRestart:
		eng.Restart()
		result.Success = true
		result.Events = append(result.Events, s.event(EventRestart, "Game restarted"))
	}

	s.finish(sess, result)
	return result, nil
}

// Tick applies one gravity step to a session
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	if !eng.IsRunning() || eng.IsPaused() {
		result := &CommandResult{Success: false}
		s.finish(sess, result)
		return result, nil
	}

	tick := eng.Tick()
	result := &CommandResult{Success: true, Tick: &tick}
	result.Events = s.tickEvents(eng, tick)
	if tick.GameOver {
		log.Printf("Session %s game over: score=%d lines=%d level=%d", sess.ID, eng.GetScore(), eng.GetLines(), eng.GetLevel())
	}

	s.finish(sess, result)
	return result, nil
}

// GetGameState retrieves a snapshot of the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot(), nil
}

// ListRulesets returns all available rulesets
func (s *gameServiceImpl) ListRulesets(ctx context.Context) ([]*RulesetInfo, error) {
	return s.configs.ListRulesets()
}

// LoadRuleset loads a specific ruleset
func (s *gameServiceImpl) LoadRuleset(ctx context.Context, name string) (*engine.Ruleset, error) {
	return s.configs.LoadRuleset(name)
}

// SaveRuleset validates a ruleset and stores it under name
func (s *gameServiceImpl) SaveRuleset(ctx context.Context, name string, rules *engine.Ruleset) error {
	if err := engine.ValidateRuleset(rules); err != nil {
		return err
	}
	if err := s.configs.SaveRuleset(name, rules); err != nil {
		return fmt.Errorf("failed to save ruleset %s: %w", name, err)
	}
	log.Printf("Saved ruleset %s (%dx%d)", name, rules.Width, rules.Height)
	return nil
}

// session looks up a session and marks it accessed. Callers hold s.mu.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		log.Printf("Warning: failed to update access time for session %s: %v", sessionID, err)
	}
	return sess, nil
}

func (s *gameServiceImpl) finish(sess *Session, result *CommandResult) {
	result.GameState = sess.Engine.Snapshot()
	result.Phase = sess.Engine.Phase()
	result.Message = result.GameState.Message
	if len(result.Events) > 0 {
		if ev := result.Events[len(result.Events)-1]; ev.Type == EventBlocked {
			result.Message = ev.Message
		}
	}
}

func (s *gameServiceImpl) tickEvents(eng *engine.GameEngine, tick engine.TickResult) []GameEvent {
	var events []GameEvent

	if tick.Moved {
		return append(events, s.event(EventDrop, "Piece fell one row"))
	}
	if tick.Locked {
		events = append(events, s.event(EventLock, "Piece locked"))
	}
	if tick.LinesCleared > 0 {
		ev := s.event(EventLineClear, fmt.Sprintf("Cleared %d line(s)", tick.LinesCleared))
		ev.Lines = tick.LinesCleared
		ev.ScoreDelta = tick.ScoreDelta
		events = append(events, ev)
	}
	if tick.LevelUp {
		ev := s.event(EventLevelUp, fmt.Sprintf("Reached level %d", eng.GetLevel()))
		ev.Level = eng.GetLevel()
		events = append(events, ev)
	}
	if tick.GameOver {
		events = append(events, s.event(EventGameOver, fmt.Sprintf("Game over with %d points", eng.GetScore())))
	}

	return events
}

func (s *gameServiceImpl) event(t EventType, msg string) GameEvent {
	return GameEvent{Type: t, Message: msg, Timestamp: s.now()}
}

func commandOffset(cmd Command) (dx, dy int) {
	switch cmd {
	case CommandLeft:
		return -1, 0
	case CommandRight:
		return 1, 0
	case CommandDown:
		return 0, 1
	}
	return 0, 0
}

func blockedReason(eng *engine.GameEngine, cmd Command) string {
	switch eng.Phase() {
	case engine.PhaseNotStarted:
		return "Game has not started"
	case engine.PhasePaused:
		return "Game is paused"
	case engine.PhaseGameOver:
		return "Game is over"
	}
	return fmt.Sprintf("Can't %s: blocked", cmd)
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		RulesetName:    sess.Ruleset.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Phase:          sess.Engine.Phase(),
		GameState:      sess.Engine.Snapshot(),
		Ruleset:        sess.Ruleset,
	}
}
