package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Session lifecycle
	Start()
	Restart()
	Tick() TickResult
	TogglePause() bool
	Phase() Phase

	// Player commands
	Move(dx, dy int) bool
	Rotate() bool

	// Game state
	GetState() *GameState
	Snapshot() *GameState
	SetState(state *GameState) error
	IsRunning() bool
	IsPaused() bool
	IsGameOver() bool
	GetScore() int
	GetLines() int
	GetLevel() int
	GetGravityInterval() time.Duration
	GetActivePiece() *Piece
	GetNextPiece() *Piece

	// Configuration
	GetRuleset() *Ruleset
}

// GameEngine implements the Engine interface. It is not safe for concurrent use;
// callers serialize access.
type GameEngine struct {
	state  *GameState
	rules  *Ruleset
	source PieceSource
}

// NewEngine creates a new game engine for a ruleset. A nil source draws pieces
// uniformly at random, seeded from the ruleset.
func NewEngine(rules *Ruleset, source PieceSource) (*GameEngine, error) {
	if err := ValidateRuleset(rules); err != nil {
		return nil, err
	}
	if source == nil {
		source = NewRandomSource(rules.Seed)
	}

	return &GameEngine{
		rules:  rules,
		source: source,
		state:  InitGameState(rules),
	}, nil
}

// Start clears the board, resets progression and spawns the active and next pieces.
func (e *GameEngine) Start() {
	state := InitGameState(e.rules)
	state.Active = e.spawn()
	state.Next = e.spawn()
	state.PiecesSpawned = 2
	state.Running = true
	state.Message = "Game started"
	e.state = state
}

// Restart behaves exactly like Start and may be called from any phase.
func (e *GameEngine) Restart() {
	e.Start()
}

// Tick applies one gravity step. When the active piece cannot fall it is locked,
// full lines are cleared and scored, the next piece is promoted and a new next piece
// is drawn. If the promoted piece cannot be placed the game ends without touching the board.
func (e *GameEngine) Tick() TickResult {
	var result TickResult
	gs := e.state
	if !gs.Running || gs.Paused || gs.Active == nil {
		return result
	}

	if gs.MovePiece(0, 1) {
		result.Moved = true
		return result
	}

	gs.LockPiece()
	result.Locked = true

	prevLevel := gs.Level
	result.LinesCleared = gs.ClearFullLines()
	result.ScoreDelta = gs.ApplyLineClear(result.LinesCleared, e.rules)
	result.LevelUp = gs.Level > prevLevel
	switch {
	case result.LevelUp:
		gs.Message = fmt.Sprintf("Level %d!", gs.Level)
	case result.LinesCleared > 0:
		gs.Message = fmt.Sprintf("Cleared %d line(s) for %d points", result.LinesCleared, result.ScoreDelta)
	}

	gs.Active = gs.Next
	gs.Next = e.spawn()
	gs.PiecesSpawned++

	if !gs.CanPlace(*gs.Active) {
		gs.Running = false
		gs.Paused = false
		gs.GameOver = true
		gs.Message = fmt.Sprintf("Game over! Final score: %d", gs.Score)
		result.GameOver = true
	}

	return result
}

// TogglePause flips the paused flag while running and returns the resulting paused state.
func (e *GameEngine) TogglePause() bool {
	if !e.state.Running {
		return e.state.Paused
	}

	e.state.Paused = !e.state.Paused
	if e.state.Paused {
		e.state.Message = "Paused"
	} else {
		e.state.Message = "Resumed"
	}
	return e.state.Paused
}

// Phase reports the session state machine position
func (e *GameEngine) Phase() Phase {
	return e.state.Phase()
}

// Move shifts the active piece by (dx, dy). It is refused while the game is not running or is paused.
func (e *GameEngine) Move(dx, dy int) bool {
	if !e.acceptsInput() {
		return false
	}
	return e.state.MovePiece(dx, dy)
}

// Rotate advances the active piece one rotation state if it fits in place.
func (e *GameEngine) Rotate() bool {
	if !e.acceptsInput() {
		return false
	}
	return e.state.RotatePiece()
}

// GetState returns the live game state. Callers must not mutate it.
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the game state for readers such as renderers.
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// SetState replaces the game state, recomputing level and gravity from its line total.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Board.Width() != e.rules.Width || state.Board.Height() != e.rules.Height {
		return fmt.Errorf("state board is %dx%d, ruleset requires %dx%d",
			state.Board.Width(), state.Board.Height(), e.rules.Width, e.rules.Height)
	}
	for y, row := range state.Board {
		if len(row) != e.rules.Width {
			return fmt.Errorf("state board row %d has width %d, ruleset requires %d", y, len(row), e.rules.Width)
		}
		for x, v := range row {
			if v != Empty && !Kind(v).Valid() {
				return fmt.Errorf("state board cell (%d,%d) holds invalid value %d", x, y, uint8(v))
			}
		}
	}
	for _, p := range []*Piece{state.Active, state.Next} {
		if p == nil {
			continue
		}
		if !p.Kind.Valid() {
			return fmt.Errorf("state holds invalid piece kind %d", uint8(p.Kind))
		}
		if n := len(RotationStates(p.Kind)); p.Rotation < 0 || p.Rotation >= n {
			return fmt.Errorf("state piece %s has rotation %d, want 0..%d", p.Kind, p.Rotation, n-1)
		}
	}
	if state.Active != nil && !state.GameOver && !state.CanPlace(*state.Active) {
		return fmt.Errorf("state active piece %s at (%d,%d) does not fit the board",
			state.Active.Kind, state.Active.Pos.X, state.Active.Pos.Y)
	}
	if state.Lines < 0 || state.Score < 0 {
		return fmt.Errorf("state counters cannot be negative")
	}

	state.RecomputeProgression(e.rules)
	e.state = state
	return nil
}

// IsRunning reports whether a game is in progress (paused or not)
func (e *GameEngine) IsRunning() bool {
	return e.state.Running
}

// IsPaused reports whether the running game is paused
func (e *GameEngine) IsPaused() bool {
	return e.state.Paused
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetLines returns the cumulative cleared lines
func (e *GameEngine) GetLines() int {
	return e.state.Lines
}

// GetLevel returns the current level
func (e *GameEngine) GetLevel() int {
	return e.state.Level
}

// GetGravityInterval returns the time between forced drops at the current level
func (e *GameEngine) GetGravityInterval() time.Duration {
	return time.Duration(e.state.GravityIntervalMs) * time.Millisecond
}

// GetActivePiece returns the falling piece, or nil before the first start
func (e *GameEngine) GetActivePiece() *Piece {
	return e.state.Active
}

// GetNextPiece returns the queued piece, or nil before the first start
func (e *GameEngine) GetNextPiece() *Piece {
	return e.state.Next
}

// GetRuleset returns the engine's ruleset
func (e *GameEngine) GetRuleset() *Ruleset {
	return e.rules
}

func (e *GameEngine) acceptsInput() bool {
	return e.state.Running && !e.state.Paused
}

func (e *GameEngine) spawn() *Piece {
	kind := e.source.Next()
	if !kind.Valid() {
		kind = KindO
	}
	return NewPiece(kind, e.rules.Width)
}
