// Package engine provides the core game logic for Blockfall, a falling-block puzzle.
//
// The engine package implements the game mechanics including:
//   - The seven-piece catalog and its rotation states
//   - Placement validation and collision detection
//   - Movement, in-place rotation (no kicks) and locking
//   - Line clearing, scoring and level progression
//   - The session state machine (not started, running, paused, game over)
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds the board, the active and next
// pieces and the progression counters, while Ruleset defines the board size
// and scoring tables loaded from JSON or YAML files.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultRuleset(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Start()
//	eng.Move(-1, 0)
//	eng.Rotate()
//	result := eng.Tick()
//	state := eng.Snapshot()
//
// Concurrency:
//
// GameEngine is single-threaded. It performs no locking; the clock and input
// collaborators must serialize their calls (the service layer does this).
// Operations never fail: refused moves report false, and every other call on
// a state that does not accept it is a no-op.
//
// Game Rules:
//
// Pieces fall one row per gravity tick. A piece that cannot fall locks into
// the board, full rows are removed and scored at the current level, and the
// next piece spawns at the top center. The game ends when a freshly spawned
// piece does not fit. Every 10 cleared lines raise the level, which speeds
// gravity up by 50ms down to a 50ms floor.
package engine
