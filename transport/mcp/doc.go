// Package mcp exposes the blockfall game to AI agents over the Model Context Protocol.
//
// The server speaks MCP over stdio and calls the game service directly. Tools:
//   - create_session: start a game, optionally with a named ruleset
//   - list_sessions: list active sessions
//   - game_state: text rendering of the board, next piece and counters
//   - command: left, right, down, rotate, pause or restart, optionally repeated
//   - tick: apply gravity steps, stopping at the first lock
//   - list_rulesets: list available rulesets
//   - game_instructions: rules and scoring
//
// Gravity never runs on a timer here. Agents advance the game with tick, so a
// session only changes when a tool is called.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, version)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
