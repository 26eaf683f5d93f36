// Package service provides the business logic layer for the blockfall game.
//
// The service package implements:
//   - Multi-session game management
//   - Ruleset lookup through a ConfigManager
//   - Player command and gravity tick processing
//   - Event reporting for every command and tick
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages ruleset loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (terminal, MCP) and the game
// engine. Each session owns its own engine instance. A single service mutex
// serializes every call that reaches an engine, so the terminal's input and
// gravity goroutines and concurrent MCP requests never interleave inside one
// engine operation.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Command(ctx, info.ID, service.CommandRotate)
//	result, err = gameService.Tick(ctx, info.ID)
//
// Commands:
//
// left, right and down shift the active piece by one cell. rotate advances the
// piece one rotation state. pause toggles the paused flag of a running game and
// restart starts a fresh game from any phase. Movement commands are refused
// while the game is paused, over, or not yet started; a refused command reports
// a blocked event rather than an error.
//
// Ticks:
//
// Tick applies one gravity step. The returned events describe what happened:
// a drop, or a lock optionally followed by line_clear, level_up and game_over.
//
// Results:
//
// Every CommandResult carries a deep copy of the game state, so callers may
// keep or render it without holding any lock.
package service
