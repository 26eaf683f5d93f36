// Package session provides session management for the blockfall game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short session ID generation
//   - Piece source selection for each new engine
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the session manager that handles all session operations.
// Each service.Session owns its own engine instance plus metadata like
// creation time and last access time.
//
// Session Identifiers:
//
// Generated IDs are the first 8 hex characters of a random UUID. Lookups
// are case-insensitive, so "AB12CD34" and "ab12cd34" name the same session.
//
// Storage:
//
// Sessions live in memory only and disappear when the process exits.
//
// Usage:
//
//	manager := session.NewManager(session.WithSeed(42))
//
//	sess, err := manager.Create("", engine.DefaultRuleset())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
//	// Drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
