// Package clock drives gravity for a running game.
//
// A Scheduler is fed display frames, either by its own Run loop or by a
// caller that already owns a frame ticker. On each frame it asks its Target
// whether gravity applies and how long the current interval is, and fires at
// most one Tick once the interval has elapsed since the last drop.
//
// Pausing is handled by the target: while it reports gravity as inactive the
// scheduler only watches. When gravity becomes active again the drop
// reference restarts at that frame.
//
// TimeProvider abstracts the clock so tests can drive the scheduler with a
// MockTimeProvider instead of sleeping.
package clock
