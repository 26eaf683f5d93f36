// Package terminal plays blockfall in a terminal using tcell.
//
// App owns the loop: a goroutine polls tcell events into a channel and the
// main loop selects between that channel and a frame ticker. Key presses are
// mapped to service commands, gravity comes from a clock.Scheduler fed by
// the frames, and Renderer redraws the latest snapshot after every change.
//
// While the game is paused, over or not yet started only Space, R and quit
// keys do anything. Space starts a new game from the not-started and
// game-over screens.
package terminal
