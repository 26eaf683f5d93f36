// Package sound plays short sine-tone cues for game events.
//
// Line clears play one rising note per line, a level up plays a two-note
// chime and game over a falling pair. Everything else is silent except a
// short click on lock. Speaker needs an audio device; when it cannot be
// initialized, callers use Nop instead.
package sound
