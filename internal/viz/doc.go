// Package viz provides terminal visualization for stochastic sample paths.
//
// Static plots use asciigraph; the animated playback view is built on
// the Bubble Tea framework:
//
//   - [Model]: replays a finished run point by point
//   - [Canvas]: Braille-based pixel canvas for high-resolution path drawing
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the initial point
//	Q     - Quit
package viz
