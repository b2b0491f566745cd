// Package viz provides terminal presentation for Voigt string trajectories.
//
//   - [Styles]: lipgloss styles derived from a [Theme]
//   - [Canvas]: Braille-based pixel canvas
//   - [Replay]: Bubble Tea model that plays back a simulated series
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from t = 0
//	[ ]   - Scrub backward/forward one second
//	+ -   - Change playback speed
//	T     - Cycle color themes
//	Q     - Quit
package viz
