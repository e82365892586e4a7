// Package viz is the terminal front end of the optics bench.
//
// It implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: one live simulation drawn on a braille canvas, with mouse drag
//   - [Canvas]: Braille-based pixel canvas implementing surface.Surface
//   - a bench and preset picker started by [RunInteractive]
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset parameters
//	Tab   - Cycle parameters, ↑/↓ to tune
//	V     - Next experiment
//	E     - Toggle the single-slit envelope on the curve
//	B     - Toggle the contrast boost
//	T     - Cycle color themes
//	?     - Show help overlay
//
// Dragging with the left button moves the screen, the pointer and, for two
// sources, the sources themselves.
package viz
