// Package viz renders the debris arena in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live arena viewer with spawn controls and replay scrubbing
//   - [Canvas]: braille pixel canvas the arena draws onto
//   - [NewInteractiveApp]: scenario browser that configures and launches a viewer
//
// # Key Bindings
//
//	Space - Pause/Resume
//	E     - Burst at a random spot
//	C     - Clear all debris
//	R     - Reset to the starting burst
//	1/2/3 - Select material kind
//	[]/   - Replay scrub (rewind/forward)
//	G     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
//
// # Recording
//
// Pressing G starts capturing frames; pressing it again writes them to
// debris.gif in the current directory.
package viz
