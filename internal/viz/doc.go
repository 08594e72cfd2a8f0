// Package viz renders lesson diagrams in the terminal.
//
// The player is a Bubble Tea program built around [Model], which drives an
// [anim.Animator] from tea.Tick and draws each frame on a Braille [Canvas].
//
// # Key Bindings
//
//	Space  - Play/Pause
//	R      - Reset to the starting positions
//	Tab    - Select the next slider
//	Up/K   - Increase the selected slider one step
//	Down/J - Decrease the selected slider one step
//	?      - Toggle help
//	Q      - Quit
//
// Slider changes are clamped to their range and restart the current run.
package viz
