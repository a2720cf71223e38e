// Package display abstracts the display-server connection the protocol
// engine talks to.
//
// The engine needs very little from the windowing system: create and
// destroy an invisible proxy window, broadcast fixed-size client-message
// chunks to the root window, set one string property, and observe the
// chunks other clients broadcast. Conn captures exactly that surface.
//
// Two implementations exist:
//
//   - X11: the real wire implementation over jezek/xgb
//   - Memory: an in-process display for tests and headless runs
package display
