// Package tui renders a running commit job as a bubbletea program: a
// progress bar, the current status line and a short log of recent events.
// Pressing s stops the job after the current commit; q stops it and quits
// once the job has reported its result.
package tui
