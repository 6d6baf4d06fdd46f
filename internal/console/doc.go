// Package console provides the text-mode user signal and bar display for
// playback sessions: a key toggle read from a terminal or any reader, and a
// bar renderer that redraws a single status line.
package console
