// Package device provides playback.OutputSink implementations for real
// audio hardware and for running without one.
package device
