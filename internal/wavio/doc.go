// Package wavio adapts WAV files to the playback interfaces: Source reads a
// file as normalized float32 frames and RenderSink writes a session's output
// to a new file.
package wavio
