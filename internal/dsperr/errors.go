// Package dsperr defines the error kinds shared by the filter, meter and
// playback packages. Callers match them with errors.Is; operations wrap
// them with context using fmt.Errorf("%w: ...").
package dsperr

import "errors"

var (
	// ErrInvalidConfiguration indicates zero order/channels, missing or
	// malformed coefficients, or bad scaling parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoBuffer indicates an absent or undersized sample buffer.
	ErrNoBuffer = errors.New("no sample buffer")

	// ErrNoVisualizer indicates a bar pattern write with no visual sink attached.
	ErrNoVisualizer = errors.New("no visualizer attached")

	// ErrDeviceWrite indicates the output sink rejected a write mid-stream.
	ErrDeviceWrite = errors.New("output device write failed")

	// ErrBlockTooShort indicates a block with fewer frames than the filter order.
	ErrBlockTooShort = errors.New("block shorter than filter order")

	// ErrNoSource indicates playback was requested without a sample source.
	ErrNoSource = errors.New("no sample source")

	// ErrSessionActive indicates Run was called on a session that is already streaming.
	ErrSessionActive = errors.New("session already active")
)
