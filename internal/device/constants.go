package device

import "time"

const (
	// DefaultBufferBlocks is the device ring size in blocks.
	DefaultBufferBlocks = 2

	// DefaultDrainTimeout bounds the wait for queued audio on Stop.
	DefaultDrainTimeout = 2 * time.Second
)
