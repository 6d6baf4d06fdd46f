package playback

import "time"

const (
	// blocksPerSecond sets the default block to an eighth of a second.
	blocksPerSecond = 8

	// DefaultIdleInterval is the toggle poll interval while paused or idle.
	DefaultIdleInterval = 10 * time.Millisecond
)
