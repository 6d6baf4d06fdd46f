package meter

// Segments is the number of bars in a pattern.
const Segments = 16

// Default configuration, matching a ±2 full-scale input.
const (
	DefaultInputMin   = -2.0
	DefaultInputMax   = 2.0
	DefaultLogFloorDB = -30.0
)

const (
	logSteps    = Segments - 1 // threshold[15] sits at 0 dB
	fullPattern = 0xFFFF
)
