package filter

// Filter limits.
const (
	minOrder    = 1 // IIR filters need at least one delay tap
	minChannels = 1

	msPerSecond = 1000

	// MaxDelayMs and MaxSampleRate bound a delay line to 10 s at 768 kHz.
	MaxDelayMs    = 10_000
	MaxSampleRate = 768_000

	maxFeedbackGain = 1.0 // delay feedback must stay below unity for stability
)

// Response analysis constants.
const (
	minResponsePoints = 2
	responseFloorDB   = -200.0
	responseDoubling  = 2
)
