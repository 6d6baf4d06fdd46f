package filterplayer

// Common sample rates.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// Channel counts
const (
	monoChannels   = 1
	stereoChannels = 2
)
