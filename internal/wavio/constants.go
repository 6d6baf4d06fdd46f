package wavio

// Sample format constants
const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8  = 127.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// 8-bit WAV data is unsigned with silence at 128
	uint8Offset = 128

	pcmFormat = 1 // WAVE_FORMAT_PCM
)

// DefaultBitDepth is the bit depth RenderSink writes when none is given.
const DefaultBitDepth = bitsPerSample16
