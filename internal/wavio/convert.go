package wavio

// maxValue returns the full-scale sample value for the given bit depth.
func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// intsToFloats normalizes PCM integers into dst, mapping full scale to ±1.
func intsToFloats(dst []float32, src []int, bitDepth int) {
	inv := 1.0 / maxValue(bitDepth)
	if bitDepth == bitsPerSample8 {
		for i, v := range src {
			dst[i] = float32(float64(v-uint8Offset) * inv)
		}
		return
	}
	for i, v := range src {
		dst[i] = float32(float64(v) * inv)
	}
}

// floatsToInts converts normalized samples to PCM integers, clamping to ±1.
func floatsToInts(dst []int, src []float32, bitDepth int) {
	maxVal := maxValue(bitDepth)
	offset := 0
	if bitDepth == bitsPerSample8 {
		offset = uint8Offset
	}
	for i, v := range src {
		sample := float64(v)
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		dst[i] = int(sample*maxVal) + offset
	}
}
