package main

import "math"

// Output device names
const (
	outputOto  = "oto"
	outputNull = "null"
)

// Progress reporting
const (
	progressInterval = 10 // Print progress every N%
	percentScale     = 100
)

const radiansToDegrees = 180 / math.Pi
