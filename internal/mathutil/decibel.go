// Package mathutil provides the decibel conversions used by the filter and
// meter packages.
package mathutil

import (
	"math"
)

// Decibel reference factors.
const (
	powerDBFactor     = 10.0 // dB = 10*log10(power ratio)
	amplitudeDBFactor = 20.0 // dB = 20*log10(amplitude ratio)
)

// DBToPowerRatio converts a level in dB to a power ratio: 10^(db/10).
// 0 dB maps to exactly 1.
func DBToPowerRatio(db float64) float64 {
	if db == 0 {
		return 1
	}
	return math.Pow(10, db/powerDBFactor)
}

// AmplitudeToDB converts a linear amplitude ratio to dB (20*log10).
// Non-positive ratios are clamped to floorDB.
func AmplitudeToDB(ratio, floorDB float64) float64 {
	if ratio <= 0 {
		return floorDB
	}
	db := amplitudeDBFactor * math.Log10(ratio)
	if db < floorDB {
		return floorDB
	}
	return db
}

// NegativeDB returns -|db|. Level floors are always expressed as a negative
// dB value; a positive input is sign-corrected rather than rejected.
func NegativeDB(db float64) float64 {
	return -math.Abs(db)
}
