package resample

const (
	cubicInterpolationPoints = 4

	// Hermite (Catmull-Rom) coefficient constants
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5

	// outputMargin covers phase carry-over when sizing output blocks
	outputMargin = 2
)
