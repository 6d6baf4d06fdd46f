package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBToPowerRatio(t *testing.T) {
	tests := []struct {
		db   float64
		want float64
	}{
		{0, 1},
		{-10, 0.1},
		{-30, 0.001},
		{10, 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, DBToPowerRatio(tt.db), 1e-12, "db=%v", tt.db)
	}
	assert.Equal(t, 1.0, DBToPowerRatio(0), "0 dB must be exactly unity")
}

func TestAmplitudeToDB(t *testing.T) {
	assert.InDelta(t, 0.0, AmplitudeToDB(1, -120), 1e-12)
	assert.InDelta(t, -20.0, AmplitudeToDB(0.1, -120), 1e-9)
	assert.InDelta(t, 6.0206, AmplitudeToDB(2, -120), 1e-4)
	assert.Equal(t, -120.0, AmplitudeToDB(0, -120))
	assert.Equal(t, -120.0, AmplitudeToDB(-1, -120))
	assert.Equal(t, -60.0, AmplitudeToDB(1e-9, -60))
}

func TestNegativeDB(t *testing.T) {
	assert.Equal(t, -30.0, NegativeDB(30))
	assert.Equal(t, -30.0, NegativeDB(-30))
	assert.Equal(t, 0.0, math.Abs(NegativeDB(0)))
}
