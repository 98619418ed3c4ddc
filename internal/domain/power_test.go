package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerOutput_Formula(t *testing.T) {
	power, density, err := PowerOutput(2.4, 0.2, 0.22, DefaultIrradiance)
	require.NoError(t, err)

	// 1000 × 2.4 × 0.2 × 0.22 = 105.6 W
	assert.InDelta(t, 105.6, power, 1e-9)
	assert.Equal(t, power/2.4, density)
}

func TestPowerOutput_ZeroAreaIsComputationError(t *testing.T) {
	_, _, err := PowerOutput(0, 0.2, 0.22, DefaultIrradiance)
	assert.True(t, errors.Is(err, ErrComputation))
}

func TestDegradationCurve_Reference(t *testing.T) {
	curve, err := DegradationCurve(10, 0.015)
	require.NoError(t, err)
	require.Len(t, curve, 11)

	assert.Equal(t, 1.0, curve[0])
	assert.InDelta(t, math.Pow(0.985, 10), curve[10], 1e-12)
	assert.InDelta(t, 0.860, curve[10], 0.001)

	for y := 1; y < len(curve); y++ {
		assert.LessOrEqual(t, curve[y], curve[y-1])
	}
}

func TestDegradationCurve_ZeroYears(t *testing.T) {
	curve, err := DegradationCurve(0, 0.015)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, curve)
}

func TestDegradationCurve_InvalidInputs(t *testing.T) {
	_, err := DegradationCurve(-1, 0.015)
	assert.True(t, errors.Is(err, ErrInvalidMaterial))

	_, err = DegradationCurve(10, 1.5)
	assert.True(t, errors.Is(err, ErrInvalidMaterial))
}

func TestEnergyYield(t *testing.T) {
	annual := AnnualEnergyKWh(100, 5.5)
	// 0.1 kW × 5.5 h × 365
	assert.InDelta(t, 200.75, annual, 1e-9)

	curve := []float64{1.0, 0.9, 0.8}
	assert.InDelta(t, 200.75*1.7, LifetimeEnergyKWh(annual, curve), 1e-9)
	assert.Equal(t, 0.0, LifetimeEnergyKWh(annual, []float64{1.0}))
}
