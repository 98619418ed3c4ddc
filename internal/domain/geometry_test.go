package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeviceGeometry_StoresThicknessInMeters(t *testing.T) {
	g, err := NewDeviceGeometry(1.0, 1.5, 6.0)
	require.NoError(t, err)

	assert.Equal(t, 0.006, g.Thickness())
	assert.InDelta(t, 6.0, g.ThicknessMM(), 1e-12)
	assert.Equal(t, 1.0*1.5, g.Area())
}

func TestNewDeviceGeometry_RejectsNonPositive(t *testing.T) {
	cases := [][3]float64{
		{0, 1.5, 6},
		{1, -1, 6},
		{1, 1.5, 0},
		{math.NaN(), 1, 1},
		{1, math.Inf(1), 1},
	}
	for _, c := range cases {
		_, err := NewDeviceGeometry(c[0], c[1], c[2])
		assert.True(t, errors.Is(err, ErrInvalidGeometry), "dims %v", c)
	}
}

func TestDeviceGeometry_AreaIsWidthTimesHeight(t *testing.T) {
	for _, dims := range [][2]float64{{1.2, 2.0}, {0.3, 0.7}, {10, 0.01}} {
		g, err := NewDeviceGeometry(dims[0], dims[1], 5)
		require.NoError(t, err)
		assert.Equal(t, dims[0]*dims[1], g.Area())
	}
}

func TestDeviceGeometry_EdgeAndGain(t *testing.T) {
	g, err := NewDeviceGeometry(1.2, 2.0, 6.0)
	require.NoError(t, err)

	// perímetro = 6.4 m, canto = 6.4 × 0.006 = 0.0384 m²
	assert.InDelta(t, 6.4, g.Perimeter(), 1e-12)
	assert.InDelta(t, 0.0384, g.EdgeArea(), 1e-12)
	// G = 2.4 / 0.0384 = 62.5
	assert.InDelta(t, 62.5, g.GeometricGain(), 1e-9)
	assert.InDelta(t, 2.4*0.006, g.Volume(), 1e-12)
}

func TestDeviceGeometry_PathLengthIsHalfDiagonal(t *testing.T) {
	g, err := NewDeviceGeometry(3, 4, 6)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, g.PathLength(), 1e-12)
}
