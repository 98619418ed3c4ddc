package domain

import "math"

// SpectralOverlapFactor modela la reabsorción como el solapamiento de dos gaussianas
// separadas deltaNM:
//
//	overlap = exp(-Δλ² / (2·(σ_abs² + σ_emit²)))
//
// Resultado en (0, 1]; decrece estrictamente con |Δλ|.
func SpectralOverlapFactor(deltaNM, sigmaAbs, sigmaEmit float64) float64 {
	variance := sigmaAbs*sigmaAbs + sigmaEmit*sigmaEmit
	if variance <= 0 {
		if deltaNM == 0 {
			return 1
		}
		return 0
	}
	return math.Exp(-(deltaNM * deltaNM) / (2 * variance))
}

// Gaussian evalúa una curva gaussiana normalizada a pico 1.
func Gaussian(x, center, sigma float64) float64 {
	if sigma <= 0 {
		if x == center {
			return 1
		}
		return 0
	}
	d := x - center
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// SpectralOverlap aplica SpectralOverlapFactor a los parámetros del material.
func (m MaterialProperties) SpectralOverlap() float64 {
	return SpectralOverlapFactor(m.StokesShiftNM, m.AbsorptionWidthNM, m.EmissionWidthNM)
}
