package efficiency

import (
	"math"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
)

// Propagation es la forma de propagación:
//
//	η = η_abs × QY × η_trap × exp(-(overlap + α_scat) × L)
//
// con L = media diagonal del panel. Se usa para análisis de sensibilidad y degradación.
type Propagation struct{}

// Fidelity implementa Model.
func (Propagation) Fidelity() Fidelity { return FidelityPropagation }

// Efficiency implementa Model.
func (Propagation) Efficiency(geom domain.DeviceGeometry, mat domain.MaterialProperties) float64 {
	return mat.AbsorptionEfficiency *
		mat.QuantumYield *
		mat.TrappingEfficiency() *
		Transmission(mat.SpectralOverlap(), mat.ScatteringCoeff, geom.PathLength())
}

// Transmission = exp(-(overlapLoss + scatteringCoeff) × pathLength).
func Transmission(overlapLoss, scatteringCoeff, pathLength float64) float64 {
	return math.Exp(-(overlapLoss + scatteringCoeff) * pathLength)
}
