package efficiency

import "github.com/SourishSenapati/Team-Glass2Grid/internal/domain"

// DirectFactor es la forma de factores directos:
//
//	η = (1 - R) × η_abs × QY × η_trap × (1 - L_scat)
//
// Con todos los factores en [0,1] el resultado queda en [0,1].
type DirectFactor struct{}

// Fidelity implementa Model.
func (DirectFactor) Fidelity() Fidelity { return FidelityDirect }

// Efficiency implementa Model. La geometría no interviene en esta forma.
func (DirectFactor) Efficiency(_ domain.DeviceGeometry, mat domain.MaterialProperties) float64 {
	return DirectProduct(
		mat.ReflectionLoss,
		mat.AbsorptionEfficiency,
		mat.QuantumYield,
		mat.TrappingEfficiency(),
		mat.ScatteringLoss,
	)
}

// DirectProduct evalúa el producto de factores con valores explícitos.
func DirectProduct(reflectionLoss, absorption, quantumYield, trapping, scatteringLoss float64) float64 {
	return (1 - reflectionLoss) * absorption * quantumYield * trapping * (1 - scatteringLoss)
}
