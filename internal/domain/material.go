package domain

import (
	"fmt"
	"math"
)

// MaterialProperties agrupa los parámetros ópticos del dopante y de la matriz.
// Se pasa por valor: una vez construido no cambia.
type MaterialProperties struct {
	QuantumYield    float64 // fracción de fotones absorbidos que se reemiten (0–1)
	StokesShiftNM   float64 // separación entre picos de absorción y emisión
	RefractiveIndex float64 // índice de la matriz (PMMA/vidrio ~1.49)

	AbsorptionCenterNM float64
	AbsorptionWidthNM  float64 // sigma de la gaussiana de absorción
	EmissionWidthNM    float64 // sigma de la gaussiana de emisión

	// --- Forma de factores directos ---
	AbsorptionEfficiency float64 // fracción del espectro solar absorbida (0–1)
	ReflectionLoss       float64 // pérdida Fresnel en la cara (0–1)
	ScatteringLoss       float64 // pérdida por scattering de la matriz (0–1)

	// --- Forma de propagación ---
	ScatteringCoeff float64 // 1/m, se suma al solapamiento espectral en la atenuación
}

// DefaultCarbonDots devuelve el panel de referencia: carbon dots derivados de
// cascarilla de arroz en matriz PMMA/vidrio.
func DefaultCarbonDots() MaterialProperties {
	return MaterialProperties{
		QuantumYield:         0.68,
		StokesShiftNM:        120,
		RefractiveIndex:      1.49,
		AbsorptionCenterNM:   400,
		AbsorptionWidthNM:    40,
		EmissionWidthNM:      30,
		AbsorptionEfficiency: 0.45,
		ReflectionLoss:       0.04,
		ScatteringLoss:       0.05,
		ScatteringCoeff:      0.05,
	}
}

// EmissionCenterNM = centro de absorción + Stokes shift.
func (m MaterialProperties) EmissionCenterNM() float64 {
	return m.AbsorptionCenterNM + m.StokesShiftNM
}

// TrappingEfficiency devuelve la fracción atrapada por TIR: sqrt(1 - 1/n²).
func (m MaterialProperties) TrappingEfficiency() float64 {
	return TrappingEfficiency(m.RefractiveIndex)
}

// CriticalAngleDeg devuelve el ángulo crítico de TIR en grados: asin(1/n).
func (m MaterialProperties) CriticalAngleDeg() float64 {
	if m.RefractiveIndex < 1 {
		return 90
	}
	return math.Asin(1/m.RefractiveIndex) * 180 / math.Pi
}

// Validate comprueba los rangos físicos del material.
func (m MaterialProperties) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"quantum_yield", unit(m.QuantumYield)},
		{"refractive_index", finite(m.RefractiveIndex) && m.RefractiveIndex >= 1},
		{"stokes_shift_nm", finite(m.StokesShiftNM) && m.StokesShiftNM >= 0},
		{"absorption_center_nm", positive(m.AbsorptionCenterNM)},
		{"absorption_width_nm", positive(m.AbsorptionWidthNM)},
		{"emission_width_nm", positive(m.EmissionWidthNM)},
		{"absorption_efficiency", unit(m.AbsorptionEfficiency)},
		{"reflection_loss", unit(m.ReflectionLoss)},
		{"scattering_loss", unit(m.ScatteringLoss)},
		{"scattering_coeff", finite(m.ScatteringCoeff) && m.ScatteringCoeff >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("domain.MaterialProperties.Validate: %s out of range: %w", c.name, ErrInvalidMaterial)
		}
	}
	return nil
}

// TrappingEfficiency calcula sqrt(1 - 1/n²) para emisión isotrópica en una lámina.
// Devuelve 0 si n < 1 (no hay TIR posible).
func TrappingEfficiency(n float64) float64 {
	if n < 1 {
		return 0
	}
	return math.Sqrt(1 - 1/(n*n))
}

func unit(v float64) bool {
	return finite(v) && v >= 0 && v <= 1
}
