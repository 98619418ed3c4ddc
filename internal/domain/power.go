package domain

import (
	"fmt"
	"math"
)

// DefaultIrradiance es el estándar AM1.5G en W/m².
const DefaultIrradiance = 1000.0

// PowerOutput convierte eficiencia óptica en potencia eléctrica en el canto:
//
//	power   = irradiance × area × η_opt × η_pv
//	density = power / area
func PowerOutput(area, opticalEfficiency, pvEfficiency, irradiance float64) (power, density float64, err error) {
	if area <= 0 || !finite(area) {
		return 0, 0, fmt.Errorf("domain.PowerOutput: area=%g: %w", area, ErrComputation)
	}
	power = irradiance * area * opticalEfficiency * pvEfficiency
	if !finite(power) {
		return 0, 0, fmt.Errorf("domain.PowerOutput: non-finite power: %w", ErrComputation)
	}
	return power, power / area, nil
}

// DegradationCurve devuelve (1 - rate)^y para y = 0..years inclusive.
// El primer elemento siempre es 1.0.
func DegradationCurve(years int, annualRate float64) ([]float64, error) {
	if years < 0 {
		return nil, fmt.Errorf("domain.DegradationCurve: years=%d: %w", years, ErrInvalidMaterial)
	}
	if !unit(annualRate) {
		return nil, fmt.Errorf("domain.DegradationCurve: rate=%g: %w", annualRate, ErrInvalidMaterial)
	}
	curve := make([]float64, years+1)
	for y := range curve {
		curve[y] = math.Pow(1-annualRate, float64(y))
	}
	return curve, nil
}

// AnnualEnergyKWh = (W / 1000) × horas sol pico × 365.
func AnnualEnergyKWh(powerW, peakSunHours float64) float64 {
	return (powerW / 1000) * peakSunHours * 365
}

// LifetimeEnergyKWh suma la energía anual de los años 1..N ponderada por la retención
// de la curva de degradación. curve[0] (instalación) no produce.
func LifetimeEnergyKWh(annualKWh float64, curve []float64) float64 {
	var total float64
	for y := 1; y < len(curve); y++ {
		total += annualKWh * curve[y]
	}
	return total
}
