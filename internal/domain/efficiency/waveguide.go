package efficiency

import (
	"fmt"
	"math"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
)

// DopedWaveguide es el modelo de tres etapas parametrizado por concentración y espesor
// que usa el optimizador económico:
//
//	absorbance = 1 - exp(-α × C × t_m)
//	transport  = exp(-β × C × L)
//	η          = absorbance × transport × trapping
//
// Más concentración absorbe más pero transporta peor; el sweep busca el equilibrio.
type DopedWaveguide struct {
	Alpha    float64 // absorción por ppm·m de espesor
	Beta     float64 // reabsorción por ppm·m de camino
	Trapping float64
}

// NewDopedWaveguide toma los coeficientes de un EconomicConfig.
func NewDopedWaveguide(cfg domain.EconomicConfig) DopedWaveguide {
	return DopedWaveguide{
		Alpha:    cfg.AbsorptionAlpha,
		Beta:     cfg.SelfAbsorbBeta,
		Trapping: cfg.Trapping,
	}
}

// Absorbance aplica Beer-Lambert. thicknessMM se convierte a metros.
func (w DopedWaveguide) Absorbance(concentrationPPM, thicknessMM float64) float64 {
	return 1 - math.Exp(-w.Alpha*concentrationPPM*(thicknessMM/1000))
}

// Transport es la fracción que sobrevive la reabsorción a lo largo de pathLength.
func (w DopedWaveguide) Transport(concentrationPPM, pathLength float64) float64 {
	return math.Exp(-w.Beta * concentrationPPM * pathLength)
}

// Efficiency evalúa el modelo completo. Concentración 0 devuelve 0 (no hay absorción);
// concentración o espesor negativos y dimensiones no positivas son errores.
func (w DopedWaveguide) Efficiency(concentrationPPM, thicknessMM, widthM, heightM float64) (float64, error) {
	if concentrationPPM < 0 || math.IsNaN(concentrationPPM) || math.IsInf(concentrationPPM, 0) {
		return 0, fmt.Errorf("efficiency.DopedWaveguide: concentration=%g ppm: %w", concentrationPPM, domain.ErrInvalidEconomics)
	}
	if thicknessMM < 0 || math.IsNaN(thicknessMM) || math.IsInf(thicknessMM, 0) {
		return 0, fmt.Errorf("efficiency.DopedWaveguide: thickness=%g mm: %w", thicknessMM, domain.ErrInvalidEconomics)
	}
	if !(widthM > 0) || !(heightM > 0) {
		return 0, fmt.Errorf("efficiency.DopedWaveguide: width=%g height=%g: %w", widthM, heightM, domain.ErrInvalidGeometry)
	}

	path := domain.HalfDiagonal(widthM, heightM)
	return w.Absorbance(concentrationPPM, thicknessMM) *
		w.Transport(concentrationPPM, path) *
		w.Trapping, nil
}
