package simulator

import (
	"fmt"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Rango por defecto del muestreo espectral.
const (
	SpectrumFromNM  = 300.0
	SpectrumToNM    = 800.0
	SpectrumSamples = 500
)

// Spectrum son las curvas gaussianas de absorción y emisión muestreadas sobre
// un eje de longitudes de onda. Solo datos: quien lo pinte queda fuera del motor.
type Spectrum struct {
	WavelengthNM []float64
	Absorption   []float64
	Emission     []float64
}

// Spectrum muestrea las curvas del material en `samples` puntos equiespaciados
// entre fromNM y toNM (ambos incluidos).
func (p *PhysicalModel) Spectrum(fromNM, toNM float64, samples int) (Spectrum, error) {
	if samples < 2 || !(toNM > fromNM) {
		return Spectrum{}, fmt.Errorf("simulator.Spectrum: range [%g,%g] with %d samples: %w",
			fromNM, toNM, samples, domain.ErrComputation)
	}

	axis := floats.Span(make([]float64, samples), fromNM, toNM)
	s := Spectrum{
		WavelengthNM: axis,
		Absorption:   make([]float64, samples),
		Emission:     make([]float64, samples),
	}
	absC, absW := p.mat.AbsorptionCenterNM, p.mat.AbsorptionWidthNM
	emC, emW := p.mat.EmissionCenterNM(), p.mat.EmissionWidthNM
	for i, nm := range axis {
		s.Absorption[i] = domain.Gaussian(nm, absC, absW)
		s.Emission[i] = domain.Gaussian(nm, emC, emW)
	}
	return s, nil
}

// PeakAbsorptionNM devuelve la longitud de onda muestreada con mayor absorción.
func (s Spectrum) PeakAbsorptionNM() float64 {
	if len(s.Absorption) == 0 {
		return 0
	}
	return s.WavelengthNM[floats.MaxIdx(s.Absorption)]
}

// PeakEmissionNM devuelve la longitud de onda muestreada con mayor emisión.
func (s Spectrum) PeakEmissionNM() float64 {
	if len(s.Emission) == 0 {
		return 0
	}
	return s.WavelengthNM[floats.MaxIdx(s.Emission)]
}
