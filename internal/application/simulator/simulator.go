package simulator

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain/efficiency"
)

// Options controla la etapa de conversión y el análisis de vida útil.
type Options struct {
	Fidelity         efficiency.Fidelity
	PVEfficiency     float64 // tiras PV del canto (GaAs / perovskita)
	Irradiance       float64 // W/m²
	PeakSunHours     float64 // h/día
	DegradationYears int
	DegradationRate  float64 // fracción anual (1.5% con shell de sílice)
}

// DefaultOptions devuelve la configuración de referencia.
func DefaultOptions() Options {
	return Options{
		Fidelity:         efficiency.FidelityDirect,
		PVEfficiency:     domain.DefaultPVEfficiency,
		Irradiance:       domain.DefaultIrradiance,
		PeakSunHours:     domain.DefaultPeakSunHours,
		DegradationYears: 10,
		DegradationRate:  0.015,
	}
}

// Validate rechaza opciones que harían fallar o invertir el signo del escenario.
// NaN no pasa ninguna comprobación.
func (o Options) Validate() error {
	if !(o.PVEfficiency > 0) || o.PVEfficiency > 1 {
		return fmt.Errorf("simulator.Options.Validate: pv_efficiency=%g: %w", o.PVEfficiency, domain.ErrInvalidMaterial)
	}
	if !(o.Irradiance > 0) || math.IsInf(o.Irradiance, 0) {
		return fmt.Errorf("simulator.Options.Validate: irradiance=%g: %w", o.Irradiance, domain.ErrComputation)
	}
	if !(o.PeakSunHours > 0) || o.PeakSunHours > 24 {
		return fmt.Errorf("simulator.Options.Validate: peak_sun_hours=%g: %w", o.PeakSunHours, domain.ErrComputation)
	}
	if _, err := domain.DegradationCurve(o.DegradationYears, o.DegradationRate); err != nil {
		return fmt.Errorf("simulator.Options.Validate: %w", err)
	}
	return nil
}

// PhysicalModel evalúa un panel LSC concreto. Es inmutable: todas las operaciones
// son funciones puras de la geometría, el material y las opciones.
type PhysicalModel struct {
	geom  domain.DeviceGeometry
	mat   domain.MaterialProperties
	opts  Options
	model efficiency.Model
}

// New valida material y opciones y selecciona la formulación de eficiencia.
func New(geom domain.DeviceGeometry, mat domain.MaterialProperties, opts Options) (*PhysicalModel, error) {
	if geom.Area() <= 0 {
		return nil, fmt.Errorf("simulator.New: zero-value geometry: %w", domain.ErrInvalidGeometry)
	}
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("simulator.New: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("simulator.New: %w", err)
	}
	model, err := efficiency.New(opts.Fidelity)
	if err != nil {
		return nil, fmt.Errorf("simulator.New: %w", err)
	}
	return &PhysicalModel{geom: geom, mat: mat, opts: opts, model: model}, nil
}

// NewReference construye el panel de referencia (carbon dots, opciones por defecto)
// con las dimensiones dadas.
func NewReference(widthM, heightM, thicknessMM float64) (*PhysicalModel, error) {
	geom, err := domain.NewDeviceGeometry(widthM, heightM, thicknessMM)
	if err != nil {
		return nil, fmt.Errorf("simulator.NewReference: %w", err)
	}
	return New(geom, domain.DefaultCarbonDots(), DefaultOptions())
}

// Geometry devuelve la geometría del panel.
func (p *PhysicalModel) Geometry() domain.DeviceGeometry { return p.geom }

// Material devuelve las propiedades del material.
func (p *PhysicalModel) Material() domain.MaterialProperties { return p.mat }

// Fidelity devuelve la formulación activa.
func (p *PhysicalModel) Fidelity() efficiency.Fidelity { return p.model.Fidelity() }

// SpectralOverlapFactor devuelve el solapamiento absorción/emisión del material.
func (p *PhysicalModel) SpectralOverlapFactor() float64 {
	return p.mat.SpectralOverlap()
}

// OpticalEfficiency evalúa la formulación configurada (directa por defecto).
func (p *PhysicalModel) OpticalEfficiency() float64 {
	return p.model.Efficiency(p.geom, p.mat)
}

// DirectEfficiency evalúa siempre la forma de factores directos.
func (p *PhysicalModel) DirectEfficiency() float64 {
	return efficiency.DirectFactor{}.Efficiency(p.geom, p.mat)
}

// PropagationEfficiency evalúa siempre la forma de propagación.
func (p *PhysicalModel) PropagationEfficiency() float64 {
	return efficiency.Propagation{}.Efficiency(p.geom, p.mat)
}

// PowerOutput convierte una eficiencia óptica en potencia eléctrica sobre el área del panel.
func (p *PhysicalModel) PowerOutput(opticalEfficiency, pvEfficiency, irradiance float64) (power, density float64, err error) {
	return domain.PowerOutput(p.geom.Area(), opticalEfficiency, pvEfficiency, irradiance)
}

// DegradationCurve devuelve la retención (1 - rate)^y para y = 0..years.
func (p *PhysicalModel) DegradationCurve(years int, annualRate float64) ([]float64, error) {
	return domain.DegradationCurve(years, annualRate)
}

// RunFullScenario encadena eficiencia → potencia → energía → degradación y
// devuelve el resultado compuesto.
func (p *PhysicalModel) RunFullScenario() (domain.OpticalResult, error) {
	eff := p.OpticalEfficiency()

	var warnings []string
	if eff < 0 || eff > 1 {
		msg := fmt.Sprintf("optical efficiency %.4f outside [0,1]", eff)
		slog.Warn("efficiency out of physical range",
			"fidelity", p.model.Fidelity(),
			"optical_efficiency", eff,
		)
		warnings = append(warnings, msg)
	}

	power, density, err := p.PowerOutput(eff, p.opts.PVEfficiency, p.opts.Irradiance)
	if err != nil {
		return domain.OpticalResult{}, fmt.Errorf("simulator.RunFullScenario: %w", err)
	}

	curve, err := p.DegradationCurve(p.opts.DegradationYears, p.opts.DegradationRate)
	if err != nil {
		return domain.OpticalResult{}, fmt.Errorf("simulator.RunFullScenario: %w", err)
	}

	annual := domain.AnnualEnergyKWh(power, p.opts.PeakSunHours)

	slog.Debug("scenario evaluated",
		"width_m", p.geom.Width(),
		"height_m", p.geom.Height(),
		"area_m2", p.geom.Area(),
		"optical_efficiency", fmt.Sprintf("%.4f", eff),
		"power_w", fmt.Sprintf("%.2f", power),
	)

	return domain.OpticalResult{
		OpticalEfficiency:  eff,
		PowerOutputW:       power,
		PowerDensity:       density,
		Fidelity:           string(p.model.Fidelity()),
		PVEfficiency:       p.opts.PVEfficiency,
		AreaM2:             p.geom.Area(),
		GeometricGain:      p.geom.GeometricGain(),
		SpectralOverlap:    p.SpectralOverlapFactor(),
		TrappingEfficiency: p.mat.TrappingEfficiency(),
		CriticalAngleDeg:   p.mat.CriticalAngleDeg(),
		PathLengthM:        p.geom.PathLength(),
		AnnualEnergyKWh:    annual,
		LifetimeEnergyKWh:  domain.LifetimeEnergyKWh(annual, curve),
		Degradation:        curve,
		Warnings:           warnings,
	}, nil
}
