package domain

import (
	"fmt"
	"math"
)

// Constantes de referencia del modelo económico (panel arquitectónico 1.2 × 2.0 m).
const (
	DefaultElectricityPrice = 0.18  // $/kWh
	DefaultLifetimeYears    = 25    // años
	DefaultPeakSunHours     = 5.5   // h/día
	DefaultGlassCostPerM2   = 25.0  // $/m² vidrio base
	DefaultSynthesisPerKg   = 500.0 // $/kg síntesis de quantum dots
	DefaultPVCostPerWatt    = 0.3   // $/W pico de tira PV
	DefaultAssemblyPerM2    = 50.0  // $/m² ensamblaje + overhead
	DefaultGlassDensity     = 2500  // kg/m³
	DefaultPVEfficiency     = 0.22  // tiras de silicio en el canto

	// Impacto ambiental.
	DefaultGridIntensity     = 0.45 // kgCO2/kWh de la red desplazada
	DefaultCarbonCreditPrice = 40.0 // $/tCO2

	// Modelo óptico de tres etapas (Beer-Lambert × transporte × trapping).
	DefaultAbsorptionAlpha = 0.05  // absorción por ppm·m de espesor
	DefaultSelfAbsorbBeta  = 0.001 // reabsorción por ppm·m
	DefaultTrappingConst   = 0.75  // n=1.49 → ~75%
)

// EconomicConfig contiene la geometría del panel y todos los coeficientes fijos
// de coste y de mercado. Se pasa por valor.
type EconomicConfig struct {
	WidthM  float64
	HeightM float64

	// --- Mercado ---
	ElectricityPrice float64 // $/kWh
	LifetimeYears    float64
	PeakSunHours     float64 // h/día
	Irradiance       float64 // W/m²

	// --- Impacto ---
	GridIntensity     float64 // kgCO2/kWh
	CarbonCreditPrice float64 // $/tCO2

	// --- Fabricación ---
	GlassCostPerM2     float64 // $/m²
	SynthesisCostPerKg float64 // $/kg de dopante
	PVCostPerWatt      float64 // $/W
	AssemblyPerM2      float64 // $/m²
	GlassDensity       float64 // kg/m³

	// --- Óptica / conversión ---
	PVEfficiency    float64
	AbsorptionAlpha float64
	SelfAbsorbBeta  float64
	Trapping        float64
}

// DefaultEconomicConfig devuelve la configuración de referencia.
func DefaultEconomicConfig() EconomicConfig {
	return EconomicConfig{
		WidthM:             1.2,
		HeightM:            2.0,
		ElectricityPrice:   DefaultElectricityPrice,
		LifetimeYears:      DefaultLifetimeYears,
		PeakSunHours:       DefaultPeakSunHours,
		Irradiance:         DefaultIrradiance,
		GridIntensity:      DefaultGridIntensity,
		CarbonCreditPrice:  DefaultCarbonCreditPrice,
		GlassCostPerM2:     DefaultGlassCostPerM2,
		SynthesisCostPerKg: DefaultSynthesisPerKg,
		PVCostPerWatt:      DefaultPVCostPerWatt,
		AssemblyPerM2:      DefaultAssemblyPerM2,
		GlassDensity:       DefaultGlassDensity,
		PVEfficiency:       DefaultPVEfficiency,
		AbsorptionAlpha:    DefaultAbsorptionAlpha,
		SelfAbsorbBeta:     DefaultSelfAbsorbBeta,
		Trapping:           DefaultTrappingConst,
	}
}

// Area devuelve la superficie del panel en m².
func (c EconomicConfig) Area() float64 { return c.WidthM * c.HeightM }

// Validate exige coeficientes positivos y fracciones en [0,1].
func (c EconomicConfig) Validate() error {
	positives := []struct {
		name string
		v    float64
	}{
		{"width_m", c.WidthM},
		{"height_m", c.HeightM},
		{"electricity_price", c.ElectricityPrice},
		{"lifetime_years", c.LifetimeYears},
		{"peak_sun_hours", c.PeakSunHours},
		{"irradiance", c.Irradiance},
		{"glass_cost_per_m2", c.GlassCostPerM2},
		{"synthesis_cost_per_kg", c.SynthesisCostPerKg},
		{"pv_cost_per_watt", c.PVCostPerWatt},
		{"assembly_per_m2", c.AssemblyPerM2},
		{"glass_density", c.GlassDensity},
		{"absorption_alpha", c.AbsorptionAlpha},
		{"self_absorb_beta", c.SelfAbsorbBeta},
	}
	for _, p := range positives {
		if !positive(p.v) {
			return fmt.Errorf("domain.EconomicConfig.Validate: %s=%g must be > 0: %w", p.name, p.v, ErrInvalidEconomics)
		}
	}
	if !unit(c.PVEfficiency) || c.PVEfficiency == 0 {
		return fmt.Errorf("domain.EconomicConfig.Validate: pv_efficiency=%g: %w", c.PVEfficiency, ErrInvalidEconomics)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{{"grid_intensity", c.GridIntensity}, {"carbon_credit_price", c.CarbonCreditPrice}} {
		if !(p.v >= 0) || !finite(p.v) {
			return fmt.Errorf("domain.EconomicConfig.Validate: %s=%g must be >= 0: %w", p.name, p.v, ErrInvalidEconomics)
		}
	}
	if !unit(c.Trapping) {
		return fmt.Errorf("domain.EconomicConfig.Validate: trapping=%g: %w", c.Trapping, ErrInvalidEconomics)
	}
	return nil
}

// CostBreakdown separa el capex en sus tres componentes.
type CostBreakdown struct {
	DopantMassKg float64
	Materials    float64 // vidrio + dopante
	PV           float64 // tiras PV en el canto
	Assembly     float64 // overhead fijo por m²
}

// Total suma los tres componentes.
func (b CostBreakdown) Total() float64 {
	return b.Materials + b.PV + b.Assembly
}

// Capex calcula el coste de fabricación de un panel.
//
//	dopant_mass = area × t × ρ_glass × ppm/1e6
//	materials   = area × glass_cost + dopant_mass × synthesis_cost
//	pv          = power × $/W
//	assembly    = area × assembly_cost
func (c EconomicConfig) Capex(concentrationPPM, thicknessMM, powerW float64) CostBreakdown {
	area := c.Area()
	volume := area * (thicknessMM / 1000)
	massMatrix := volume * c.GlassDensity
	massDopant := massMatrix * (concentrationPPM / 1e6)

	return CostBreakdown{
		DopantMassKg: massDopant,
		Materials:    area*c.GlassCostPerM2 + massDopant*c.SynthesisCostPerKg,
		PV:           powerW * c.PVCostPerWatt,
		Assembly:     area * c.AssemblyPerM2,
	}
}

// LifetimeRevenue = energía anual × precio × años de vida.
func (c EconomicConfig) LifetimeRevenue(annualKWh float64) float64 {
	return annualKWh * c.ElectricityPrice * c.LifetimeYears
}

// AnnualSavings = energía anual × precio de la electricidad.
func (c EconomicConfig) AnnualSavings(annualKWh float64) float64 {
	return annualKWh * c.ElectricityPrice
}

// CO2OffsetKg es el CO2 evitado en toda la vida útil:
//
//	co2 = energía anual × intensidad de red × años
func (c EconomicConfig) CO2OffsetKg(annualKWh float64) float64 {
	return annualKWh * c.GridIntensity * c.LifetimeYears
}

// CarbonCreditValue valora el CO2 evitado (kg) al precio del crédito por tonelada.
func (c EconomicConfig) CarbonCreditValue(co2Kg float64) float64 {
	return co2Kg / 1000 * c.CarbonCreditPrice
}

// PaybackYears = capex / ahorro anual. Sin ahorro no hay retorno.
func (c EconomicConfig) PaybackYears(capex, annualKWh float64) (float64, error) {
	savings := c.AnnualSavings(annualKWh)
	if !(savings > 0) || !finite(savings) {
		return 0, fmt.Errorf("domain.PaybackYears: annual savings=%g: %w", savings, ErrComputation)
	}
	return capex / savings, nil
}

// ROIPercent = net_profit / capex × 100. Capex nulo es un error de cálculo.
func ROIPercent(netProfit, capex float64) (float64, error) {
	if capex == 0 || !finite(capex) {
		return 0, fmt.Errorf("domain.ROIPercent: capex=%g: %w", capex, ErrComputation)
	}
	roi := netProfit / capex * 100
	if math.IsNaN(roi) || math.IsInf(roi, 0) {
		return 0, fmt.Errorf("domain.ROIPercent: non-finite roi: %w", ErrComputation)
	}
	return roi, nil
}
