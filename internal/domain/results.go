package domain

import "time"

// OpticalResult es el resultado de un escenario físico completo.
// Se recalcula en cada llamada; nunca se muta.
type OpticalResult struct {
	OpticalEfficiency float64 `json:"optical_efficiency"`
	PowerOutputW      float64 `json:"power_output_W"`
	PowerDensity      float64 `json:"power_density"`

	// --- Contexto del escenario ---
	Fidelity           string    `json:"fidelity"`
	PVEfficiency       float64   `json:"pv_efficiency"`
	AreaM2             float64   `json:"area_m2"`
	GeometricGain      float64   `json:"geometric_gain"`
	SpectralOverlap    float64   `json:"spectral_overlap"`
	TrappingEfficiency float64   `json:"trapping_efficiency"`
	CriticalAngleDeg   float64   `json:"critical_angle_deg"`
	PathLengthM        float64   `json:"path_length_m"`
	AnnualEnergyKWh    float64   `json:"annual_energy_kWh"`
	LifetimeEnergyKWh  float64   `json:"lifetime_energy_kWh"`
	Degradation        []float64 `json:"degradation_curve"`
	Warnings           []string  `json:"warnings,omitempty"`
}

// Record devuelve el registro plano clave → valor que consumen los colaboradores externos.
func (r OpticalResult) Record() map[string]float64 {
	return map[string]float64{
		"optical_efficiency": r.OpticalEfficiency,
		"power_output_W":     r.PowerOutputW,
		"power_density":      r.PowerDensity,
	}
}

// EconomicResult es la evaluación de una configuración (concentración, espesor).
type EconomicResult struct {
	ROI       float64 `json:"roi"`        // %
	Capex     float64 `json:"capex"`      // $
	Power     float64 `json:"power"`      // W
	NetProfit float64 `json:"net_profit"` // $

	// --- Desglose ---
	OpticalEfficiency float64 `json:"optical_efficiency"`
	AnnualEnergyKWh   float64 `json:"annual_energy_kWh"`
	LifetimeRevenue   float64 `json:"lifetime_revenue"`
	DopantMassKg      float64 `json:"dopant_mass_kg"`
	MaterialsCost     float64 `json:"materials_cost"`
	PVCost            float64 `json:"pv_cost"`
	AssemblyCost      float64 `json:"assembly_cost"`

	// --- Impacto ---
	PaybackYears      float64 `json:"payback_years"`
	CO2OffsetKg       float64 `json:"co2_offset_kg"` // vida útil
	CarbonCreditValue float64 `json:"carbon_credit_value"`
}

// Metrics devuelve las cuatro métricas del registro externo.
func (r EconomicResult) Metrics() map[string]float64 {
	return map[string]float64{
		"roi":        r.ROI,
		"capex":      r.Capex,
		"power":      r.Power,
		"net_profit": r.NetProfit,
	}
}

// Evaluation es una celda evaluada del grid: entrada + beneficio neto.
type Evaluation struct {
	ConcentrationPPM float64 `json:"concentration_ppm"`
	ThicknessMM      float64 `json:"thickness_mm"`
	NetProfit        float64 `json:"net_profit"`
}

// SearchOutcome es la mejor configuración del grid más el log completo.
type SearchOutcome struct {
	ConcentrationPPM float64        `json:"concentration_ppm"`
	ThicknessMM      float64        `json:"thickness_mm"`
	Metrics          EconomicResult `json:"metrics"`
	Log              []Evaluation   `json:"-"`
}

// Record devuelve el registro externo de la mejor configuración.
func (o SearchOutcome) Record() map[string]any {
	return map[string]any{
		"concentration_ppm": o.ConcentrationPPM,
		"thickness_mm":      o.ThicknessMM,
		"metrics":           o.Metrics.Metrics(),
	}
}

// RunKind distingue los dos tipos de ejecución persistidos.
type RunKind string

const (
	RunScenario RunKind = "scenario"
	RunSweep    RunKind = "sweep"
)

// RunSummary es la fila ligera de historial de una ejecución.
type RunSummary struct {
	ID          string
	Kind        RunKind
	StartedAt   time.Time
	Duration    time.Duration
	Cells       int
	Headline    float64 // η_opt en escenarios, net_profit en sweeps
	BestConcPPM float64
	BestThickMM float64
}
