package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/application/optimizer"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/application/simulator"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain/efficiency"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del motor.
type Config struct {
	Mode       string           `yaml:"mode"` // simulate | optimize | all
	Panel      PanelConfig      `yaml:"panel"`
	Material   MaterialConfig   `yaml:"material"`
	Simulation SimulationConfig `yaml:"simulation"`
	Economics  EconomicsConfig  `yaml:"economics"`
	Sweep      SweepConfig      `yaml:"sweep"`
	Storage    StorageConfig    `yaml:"storage"`
	Output     OutputConfig     `yaml:"output"`
	Log        LogConfig        `yaml:"log"`
}

// PanelConfig es la geometría del escenario físico.
type PanelConfig struct {
	WidthM      float64 `yaml:"width_m"`
	HeightM     float64 `yaml:"height_m"`
	ThicknessMM float64 `yaml:"thickness_mm"`
}

// MaterialConfig son los parámetros ópticos del dopante y la matriz.
type MaterialConfig struct {
	QuantumYield       float64 `yaml:"quantum_yield"`
	StokesShiftNM      float64 `yaml:"stokes_shift_nm"`
	RefractiveIndex    float64 `yaml:"refractive_index"`
	AbsorptionCenterNM float64 `yaml:"absorption_center_nm"`
	AbsorptionWidthNM  float64 `yaml:"absorption_width_nm"`
	EmissionWidthNM    float64 `yaml:"emission_width_nm"`
	AbsorbedFraction   float64 `yaml:"absorbed_fraction"`
	ReflectionLoss     float64 `yaml:"reflection_loss"`
	ScatteringLoss     float64 `yaml:"scattering_loss"`
	ScatteringCoeff    float64 `yaml:"scattering_coeff_per_m"`
}

// SimulationConfig controla la conversión a potencia y el análisis de vida útil.
type SimulationConfig struct {
	Fidelity         string  `yaml:"fidelity"` // direct | propagation
	PVEfficiency     float64 `yaml:"pv_efficiency"`
	IrradianceWM2    float64 `yaml:"irradiance_w_m2"`
	PeakSunHours     float64 `yaml:"peak_sun_hours"`
	DegradationYears int     `yaml:"degradation_years"`
	DegradationRate  float64 `yaml:"degradation_rate"`
}

// EconomicsConfig son los coeficientes del panel que evalúa el optimizador.
type EconomicsConfig struct {
	WidthM             float64 `yaml:"width_m"`
	HeightM            float64 `yaml:"height_m"`
	ElectricityPrice   float64 `yaml:"electricity_price"` // $/kWh
	LifetimeYears      float64 `yaml:"lifetime_years"`
	PeakSunHours       float64 `yaml:"peak_sun_hours"`
	IrradianceWM2      float64 `yaml:"irradiance_w_m2"`
	GridIntensity      float64 `yaml:"grid_intensity_kg_per_kwh"`
	CarbonCreditPrice  float64 `yaml:"carbon_credit_price"` // $/tCO2
	GlassCostPerM2     float64 `yaml:"glass_cost_per_m2"`
	SynthesisCostPerKg float64 `yaml:"synthesis_cost_per_kg"`
	PVCostPerWatt      float64 `yaml:"pv_cost_per_watt"`
	AssemblyPerM2      float64 `yaml:"assembly_per_m2"`
	GlassDensity       float64 `yaml:"glass_density_kg_m3"`
	PVEfficiency       float64 `yaml:"pv_efficiency"`
	AbsorptionAlpha    float64 `yaml:"absorption_alpha"`
	SelfAbsorbBeta     float64 `yaml:"self_absorb_beta"`
	Trapping           float64 `yaml:"trapping"`
}

// SweepConfig define el grid de búsqueda.
type SweepConfig struct {
	ConcentrationMin    float64   `yaml:"concentration_min"`
	ConcentrationMax    float64   `yaml:"concentration_max"`
	ConcentrationPoints int       `yaml:"concentration_points"`
	ThicknessesMM       []float64 `yaml:"thicknesses_mm"`
	Workers             int       `yaml:"workers"` // 0 = NumCPU*2, 1 = secuencial
	ProgressSeconds     int       `yaml:"progress_seconds"`
}

// StorageConfig controla dónde se persiste el historial.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// OutputConfig controla dónde se escriben los ficheros de resultado.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default devuelve la configuración del panel de referencia.
// Load parte de ella, así que una clave ausente en el YAML conserva su valor.
func Default() Config {
	mat := domain.DefaultCarbonDots()
	sim := simulator.DefaultOptions()
	eco := domain.DefaultEconomicConfig()
	grid := optimizer.DefaultGrid()

	return Config{
		Mode:  "all",
		Panel: PanelConfig{WidthM: 1.0, HeightM: 1.5, ThicknessMM: 6},
		Material: MaterialConfig{
			QuantumYield:       mat.QuantumYield,
			StokesShiftNM:      mat.StokesShiftNM,
			RefractiveIndex:    mat.RefractiveIndex,
			AbsorptionCenterNM: mat.AbsorptionCenterNM,
			AbsorptionWidthNM:  mat.AbsorptionWidthNM,
			EmissionWidthNM:    mat.EmissionWidthNM,
			AbsorbedFraction:   mat.AbsorptionEfficiency,
			ReflectionLoss:     mat.ReflectionLoss,
			ScatteringLoss:     mat.ScatteringLoss,
			ScatteringCoeff:    mat.ScatteringCoeff,
		},
		Simulation: SimulationConfig{
			Fidelity:         string(sim.Fidelity),
			PVEfficiency:     sim.PVEfficiency,
			IrradianceWM2:    sim.Irradiance,
			PeakSunHours:     sim.PeakSunHours,
			DegradationYears: sim.DegradationYears,
			DegradationRate:  sim.DegradationRate,
		},
		Economics: EconomicsConfig{
			WidthM:             eco.WidthM,
			HeightM:            eco.HeightM,
			ElectricityPrice:   eco.ElectricityPrice,
			LifetimeYears:      eco.LifetimeYears,
			PeakSunHours:       eco.PeakSunHours,
			IrradianceWM2:      eco.Irradiance,
			GridIntensity:      eco.GridIntensity,
			CarbonCreditPrice:  eco.CarbonCreditPrice,
			GlassCostPerM2:     eco.GlassCostPerM2,
			SynthesisCostPerKg: eco.SynthesisCostPerKg,
			PVCostPerWatt:      eco.PVCostPerWatt,
			AssemblyPerM2:      eco.AssemblyPerM2,
			GlassDensity:       eco.GlassDensity,
			PVEfficiency:       eco.PVEfficiency,
			AbsorptionAlpha:    eco.AbsorptionAlpha,
			SelfAbsorbBeta:     eco.SelfAbsorbBeta,
			Trapping:           eco.Trapping,
		},
		Sweep: SweepConfig{
			ConcentrationMin:    grid.ConcentrationsPPM[0],
			ConcentrationMax:    grid.ConcentrationsPPM[len(grid.ConcentrationsPPM)-1],
			ConcentrationPoints: len(grid.ConcentrationsPPM),
			ThicknessesMM:       grid.ThicknessesMM,
			ProgressSeconds:     2,
		},
	}
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)

	return &cfg, nil
}

// Geometry construye y valida la geometría del escenario.
func (c *Config) Geometry() (domain.DeviceGeometry, error) {
	g, err := domain.NewDeviceGeometry(c.Panel.WidthM, c.Panel.HeightM, c.Panel.ThicknessMM)
	if err != nil {
		return domain.DeviceGeometry{}, fmt.Errorf("config.Geometry: %w", err)
	}
	return g, nil
}

// MaterialProperties construye y valida las propiedades del material.
func (c *Config) MaterialProperties() (domain.MaterialProperties, error) {
	m := domain.MaterialProperties{
		QuantumYield:         c.Material.QuantumYield,
		StokesShiftNM:        c.Material.StokesShiftNM,
		RefractiveIndex:      c.Material.RefractiveIndex,
		AbsorptionCenterNM:   c.Material.AbsorptionCenterNM,
		AbsorptionWidthNM:    c.Material.AbsorptionWidthNM,
		EmissionWidthNM:      c.Material.EmissionWidthNM,
		AbsorptionEfficiency: c.Material.AbsorbedFraction,
		ReflectionLoss:       c.Material.ReflectionLoss,
		ScatteringLoss:       c.Material.ScatteringLoss,
		ScatteringCoeff:      c.Material.ScatteringCoeff,
	}
	if err := m.Validate(); err != nil {
		return domain.MaterialProperties{}, fmt.Errorf("config.MaterialProperties: %w", err)
	}
	return m, nil
}

// SimulationOptions convierte la sección simulation; la fidelidad se valida aquí.
func (c *Config) SimulationOptions() (simulator.Options, error) {
	f, err := efficiency.ParseFidelity(c.Simulation.Fidelity)
	if err != nil {
		return simulator.Options{}, fmt.Errorf("config.SimulationOptions: %w", err)
	}
	return simulator.Options{
		Fidelity:         f,
		PVEfficiency:     c.Simulation.PVEfficiency,
		Irradiance:       c.Simulation.IrradianceWM2,
		PeakSunHours:     c.Simulation.PeakSunHours,
		DegradationYears: c.Simulation.DegradationYears,
		DegradationRate:  c.Simulation.DegradationRate,
	}, nil
}

// EconomicConfig construye y valida los coeficientes económicos.
func (c *Config) EconomicConfig() (domain.EconomicConfig, error) {
	e := domain.EconomicConfig{
		WidthM:             c.Economics.WidthM,
		HeightM:            c.Economics.HeightM,
		ElectricityPrice:   c.Economics.ElectricityPrice,
		LifetimeYears:      c.Economics.LifetimeYears,
		PeakSunHours:       c.Economics.PeakSunHours,
		Irradiance:         c.Economics.IrradianceWM2,
		GridIntensity:      c.Economics.GridIntensity,
		CarbonCreditPrice:  c.Economics.CarbonCreditPrice,
		GlassCostPerM2:     c.Economics.GlassCostPerM2,
		SynthesisCostPerKg: c.Economics.SynthesisCostPerKg,
		PVCostPerWatt:      c.Economics.PVCostPerWatt,
		AssemblyPerM2:      c.Economics.AssemblyPerM2,
		GlassDensity:       c.Economics.GlassDensity,
		PVEfficiency:       c.Economics.PVEfficiency,
		AbsorptionAlpha:    c.Economics.AbsorptionAlpha,
		SelfAbsorbBeta:     c.Economics.SelfAbsorbBeta,
		Trapping:           c.Economics.Trapping,
	}
	if err := e.Validate(); err != nil {
		return domain.EconomicConfig{}, fmt.Errorf("config.EconomicConfig: %w", err)
	}
	return e, nil
}

// OptimizerConfig reúne economía, workers e intervalo de progreso del sweep.
func (c *Config) OptimizerConfig() (optimizer.Config, error) {
	eco, err := c.EconomicConfig()
	if err != nil {
		return optimizer.Config{}, err
	}
	return optimizer.Config{
		Economics:     eco,
		Workers:       c.Sweep.Workers,
		ProgressEvery: time.Duration(c.Sweep.ProgressSeconds) * time.Second,
	}, nil
}

// Grid construye el grid de búsqueda.
func (c *Config) Grid() (optimizer.Grid, error) {
	g, err := optimizer.NewGrid(
		c.Sweep.ConcentrationMin,
		c.Sweep.ConcentrationMax,
		c.Sweep.ConcentrationPoints,
		c.Sweep.ThicknessesMM,
	)
	if err != nil {
		return optimizer.Grid{}, fmt.Errorf("config.Grid: %w", err)
	}
	return g, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("GLASS2GRID_DB"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("GLASS2GRID_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("GLASS2GRID_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GLASS2GRID_WORKERS=%q: %w", v, err)
		}
		cfg.Sweep.Workers = n
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Mode == "" {
		cfg.Mode = "all"
	}
	if cfg.Sweep.Workers < 0 {
		cfg.Sweep.Workers = 0
	}
	if cfg.Sweep.ProgressSeconds <= 0 {
		cfg.Sweep.ProgressSeconds = 2
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "glass2grid.db"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
