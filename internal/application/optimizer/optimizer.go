package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain/efficiency"
)

// Config controla el optimizador económico.
type Config struct {
	Economics     domain.EconomicConfig
	Workers       int           // goroutines para el sweep (0 = NumCPU*2, 1 = secuencial)
	ProgressEvery time.Duration // intervalo mínimo entre logs de progreso
}

// DefaultConfig devuelve la configuración de referencia con sweep paralelo.
func DefaultConfig() Config {
	return Config{
		Economics:     domain.DefaultEconomicConfig(),
		ProgressEvery: 2 * time.Second,
	}
}

// EconomicOptimizer evalúa ROI por configuración y busca el máximo beneficio neto.
// No guarda estado mutable: puede usarse desde varias goroutines.
type EconomicOptimizer struct {
	cfg       Config
	waveguide efficiency.DopedWaveguide
}

// New valida los coeficientes económicos.
func New(cfg Config) (*EconomicOptimizer, error) {
	if err := cfg.Economics.Validate(); err != nil {
		return nil, fmt.Errorf("optimizer.New: %w", err)
	}
	return &EconomicOptimizer{
		cfg:       cfg,
		waveguide: efficiency.NewDopedWaveguide(cfg.Economics),
	}, nil
}

// Economics devuelve los coeficientes en uso.
func (o *EconomicOptimizer) Economics() domain.EconomicConfig { return o.cfg.Economics }

// OpticalModel evalúa el modelo de tres etapas para un panel width × height.
func (o *EconomicOptimizer) OpticalModel(concentrationPPM, thicknessMM, widthM, heightM float64) (float64, error) {
	return o.waveguide.Efficiency(concentrationPPM, thicknessMM, widthM, heightM)
}

// CalculateROI evalúa una configuración: potencia, energía, ingresos de vida útil,
// capex, ROI y el impacto (payback, CO2 evitado, créditos de carbono). Función pura de (concentración, espesor) y la configuración.
func (o *EconomicOptimizer) CalculateROI(concentrationPPM, thicknessMM float64) (domain.EconomicResult, error) {
	if !(concentrationPPM > 0) || !(thicknessMM > 0) {
		return domain.EconomicResult{}, fmt.Errorf("optimizer.CalculateROI: concentration=%g ppm thickness=%g mm: %w",
			concentrationPPM, thicknessMM, domain.ErrInvalidEconomics)
	}
	econ := o.cfg.Economics

	eff, err := o.OpticalModel(concentrationPPM, thicknessMM, econ.WidthM, econ.HeightM)
	if err != nil {
		return domain.EconomicResult{}, fmt.Errorf("optimizer.CalculateROI: %w", err)
	}

	power, _, err := domain.PowerOutput(econ.Area(), eff, econ.PVEfficiency, econ.Irradiance)
	if err != nil {
		return domain.EconomicResult{}, fmt.Errorf("optimizer.CalculateROI: %w", err)
	}

	annual := domain.AnnualEnergyKWh(power, econ.PeakSunHours)
	revenue := econ.LifetimeRevenue(annual)

	costs := econ.Capex(concentrationPPM, thicknessMM, power)
	capex := costs.Total()
	net := revenue - capex

	roi, err := domain.ROIPercent(net, capex)
	if err != nil {
		return domain.EconomicResult{}, fmt.Errorf("optimizer.CalculateROI: %w", err)
	}
	payback, err := econ.PaybackYears(capex, annual)
	if err != nil {
		return domain.EconomicResult{}, fmt.Errorf("optimizer.CalculateROI: %w", err)
	}
	co2 := econ.CO2OffsetKg(annual)

	slog.Debug("cell evaluated",
		"concentration_ppm", concentrationPPM,
		"thickness_mm", thicknessMM,
		"optical_efficiency", fmt.Sprintf("%.4f", eff),
		"net_profit", fmt.Sprintf("%.2f", net),
	)

	return domain.EconomicResult{
		ROI:               roi,
		Capex:             capex,
		Power:             power,
		NetProfit:         net,
		OpticalEfficiency: eff,
		AnnualEnergyKWh:   annual,
		LifetimeRevenue:   revenue,
		DopantMassKg:      costs.DopantMassKg,
		MaterialsCost:     costs.Materials,
		PVCost:            costs.PV,
		AssemblyCost:      costs.Assembly,
		PaybackYears:      payback,
		CO2OffsetKg:       co2,
		CarbonCreditValue: econ.CarbonCreditValue(co2),
	}, nil
}

// Optimize recorre el grid completo y devuelve la configuración con mayor
// beneficio neto junto con el log de todas las evaluaciones.
// Empates: gana la primera celda en orden de grid.
func (o *EconomicOptimizer) Optimize(ctx context.Context, grid Grid) (domain.SearchOutcome, error) {
	cells := grid.Cells()
	if len(cells) == 0 {
		return domain.SearchOutcome{}, fmt.Errorf("optimizer.Optimize: empty grid: %w", domain.ErrInvalidEconomics)
	}

	start := time.Now()
	var (
		results []cellResult
		err     error
	)
	if o.cfg.Workers == 1 {
		results, err = o.evaluateSequential(ctx, cells)
	} else {
		results, err = o.evaluateConcurrent(ctx, cells, o.cfg.Workers)
	}
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("optimizer.Optimize: %w", err)
	}

	outcome := selectBest(results)

	slog.Info("optimization complete",
		"cells", len(cells),
		"best_concentration_ppm", fmt.Sprintf("%.1f", outcome.ConcentrationPPM),
		"best_thickness_mm", outcome.ThicknessMM,
		"net_profit", fmt.Sprintf("$%.2f", outcome.Metrics.NetProfit),
		"roi", fmt.Sprintf("%.1f%%", outcome.Metrics.ROI),
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return outcome, nil
}

// cellResult es una celda evaluada, antes de reducir.
type cellResult struct {
	cell   Cell
	result domain.EconomicResult
}

// evaluateSequential es el recorrido de referencia, celda a celda.
func (o *EconomicOptimizer) evaluateSequential(ctx context.Context, cells []Cell) ([]cellResult, error) {
	progress := newProgress(len(cells), o.cfg.ProgressEvery)
	results := make([]cellResult, len(cells))
	for i, c := range cells {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := o.CalculateROI(c.ConcentrationPPM, c.ThicknessMM)
		if err != nil {
			return nil, err
		}
		results[i] = cellResult{cell: c, result: res}
		progress.tick()
	}
	return results, nil
}

// selectBest reduce las celdas en orden de grid por max net_profit.
// Comparación estricta: un empate posterior no reemplaza al primero.
func selectBest(results []cellResult) domain.SearchOutcome {
	var outcome domain.SearchOutcome
	outcome.Log = make([]domain.Evaluation, 0, len(results))

	best := -1
	for i, r := range results {
		outcome.Log = append(outcome.Log, domain.Evaluation{
			ConcentrationPPM: r.cell.ConcentrationPPM,
			ThicknessMM:      r.cell.ThicknessMM,
			NetProfit:        r.result.NetProfit,
		})
		if best < 0 || r.result.NetProfit > results[best].result.NetProfit {
			best = i
		}
	}
	if best >= 0 {
		outcome.ConcentrationPPM = results[best].cell.ConcentrationPPM
		outcome.ThicknessMM = results[best].cell.ThicknessMM
		outcome.Metrics = results[best].result
	}
	return outcome
}
