package optimizer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptimizer(t *testing.T, workers int) *EconomicOptimizer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Workers = workers
	o, err := New(cfg)
	require.NoError(t, err)
	return o
}

// --- Grid ---

func TestDefaultGrid(t *testing.T) {
	g := DefaultGrid()
	require.Len(t, g.ConcentrationsPPM, 20)
	assert.Equal(t, 50.0, g.ConcentrationsPPM[0])
	assert.InDelta(t, 1000.0, g.ConcentrationsPPM[19], 1e-9)
	assert.InDelta(t, 100.0, g.ConcentrationsPPM[1], 1e-9)
	assert.Equal(t, []float64{4, 5, 6, 8, 10, 12}, g.ThicknessesMM)
	assert.Equal(t, 120, g.Size())
}

func TestGrid_CellsConcentrationMajor(t *testing.T) {
	g, err := NewGrid(100, 200, 2, []float64{4, 6})
	require.NoError(t, err)

	cells := g.Cells()
	require.Len(t, cells, 4)
	assert.Equal(t, Cell{Index: 0, ConcentrationPPM: 100, ThicknessMM: 4}, cells[0])
	assert.Equal(t, Cell{Index: 1, ConcentrationPPM: 100, ThicknessMM: 6}, cells[1])
	assert.Equal(t, Cell{Index: 2, ConcentrationPPM: 200, ThicknessMM: 4}, cells[2])
	assert.Equal(t, Cell{Index: 3, ConcentrationPPM: 200, ThicknessMM: 6}, cells[3])
}

func TestNewGrid_SinglePoint(t *testing.T) {
	g, err := NewGrid(300, 300, 1, []float64{6})
	require.NoError(t, err)
	assert.Equal(t, []float64{300}, g.ConcentrationsPPM)
}

func TestNewGrid_Invalid(t *testing.T) {
	_, err := NewGrid(0, 100, 5, []float64{6})
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))

	_, err = NewGrid(100, 50, 5, []float64{6})
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))

	_, err = NewGrid(50, 100, 0, []float64{6})
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))

	_, err = NewGrid(50, 100, 5, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))

	_, err = NewGrid(50, 100, 5, []float64{6, -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))
}

// --- OpticalModel / CalculateROI ---

func TestOpticalModel_ZeroConcentration(t *testing.T) {
	o := newTestOptimizer(t, 1)
	for _, thick := range DefaultGrid().ThicknessesMM {
		eff, err := o.OpticalModel(0, thick, 1.2, 2.0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, eff)
	}
}

func TestCalculateROI_Reference(t *testing.T) {
	o := newTestOptimizer(t, 1)
	res, err := o.CalculateROI(500, 6)
	require.NoError(t, err)

	eff, err := o.OpticalModel(500, 6, 1.2, 2.0)
	require.NoError(t, err)

	power := 1000 * 2.4 * eff * 0.22
	annual := power / 1000 * 5.5 * 365
	revenue := annual * 0.18 * 25
	dopant := 2.4 * 0.006 * 2500 * 500 / 1e6
	capex := 2.4*25 + dopant*500 + power*0.3 + 2.4*50

	assert.InDelta(t, power, res.Power, 1e-9)
	assert.InDelta(t, capex, res.Capex, 1e-9)
	assert.InDelta(t, revenue-capex, res.NetProfit, 1e-9)
	assert.InDelta(t, (revenue-capex)/capex*100, res.ROI, 1e-9)
	assert.InDelta(t, res.MaterialsCost+res.PVCost+res.AssemblyCost, res.Capex, 1e-9)

	// ~30.8 W y ~$80 de beneficio por panel
	assert.InDelta(t, 30.8, res.Power, 0.1)
	assert.InDelta(t, 80, res.NetProfit, 1)

	// Impacto: payback = capex / ahorro anual, CO2 = kWh × 0.45 × 25.
	assert.InDelta(t, capex/(annual*0.18), res.PaybackYears, 1e-9)
	assert.InDelta(t, annual*0.45*25, res.CO2OffsetKg, 1e-9)
	assert.InDelta(t, annual*0.45*25/1000*40, res.CarbonCreditValue, 1e-9)
	assert.InDelta(t, 17.8, res.PaybackYears, 0.2)
	assert.InDelta(t, 695, res.CO2OffsetKg, 3)
	assert.Less(t, res.PaybackYears, 25.0, "pays back within its lifetime")
}

func TestCalculateROI_Idempotent(t *testing.T) {
	o := newTestOptimizer(t, 1)
	first, err := o.CalculateROI(500, 6)
	require.NoError(t, err)

	// Intercalar otras llamadas no altera el resultado.
	_, _ = o.CalculateROI(50, 12)
	_, _ = o.CalculateROI(1000, 4)

	again, err := o.CalculateROI(500, 6)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestCalculateROI_RejectsNonPositive(t *testing.T) {
	o := newTestOptimizer(t, 1)

	_, err := o.CalculateROI(0, 6)
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))

	_, err = o.CalculateROI(500, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))

	_, err = o.CalculateROI(math.NaN(), 6)
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))
}

func TestNew_RejectsInvalidEconomics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Economics.PVCostPerWatt = -0.3
	_, err := New(cfg)
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))
}

// --- Optimize ---

func TestOptimize_FullGridMaximum(t *testing.T) {
	o := newTestOptimizer(t, 1)
	grid := DefaultGrid()

	outcome, err := o.Optimize(context.Background(), grid)
	require.NoError(t, err)
	require.Len(t, outcome.Log, grid.Size())

	for _, c := range grid.Cells() {
		res, err := o.CalculateROI(c.ConcentrationPPM, c.ThicknessMM)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, outcome.Metrics.NetProfit, res.NetProfit,
			"conc=%.1f thick=%.0f", c.ConcentrationPPM, c.ThicknessMM)
	}

	best, err := o.CalculateROI(outcome.ConcentrationPPM, outcome.ThicknessMM)
	require.NoError(t, err)
	assert.Equal(t, best, outcome.Metrics)
}

func TestOptimize_LogInGridOrder(t *testing.T) {
	o := newTestOptimizer(t, 1)
	grid := DefaultGrid()

	outcome, err := o.Optimize(context.Background(), grid)
	require.NoError(t, err)

	for i, c := range grid.Cells() {
		assert.Equal(t, c.ConcentrationPPM, outcome.Log[i].ConcentrationPPM)
		assert.Equal(t, c.ThicknessMM, outcome.Log[i].ThicknessMM)
	}
}

func TestOptimize_ConcurrentMatchesSequential(t *testing.T) {
	grid := DefaultGrid()

	seq, err := newTestOptimizer(t, 1).Optimize(context.Background(), grid)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 7, 500} {
		par, err := newTestOptimizer(t, workers).Optimize(context.Background(), grid)
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

func TestOptimize_EmptyGrid(t *testing.T) {
	_, err := newTestOptimizer(t, 1).Optimize(context.Background(), Grid{})
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))
}

func TestOptimize_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOptimizer(t, 1).Optimize(ctx, DefaultGrid())
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = newTestOptimizer(t, 4).Optimize(ctx, DefaultGrid())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOptimize_InvalidCellFails(t *testing.T) {
	grid := Grid{ConcentrationsPPM: []float64{100, -5}, ThicknessesMM: []float64{6}}

	_, err := newTestOptimizer(t, 1).Optimize(context.Background(), grid)
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))

	_, err = newTestOptimizer(t, 3).Optimize(context.Background(), grid)
	assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))
}

func TestOptimize_ConcurrentReturnsFirstFailingCellInGridOrder(t *testing.T) {
	// Muchas celdas inválidas tras la primera: cualquier worker puede fallar antes
	// en una celda posterior, pero el error devuelto debe ser el de concentration=-1.
	concs := []float64{100, -1}
	for i := 2; i <= 40; i++ {
		concs = append(concs, -float64(i))
	}
	grid := Grid{ConcentrationsPPM: concs, ThicknessesMM: []float64{4, 6, 8}}

	opt := newTestOptimizer(t, 8)
	for i := 0; i < 20; i++ {
		_, err := opt.Optimize(context.Background(), grid)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidEconomics))
		assert.Contains(t, err.Error(), "concentration=-1 ppm thickness=4 mm")
	}
}

// --- selectBest ---

func TestSelectBest_FirstMaximumWins(t *testing.T) {
	results := []cellResult{
		{cell: Cell{Index: 0, ConcentrationPPM: 50, ThicknessMM: 4}, result: domain.EconomicResult{NetProfit: 10}},
		{cell: Cell{Index: 1, ConcentrationPPM: 50, ThicknessMM: 5}, result: domain.EconomicResult{NetProfit: 30}},
		{cell: Cell{Index: 2, ConcentrationPPM: 100, ThicknessMM: 4}, result: domain.EconomicResult{NetProfit: 30}},
		{cell: Cell{Index: 3, ConcentrationPPM: 100, ThicknessMM: 5}, result: domain.EconomicResult{NetProfit: 20}},
	}

	outcome := selectBest(results)
	assert.Equal(t, 50.0, outcome.ConcentrationPPM)
	assert.Equal(t, 5.0, outcome.ThicknessMM)
	assert.Len(t, outcome.Log, 4)
}

func TestSelectBest_AllNegative(t *testing.T) {
	results := []cellResult{
		{cell: Cell{ConcentrationPPM: 50, ThicknessMM: 4}, result: domain.EconomicResult{NetProfit: -30}},
		{cell: Cell{ConcentrationPPM: 60, ThicknessMM: 4}, result: domain.EconomicResult{NetProfit: -10}},
	}
	outcome := selectBest(results)
	assert.Equal(t, 60.0, outcome.ConcentrationPPM)
	assert.Equal(t, -10.0, outcome.Metrics.NetProfit)
}

func TestSearchOutcome_Record(t *testing.T) {
	outcome, err := newTestOptimizer(t, 1).Optimize(context.Background(), DefaultGrid())
	require.NoError(t, err)

	rec := outcome.Record()
	assert.Equal(t, outcome.ConcentrationPPM, rec["concentration_ppm"])
	assert.Equal(t, outcome.ThicknessMM, rec["thickness_mm"])

	metrics, ok := rec["metrics"].(map[string]float64)
	require.True(t, ok)
	assert.Len(t, metrics, 4)
	assert.Equal(t, outcome.Metrics.NetProfit, metrics["net_profit"])
}

func TestOptimize_ReferenceOptimum(t *testing.T) {
	outcome, err := newTestOptimizer(t, 0).Optimize(context.Background(), DefaultGrid())
	require.NoError(t, err)

	// Panel 1.2 × 2.0 m: el espesor máximo domina y la concentración se equilibra en 650 ppm.
	assert.InDelta(t, 650.0, outcome.ConcentrationPPM, 1e-9)
	assert.Equal(t, 12.0, outcome.ThicknessMM)
	assert.InDelta(t, 319.98, outcome.Metrics.NetProfit, 0.01)
	assert.InDelta(t, 59.93, outcome.Metrics.Power, 0.01)
}
