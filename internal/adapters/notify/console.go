package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/olekukonko/tablewriter"
)

const defaultTop = 10

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
	top   int
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool, top int) *Console {
	if top <= 0 {
		top = defaultTop
	}
	return &Console{out: os.Stdout, table: table, top: top}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table, top: defaultTop}
}

// NotifyScenario imprime el escenario en el modo configurado.
func (c *Console) NotifyScenario(_ context.Context, run domain.RunSummary, res domain.OpticalResult) error {
	if c.table {
		c.printScenarioTable(run, res)
	} else {
		fmt.Fprintf(c.out, "[%s] scenario %s | %s η_opt=%.4f P=%.2fW (%.2f W/m²)\n",
			run.StartedAt.Format("15:04:05"), shortID(run.ID), res.Fidelity,
			res.OpticalEfficiency, res.PowerOutputW, res.PowerDensity)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(c.out, "  ⚠ %s\n", w)
	}
	return nil
}

// NotifySweep imprime la mejor configuración y, en modo tabla, el ranking y la matriz.
func (c *Console) NotifySweep(_ context.Context, run domain.RunSummary, outcome domain.SearchOutcome) error {
	m := outcome.Metrics
	if !c.table {
		fmt.Fprintf(c.out, "[%s] sweep %s | %d cells → best %.0f ppm × %.1f mm net=$%.2f ROI=%.1f%% P=%.2fW\n",
			run.StartedAt.Format("15:04:05"), shortID(run.ID), len(outcome.Log),
			outcome.ConcentrationPPM, outcome.ThicknessMM, m.NetProfit, m.ROI, m.Power)
		return nil
	}

	fmt.Fprintf(c.out, "\n[%s] sweep %s — %d cells in %s\n",
		run.StartedAt.Format("15:04:05"), shortID(run.ID), len(outcome.Log), run.Duration.Round(time.Millisecond))

	c.printTop(outcome)
	c.printMatrix(outcome.Log)

	fmt.Fprintf(c.out, "\n=== OPTIMUM: %.0f ppm × %.1f mm ===\n", outcome.ConcentrationPPM, outcome.ThicknessMM)
	fmt.Fprintf(c.out, "  η_opt:        %.4f\n", m.OpticalEfficiency)
	fmt.Fprintf(c.out, "  Power:        %.2f W  (%.1f kWh/year)\n", m.Power, m.AnnualEnergyKWh)
	fmt.Fprintf(c.out, "  Capex:        $%.2f  (materials $%.2f | pv $%.2f | assembly $%.2f)\n",
		m.Capex, m.MaterialsCost, m.PVCost, m.AssemblyCost)
	fmt.Fprintf(c.out, "  Dopant mass:  %.4f kg\n", m.DopantMassKg)
	fmt.Fprintf(c.out, "  Revenue:      $%.2f over lifetime\n", m.LifetimeRevenue)
	fmt.Fprintf(c.out, "  Net profit:   $%.2f\n", m.NetProfit)
	fmt.Fprintf(c.out, "  ROI:          %.1f%%\n", m.ROI)
	fmt.Fprintf(c.out, "  Payback:      %.1f years\n", m.PaybackYears)
	fmt.Fprintf(c.out, "  CO2 offset:   %.0f kg over lifetime ($%.2f in credits)\n\n", m.CO2OffsetKg, m.CarbonCreditValue)
	return nil
}

// PrintHistory imprime las ejecuciones persistidas.
func (c *Console) PrintHistory(runs []domain.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "\n  No runs in range.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Kind", "Started", "Took", "Cells", "Headline", "Best ppm", "Best mm")
	for _, r := range runs {
		headline := fmt.Sprintf("η=%.4f", r.Headline)
		best, thick := "-", "-"
		if r.Kind == domain.RunSweep {
			headline = fmt.Sprintf("$%.2f", r.Headline)
			best = fmt.Sprintf("%.0f", r.BestConcPPM)
			thick = fmt.Sprintf("%.1f", r.BestThickMM)
		}
		table.Append(
			shortID(r.ID),
			string(r.Kind),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration.Round(time.Millisecond).String(),
			fmt.Sprintf("%d", r.Cells),
			headline,
			best,
			thick,
		)
	}
	table.Render()
}

// printScenarioTable imprime el escenario completo con su contexto físico.
func (c *Console) printScenarioTable(run domain.RunSummary, res domain.OpticalResult) {
	fmt.Fprintf(c.out, "\n[%s] scenario %s — fidelity %s\n",
		run.StartedAt.Format("15:04:05"), shortID(run.ID), res.Fidelity)

	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value")
	rows := [][2]string{
		{"Optical efficiency", fmt.Sprintf("%.4f", res.OpticalEfficiency)},
		{"Power output", fmt.Sprintf("%.2f W", res.PowerOutputW)},
		{"Power density", fmt.Sprintf("%.2f W/m²", res.PowerDensity)},
		{"Area", fmt.Sprintf("%.3f m²", res.AreaM2)},
		{"Geometric gain", fmt.Sprintf("%.1f", res.GeometricGain)},
		{"Spectral overlap", fmt.Sprintf("%.4f", res.SpectralOverlap)},
		{"Trapping", fmt.Sprintf("%.4f", res.TrappingEfficiency)},
		{"Critical angle", fmt.Sprintf("%.1f°", res.CriticalAngleDeg)},
		{"Path length", fmt.Sprintf("%.3f m", res.PathLengthM)},
		{"Annual energy", fmt.Sprintf("%.1f kWh", res.AnnualEnergyKWh)},
		{"Lifetime energy", fmt.Sprintf("%.1f kWh", res.LifetimeEnergyKWh)},
	}
	for _, r := range rows {
		table.Append(r[0], r[1])
	}
	if n := len(res.Degradation); n > 0 {
		table.Append(fmt.Sprintf("Retention y%d", n-1), fmt.Sprintf("%.1f%%", res.Degradation[n-1]*100))
	}
	table.Render()
}

// printTop imprime las N mejores celdas por beneficio neto.
func (c *Console) printTop(outcome domain.SearchOutcome) {
	ranked := make([]domain.Evaluation, len(outcome.Log))
	copy(ranked, outcome.Log)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].NetProfit > ranked[j].NetProfit })
	if len(ranked) > c.top {
		ranked = ranked[:c.top]
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "ppm", "mm", "Net profit", "")
	for i, e := range ranked {
		mark := ""
		if e.ConcentrationPPM == outcome.ConcentrationPPM && e.ThicknessMM == outcome.ThicknessMM {
			mark = "*"
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f", e.ConcentrationPPM),
			fmt.Sprintf("%.1f", e.ThicknessMM),
			fmt.Sprintf("$%.2f", e.NetProfit),
			mark,
		)
	}
	table.Render()
}

// printMatrix imprime el beneficio neto como matriz concentración × espesor.
// El log viene en orden concentración-major.
func (c *Console) printMatrix(log []domain.Evaluation) {
	if len(log) == 0 {
		return
	}

	var concs, thicks []float64
	seenThick := make(map[float64]bool)
	profit := make(map[[2]float64]float64, len(log))
	for _, e := range log {
		if len(concs) == 0 || concs[len(concs)-1] != e.ConcentrationPPM {
			concs = append(concs, e.ConcentrationPPM)
		}
		if !seenThick[e.ThicknessMM] {
			seenThick[e.ThicknessMM] = true
			thicks = append(thicks, e.ThicknessMM)
		}
		profit[[2]float64{e.ConcentrationPPM, e.ThicknessMM}] = e.NetProfit
	}

	header := []any{"ppm \\ mm"}
	for _, t := range thicks {
		header = append(header, fmt.Sprintf("%.1f", t))
	}

	fmt.Fprintln(c.out, "\n  Net profit ($) per cell:")
	table := tablewriter.NewWriter(c.out)
	table.Header(header...)
	for _, conc := range concs {
		row := []any{fmt.Sprintf("%.0f", conc)}
		for _, t := range thicks {
			v, ok := profit[[2]float64{conc, t}]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.0f", v))
		}
		table.Append(row...)
	}
	table.Render()
}

// --- helpers ---

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
