package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/application/optimizer"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/ports"
	"github.com/google/uuid"
)

// Mode selecciona qué partes del motor se ejecutan.
type Mode string

const (
	ModeSimulate Mode = "simulate"
	ModeOptimize Mode = "optimize"
	ModeAll      Mode = "all"
)

// ParseMode valida el modo recibido por CLI o config.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeSimulate, ModeOptimize, ModeAll:
		return m, nil
	}
	return "", fmt.Errorf("runner.ParseMode: unknown mode %q (simulate|optimize|all)", s)
}

// ScenarioRunner es lo que el runner necesita del modelo físico.
type ScenarioRunner interface {
	RunFullScenario() (domain.OpticalResult, error)
}

// Searcher es lo que el runner necesita del optimizador económico.
type Searcher interface {
	Optimize(ctx context.Context, grid optimizer.Grid) (domain.SearchOutcome, error)
}

// Config contiene la configuración del runner.
type Config struct {
	Mode Mode
	Grid optimizer.Grid
}

// Runner orquesta una ejecución: calcula, notifica, persiste y escribe ficheros.
type Runner struct {
	cfg      Config
	scenario ScenarioRunner
	search   Searcher
	notifier ports.Notifier
	storage  ports.Storage      // opcional
	writer   ports.ResultWriter // opcional
	now      func() time.Time
}

// New crea un Runner con todas las dependencias inyectadas.
// storage y writer pueden ser nil.
func New(
	cfg Config,
	scenario ScenarioRunner,
	search Searcher,
	notifier ports.Notifier,
	storage ports.Storage,
	writer ports.ResultWriter,
) *Runner {
	return &Runner{
		cfg:      cfg,
		scenario: scenario,
		search:   search,
		notifier: notifier,
		storage:  storage,
		writer:   writer,
		now:      time.Now,
	}
}

// Run ejecuta el modo configurado. En ModeAll el escenario va primero y un fallo
// corta la ejecución antes del sweep.
func (r *Runner) Run(ctx context.Context) error {
	slog.Info("run starting",
		"mode", r.cfg.Mode,
		"grid_cells", r.cfg.Grid.Size(),
		"store", r.storage != nil,
		"write_files", r.writer != nil,
	)

	if r.cfg.Mode == ModeSimulate || r.cfg.Mode == ModeAll {
		if _, _, err := r.RunScenario(ctx); err != nil {
			return err
		}
	}
	if r.cfg.Mode == ModeOptimize || r.cfg.Mode == ModeAll {
		if _, _, err := r.RunSweep(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunScenario evalúa el panel configurado y propaga el resultado a los adaptadores.
func (r *Runner) RunScenario(ctx context.Context) (domain.RunSummary, domain.OpticalResult, error) {
	run, start := r.newRun(domain.RunScenario)

	res, err := r.scenario.RunFullScenario()
	if err != nil {
		return run, domain.OpticalResult{}, fmt.Errorf("runner.RunScenario: %w", err)
	}
	run.Duration = r.now().Sub(start)
	run.Headline = res.OpticalEfficiency

	if err := r.notifier.NotifyScenario(ctx, run, res); err != nil {
		slog.Warn("notifier error", "run_id", run.ID, "err", err)
	}

	if r.storage != nil {
		if err := r.storage.SaveScenario(ctx, run, res); err != nil {
			slog.Warn("storage error", "run_id", run.ID, "err", err)
		}
	}

	if r.writer != nil {
		path, err := r.writer.WriteScenario(ctx, res)
		if err != nil {
			return run, res, fmt.Errorf("runner.RunScenario: %w", err)
		}
		slog.Info("scenario record written", "path", path)
	}

	slog.Info("scenario complete",
		"run_id", run.ID,
		"optical_efficiency", fmt.Sprintf("%.4f", res.OpticalEfficiency),
		"power_w", fmt.Sprintf("%.2f", res.PowerOutputW),
		"warnings", len(res.Warnings),
		"duration", run.Duration.Round(time.Microsecond),
	)
	return run, res, nil
}

// RunSweep ejecuta la búsqueda exhaustiva sobre el grid configurado.
func (r *Runner) RunSweep(ctx context.Context) (domain.RunSummary, domain.SearchOutcome, error) {
	run, start := r.newRun(domain.RunSweep)

	outcome, err := r.search.Optimize(ctx, r.cfg.Grid)
	if err != nil {
		return run, domain.SearchOutcome{}, fmt.Errorf("runner.RunSweep: %w", err)
	}
	run.Duration = r.now().Sub(start)
	run.Cells = len(outcome.Log)
	run.Headline = outcome.Metrics.NetProfit
	run.BestConcPPM = outcome.ConcentrationPPM
	run.BestThickMM = outcome.ThicknessMM

	if err := r.notifier.NotifySweep(ctx, run, outcome); err != nil {
		slog.Warn("notifier error", "run_id", run.ID, "err", err)
	}

	if r.storage != nil {
		if err := r.storage.SaveSweep(ctx, run, outcome); err != nil {
			slog.Warn("storage error", "run_id", run.ID, "err", err)
		}
	}

	if r.writer != nil {
		path, err := r.writer.WriteOptimum(ctx, outcome)
		if err != nil {
			return run, outcome, fmt.Errorf("runner.RunSweep: %w", err)
		}
		slog.Info("optimum record written", "path", path)
	}

	slog.Info("sweep complete",
		"run_id", run.ID,
		"cells", run.Cells,
		"best_concentration_ppm", outcome.ConcentrationPPM,
		"best_thickness_mm", outcome.ThicknessMM,
		"net_profit", fmt.Sprintf("$%.2f", outcome.Metrics.NetProfit),
		"roi", fmt.Sprintf("%.1f%%", outcome.Metrics.ROI),
		"duration", run.Duration.Round(time.Millisecond),
	)
	return run, outcome, nil
}

// newRun devuelve la fila del run (StartedAt en UTC para persistir) y el instante
// crudo de inicio, que conserva la lectura monotónica para medir la duración.
func (r *Runner) newRun(kind domain.RunKind) (domain.RunSummary, time.Time) {
	start := r.now()
	return domain.RunSummary{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: start.UTC(),
	}, start
}
