package storage

// sqlite.go: historial de ejecuciones.
//
// Estrategia:
//   - `runs`: una fila ligera por ejecución (escenario o sweep), clave uuid.
//   - `scenarios` / `sweeps`: el resultado completo de cada tipo, 1:1 con runs.
//   - `evaluations`: el log del grid, una fila por celda en orden de evaluación.
//   - Tiempos como unix nanos: BETWEEN y ORDER BY exactos sin parsear texto.
//   - Prune automático al arrancar: ejecuciones > 90d (cascade al resto).

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS runs (
    id            TEXT    PRIMARY KEY,
    kind          TEXT    NOT NULL,
    started_at    INTEGER NOT NULL,
    duration_ns   INTEGER NOT NULL DEFAULT 0,
    cells         INTEGER NOT NULL DEFAULT 0,
    headline      REAL    NOT NULL DEFAULT 0,
    best_conc_ppm REAL    NOT NULL DEFAULT 0,
    best_thick_mm REAL    NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS scenarios (
    run_id             TEXT PRIMARY KEY REFERENCES runs(id) ON DELETE CASCADE,
    fidelity           TEXT NOT NULL,
    optical_efficiency REAL NOT NULL,
    power_output_w     REAL NOT NULL,
    power_density      REAL NOT NULL,
    area_m2            REAL NOT NULL DEFAULT 0,
    annual_energy_kwh  REAL NOT NULL DEFAULT 0,
    lifetime_kwh       REAL NOT NULL DEFAULT 0,
    warnings           TEXT
);

CREATE TABLE IF NOT EXISTS sweeps (
    run_id             TEXT PRIMARY KEY REFERENCES runs(id) ON DELETE CASCADE,
    concentration_ppm  REAL NOT NULL,
    thickness_mm       REAL NOT NULL,
    roi                REAL NOT NULL,
    capex              REAL NOT NULL,
    power              REAL NOT NULL,
    net_profit         REAL NOT NULL,
    optical_efficiency REAL NOT NULL DEFAULT 0,
    annual_energy_kwh  REAL NOT NULL DEFAULT 0,
    lifetime_revenue   REAL NOT NULL DEFAULT 0,
    dopant_mass_kg     REAL NOT NULL DEFAULT 0,
    materials_cost     REAL NOT NULL DEFAULT 0,
    pv_cost            REAL NOT NULL DEFAULT 0,
    assembly_cost      REAL NOT NULL DEFAULT 0,
    payback_years      REAL NOT NULL DEFAULT 0,
    co2_offset_kg      REAL NOT NULL DEFAULT 0,
    carbon_credit      REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS evaluations (
    run_id            TEXT    NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    idx               INTEGER NOT NULL,
    concentration_ppm REAL    NOT NULL,
    thickness_mm      REAL    NOT NULL,
    net_profit        REAL    NOT NULL,
    PRIMARY KEY (run_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_kind    ON runs(kind);
`

// migrations añade columnas que no existen en bases creadas por versiones anteriores.
var migrations = []string{
	"ALTER TABLE sweeps ADD COLUMN payback_years REAL NOT NULL DEFAULT 0",
	"ALTER TABLE sweeps ADD COLUMN co2_offset_kg REAL NOT NULL DEFAULT 0",
	"ALTER TABLE sweeps ADD COLUMN carbon_credit REAL NOT NULL DEFAULT 0",
}

const retentionRuns = 90 * 24 * time.Hour

// ErrRunNotFound indica que el id no existe o no es un sweep.
var ErrRunNotFound = errors.New("run not found")

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia ejecuciones antiguas.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	for _, stmt := range migrations {
		db.Exec(stmt) // ignora el error si la columna ya existe
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveScenario persiste la fila de run y el resultado del escenario en una transacción.
func (s *SQLiteStorage) SaveScenario(ctx context.Context, run domain.RunSummary, res domain.OpticalResult) error {
	var warnings sql.NullString
	if len(res.Warnings) > 0 {
		b, err := json.Marshal(res.Warnings)
		if err != nil {
			return fmt.Errorf("storage.SaveScenario: encode warnings: %w", err)
		}
		warnings = sql.NullString{String: string(b), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveScenario: begin tx: %w", err)
	}
	defer tx.Rollback()

	run.Kind = domain.RunScenario
	run.Headline = res.OpticalEfficiency
	if err := insertRun(ctx, tx, run); err != nil {
		return fmt.Errorf("storage.SaveScenario: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO scenarios
			(run_id, fidelity, optical_efficiency, power_output_w, power_density,
			 area_m2, annual_energy_kwh, lifetime_kwh, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, res.Fidelity, res.OpticalEfficiency, res.PowerOutputW, res.PowerDensity,
		res.AreaM2, res.AnnualEnergyKWh, res.LifetimeEnergyKWh, warnings,
	); err != nil {
		return fmt.Errorf("storage.SaveScenario: insert scenario %s: %w", run.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveScenario: commit: %w", err)
	}
	return nil
}

// SaveSweep persiste la mejor configuración y el log completo del grid.
func (s *SQLiteStorage) SaveSweep(ctx context.Context, run domain.RunSummary, outcome domain.SearchOutcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveSweep: begin tx: %w", err)
	}
	defer tx.Rollback()

	run.Kind = domain.RunSweep
	run.Cells = len(outcome.Log)
	run.Headline = outcome.Metrics.NetProfit
	run.BestConcPPM = outcome.ConcentrationPPM
	run.BestThickMM = outcome.ThicknessMM
	if err := insertRun(ctx, tx, run); err != nil {
		return fmt.Errorf("storage.SaveSweep: %w", err)
	}

	m := outcome.Metrics
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sweeps
			(run_id, concentration_ppm, thickness_mm, roi, capex, power, net_profit,
			 optical_efficiency, annual_energy_kwh, lifetime_revenue, dopant_mass_kg,
			 materials_cost, pv_cost, assembly_cost,
			 payback_years, co2_offset_kg, carbon_credit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, outcome.ConcentrationPPM, outcome.ThicknessMM,
		m.ROI, m.Capex, m.Power, m.NetProfit,
		m.OpticalEfficiency, m.AnnualEnergyKWh, m.LifetimeRevenue, m.DopantMassKg,
		m.MaterialsCost, m.PVCost, m.AssemblyCost,
		m.PaybackYears, m.CO2OffsetKg, m.CarbonCreditValue,
	); err != nil {
		return fmt.Errorf("storage.SaveSweep: insert sweep %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO evaluations (run_id, idx, concentration_ppm, thickness_mm, net_profit)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveSweep: prepare: %w", err)
	}
	defer stmt.Close()

	for i, e := range outcome.Log {
		if _, err := stmt.ExecContext(ctx, run.ID, i, e.ConcentrationPPM, e.ThicknessMM, e.NetProfit); err != nil {
			return fmt.Errorf("storage.SaveSweep: insert evaluation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveSweep: commit: %w", err)
	}
	return nil
}

// GetHistory devuelve las ejecuciones cuyo started_at está en el rango dado.
// Ordenadas por started_at desc, las más recientes primero.
func (s *SQLiteStorage) GetHistory(ctx context.Context, from, to time.Time) ([]domain.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, started_at, duration_ns, cells, headline, best_conc_ppm, best_thick_mm
		FROM runs
		WHERE started_at BETWEEN ? AND ?
		ORDER BY started_at DESC
	`, from.UnixNano(), to.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("storage.GetHistory: query: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var r domain.RunSummary
		var kind string
		var startedAt, durationNS int64

		if err := rows.Scan(
			&r.ID,
			&kind,
			&startedAt,
			&durationNS,
			&r.Cells,
			&r.Headline,
			&r.BestConcPPM,
			&r.BestThickMM,
		); err != nil {
			return nil, fmt.Errorf("storage.GetHistory: scan row: %w", err)
		}

		r.Kind = domain.RunKind(kind)
		r.StartedAt = time.Unix(0, startedAt).UTC()
		r.Duration = time.Duration(durationNS)
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetSweep recarga un sweep persistido con su log en el orden original.
func (s *SQLiteStorage) GetSweep(ctx context.Context, id string) (domain.SearchOutcome, error) {
	var out domain.SearchOutcome
	m := &out.Metrics
	err := s.db.QueryRowContext(ctx, `
		SELECT concentration_ppm, thickness_mm, roi, capex, power, net_profit,
		       optical_efficiency, annual_energy_kwh, lifetime_revenue, dopant_mass_kg,
		       materials_cost, pv_cost, assembly_cost,
		       payback_years, co2_offset_kg, carbon_credit
		FROM sweeps WHERE run_id = ?
	`, id).Scan(
		&out.ConcentrationPPM, &out.ThicknessMM,
		&m.ROI, &m.Capex, &m.Power, &m.NetProfit,
		&m.OpticalEfficiency, &m.AnnualEnergyKWh, &m.LifetimeRevenue, &m.DopantMassKg,
		&m.MaterialsCost, &m.PVCost, &m.AssemblyCost,
		&m.PaybackYears, &m.CO2OffsetKg, &m.CarbonCreditValue,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SearchOutcome{}, fmt.Errorf("storage.GetSweep: %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("storage.GetSweep: query sweep: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT concentration_ppm, thickness_mm, net_profit
		FROM evaluations WHERE run_id = ?
		ORDER BY idx ASC
	`, id)
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("storage.GetSweep: query evaluations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.Evaluation
		if err := rows.Scan(&e.ConcentrationPPM, &e.ThicknessMM, &e.NetProfit); err != nil {
			return domain.SearchOutcome{}, fmt.Errorf("storage.GetSweep: scan evaluation: %w", err)
		}
		out.Log = append(out.Log, e)
	}
	return out, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

func insertRun(ctx context.Context, tx *sql.Tx, run domain.RunSummary) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, kind, started_at, duration_ns, cells, headline, best_conc_ppm, best_thick_mm)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), run.StartedAt.UnixNano(), int64(run.Duration),
		run.Cells, run.Headline, run.BestConcPPM, run.BestThickMM,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// pruneOld elimina ejecuciones antiguas para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().Add(-retentionRuns).UnixNano()
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
}
