package storage_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/adapters/storage"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRun(startedAt time.Time) domain.RunSummary {
	return domain.RunSummary{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		Duration:  250 * time.Millisecond,
	}
}

func makeOutcome() domain.SearchOutcome {
	return domain.SearchOutcome{
		ConcentrationPPM: 650,
		ThicknessMM:      12,
		Metrics: domain.EconomicResult{
			ROI: 94.2, Capex: 339.7, Power: 59.93, NetProfit: 319.98,
			OpticalEfficiency: 0.1135, DopantMassKg: 0.0468,
			PaybackYears: 3.06, CO2OffsetKg: 1350.1, CarbonCreditValue: 54.0,
		},
		Log: []domain.Evaluation{
			{ConcentrationPPM: 50, ThicknessMM: 4, NetProfit: -120.5},
			{ConcentrationPPM: 50, ThicknessMM: 5, NetProfit: -100.1},
			{ConcentrationPPM: 650, ThicknessMM: 12, NetProfit: 319.98},
		},
	}
}

func TestSQLiteStorage_SaveAndGetHistory(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	scenario := makeRun(now.Add(-2 * time.Second))
	err = db.SaveScenario(ctx, scenario, domain.OpticalResult{
		OpticalEfficiency: 0.207, PowerOutputW: 68.3, PowerDensity: 28.5, Fidelity: "direct",
	})
	require.NoError(t, err)

	sweep := makeRun(now)
	err = db.SaveSweep(ctx, sweep, makeOutcome())
	require.NoError(t, err)

	history, err := db.GetHistory(ctx, now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Más recientes primero
	assert.Equal(t, sweep.ID, history[0].ID)
	assert.Equal(t, domain.RunSweep, history[0].Kind)
	assert.Equal(t, 3, history[0].Cells)
	assert.InDelta(t, 319.98, history[0].Headline, 1e-9)
	assert.InDelta(t, 650, history[0].BestConcPPM, 1e-9)
	assert.Equal(t, 250*time.Millisecond, history[0].Duration)
	assert.True(t, sweep.StartedAt.Equal(history[0].StartedAt))

	assert.Equal(t, scenario.ID, history[1].ID)
	assert.Equal(t, domain.RunScenario, history[1].Kind)
	assert.InDelta(t, 0.207, history[1].Headline, 1e-9)
}

func TestSQLiteStorage_GetHistory_EmptyRange(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	// Sin datos
	history, err := db.GetHistory(context.Background(),
		time.Now().Add(-time.Hour),
		time.Now(),
	)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSQLiteStorage_GetHistory_OutOfRange(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, db.SaveSweep(ctx, makeRun(time.Now().Add(-2*time.Hour)), makeOutcome()))

	history, err := db.GetHistory(ctx, time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSQLiteStorage_GetSweep_PreservesLogOrder(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	run := makeRun(time.Now())
	want := makeOutcome()
	require.NoError(t, db.SaveSweep(ctx, run, want))

	got, err := db.GetSweep(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, want.ConcentrationPPM, got.ConcentrationPPM)
	assert.Equal(t, want.ThicknessMM, got.ThicknessMM)
	assert.Equal(t, want.Metrics, got.Metrics)
	assert.Equal(t, want.Log, got.Log)
}

func TestSQLiteStorage_GetSweep_NotFound(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.GetSweep(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrRunNotFound)
}

func TestSQLiteStorage_DuplicateIDRejected(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	run := makeRun(time.Now())
	require.NoError(t, db.SaveSweep(ctx, run, makeOutcome()))

	err = db.SaveSweep(ctx, run, makeOutcome())
	assert.Error(t, err)

	// La transacción fallida no deja evaluaciones duplicadas
	got, err := db.GetSweep(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, got.Log, 3)
}

func TestSQLiteStorage_MigratesSweepsWithoutImpactColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	// Tabla sweeps tal como la creaban versiones sin métricas de impacto.
	old, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = old.Exec(`CREATE TABLE sweeps (
		run_id             TEXT PRIMARY KEY,
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
		assembly_cost      REAL NOT NULL DEFAULT 0
	)`)
	require.NoError(t, err)
	require.NoError(t, old.Close())

	db, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	run := makeRun(time.Now())
	want := makeOutcome()
	require.NoError(t, db.SaveSweep(ctx, run, want))

	got, err := db.GetSweep(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Metrics, got.Metrics)
}
