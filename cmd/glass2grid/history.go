package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/adapters/notify"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/ports"
)

func runHistory(ctx context.Context, store ports.Storage, notifier *notify.Console, window time.Duration) error {
	to := time.Now()
	runs, err := store.GetHistory(ctx, to.Add(-window), to)
	if err != nil {
		return fmt.Errorf("runHistory: %w", err)
	}
	notifier.PrintHistory(runs)
	slog.Info("history listed", "runs", len(runs), "window", window)
	return nil
}

func runShow(ctx context.Context, store ports.Storage, notifier *notify.Console, id string) error {
	outcome, err := store.GetSweep(ctx, id)
	if err != nil {
		return fmt.Errorf("runShow: %w", err)
	}
	run := domain.RunSummary{ID: id, Kind: domain.RunSweep, Cells: len(outcome.Log)}
	return notifier.NotifySweep(ctx, run, outcome)
}
