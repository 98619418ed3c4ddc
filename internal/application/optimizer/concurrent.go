package optimizer

// concurrent.go: worker pool para el sweep del grid.
//
// Cada celda es independiente; los workers escriben en su propio índice del
// slice de resultados y la reducción se hace después, en orden de grid, así que
// el resultado es idéntico al recorrido secuencial.

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// evaluateConcurrent evalúa todas las celdas con un pool de workers.
// Si workers <= 0 usa runtime.NumCPU() × 2. Devuelve el error de la primera
// celda fallida en orden de grid, o el error del contexto.
//
// Tras un fallo en la celda k se saltan las celdas de índice > k, pero las
// anteriores se siguen evaluando: alguna de ellas puede fallar también y su
// error es el que corresponde devolver.
func (o *EconomicOptimizer) evaluateConcurrent(ctx context.Context, cells []Cell, workers int) ([]cellResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	if workers > len(cells) {
		workers = len(cells)
	}

	workCh := make(chan Cell, len(cells))
	results := make([]cellResult, len(cells))
	errs := make([]error, len(cells))
	progress := newProgress(len(cells), o.cfg.ProgressEvery)

	// firstFailed es el menor índice fallido hasta ahora (len(cells) = ninguno).
	var firstFailed atomic.Int64
	firstFailed.Store(int64(len(cells)))

	// Worker pool: cada worker toma celdas de workCh y escribe en results[cell.Index].
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range workCh {
				if ctx.Err() != nil {
					return
				}
				if int64(c.Index) > firstFailed.Load() {
					continue
				}
				res, err := o.CalculateROI(c.ConcentrationPPM, c.ThicknessMM)
				if err != nil {
					slog.Debug("cell evaluation failed",
						"concentration_ppm", c.ConcentrationPPM,
						"thickness_mm", c.ThicknessMM,
						"err", err,
					)
					errs[c.Index] = err
					lowerFirstFailed(&firstFailed, int64(c.Index))
					continue
				}
				results[c.Index] = cellResult{cell: c, result: res}
				progress.tick()
			}
		}()
	}

	for _, c := range cells {
		workCh <- c
	}
	close(workCh)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("concurrent sweep complete",
		"cells", len(cells),
		"workers", workers,
	)
	return results, nil
}

// lowerFirstFailed baja v a idx si idx es menor (CAS, sin lock).
func lowerFirstFailed(v *atomic.Int64, idx int64) {
	for {
		cur := v.Load()
		if idx >= cur || v.CompareAndSwap(cur, idx) {
			return
		}
	}
}

// progress reporta el avance del sweep sin inundar el log: la primera celda
// y luego como mucho una línea por intervalo.
type progress struct {
	total int
	done  atomic.Int64
	every rate.Sometimes
}

func newProgress(total int, interval time.Duration) *progress {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &progress{
		total: total,
		every: rate.Sometimes{First: 1, Interval: interval},
	}
}

func (p *progress) tick() {
	done := p.done.Add(1)
	p.every.Do(func() {
		slog.Info("sweep progress", "done", done, "total", p.total)
	})
}
