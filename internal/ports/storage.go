package ports

import (
	"context"
	"time"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
)

// Storage persiste el historial de ejecuciones.
type Storage interface {
	// SaveScenario persiste un escenario físico bajo run.ID.
	SaveScenario(ctx context.Context, run domain.RunSummary, result domain.OpticalResult) error

	// SaveSweep persiste la mejor configuración y el log completo del grid.
	SaveSweep(ctx context.Context, run domain.RunSummary, outcome domain.SearchOutcome) error

	// GetHistory devuelve las ejecuciones iniciadas en el rango de tiempo dado.
	GetHistory(ctx context.Context, from, to time.Time) ([]domain.RunSummary, error)

	// GetSweep recarga un sweep persistido, log incluido.
	GetSweep(ctx context.Context, id string) (domain.SearchOutcome, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
