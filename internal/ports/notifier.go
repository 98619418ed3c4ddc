package ports

import (
	"context"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
)

// Notifier presenta los resultados al usuario.
type Notifier interface {
	// NotifyScenario muestra el resultado de un escenario físico.
	NotifyScenario(ctx context.Context, run domain.RunSummary, result domain.OpticalResult) error

	// NotifySweep muestra la mejor configuración del sweep económico.
	// En la implementación de consola, imprime una tabla formateada.
	NotifySweep(ctx context.Context, run domain.RunSummary, outcome domain.SearchOutcome) error
}
