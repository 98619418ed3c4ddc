package ports

import (
	"context"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
)

// ResultWriter serializa los registros planos de resultado.
type ResultWriter interface {
	// WriteScenario guarda el registro del escenario y devuelve la ruta escrita.
	WriteScenario(ctx context.Context, result domain.OpticalResult) (string, error)

	// WriteOptimum guarda el registro de la mejor configuración y devuelve la ruta escrita.
	WriteOptimum(ctx context.Context, outcome domain.SearchOutcome) (string, error)
}
