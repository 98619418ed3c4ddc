package optimizer

import (
	"fmt"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Grid es el espacio de búsqueda: producto cartesiano concentración × espesor.
type Grid struct {
	ConcentrationsPPM []float64
	ThicknessesMM     []float64
}

// Cell es un punto del grid. Index es la posición en orden concentración-mayor.
type Cell struct {
	Index            int
	ConcentrationPPM float64
	ThicknessMM      float64
}

// DefaultGrid: 20 concentraciones equiespaciadas 50–1000 ppm × {4,5,6,8,10,12} mm.
func DefaultGrid() Grid {
	g, _ := NewGrid(50, 1000, 20, []float64{4, 5, 6, 8, 10, 12})
	return g
}

// NewGrid construye un grid con `points` concentraciones equiespaciadas entre
// minPPM y maxPPM (ambos incluidos). points == 1 usa solo minPPM.
func NewGrid(minPPM, maxPPM float64, points int, thicknessesMM []float64) (Grid, error) {
	if points < 1 {
		return Grid{}, fmt.Errorf("optimizer.NewGrid: points=%d: %w", points, domain.ErrInvalidEconomics)
	}
	if !(minPPM > 0) || maxPPM < minPPM {
		return Grid{}, fmt.Errorf("optimizer.NewGrid: range [%g,%g] ppm: %w", minPPM, maxPPM, domain.ErrInvalidEconomics)
	}
	if len(thicknessesMM) == 0 {
		return Grid{}, fmt.Errorf("optimizer.NewGrid: no thicknesses: %w", domain.ErrInvalidEconomics)
	}
	for _, t := range thicknessesMM {
		if !(t > 0) {
			return Grid{}, fmt.Errorf("optimizer.NewGrid: thickness=%g mm: %w", t, domain.ErrInvalidEconomics)
		}
	}

	concs := []float64{minPPM}
	if points > 1 {
		concs = floats.Span(make([]float64, points), minPPM, maxPPM)
	}
	thick := make([]float64, len(thicknessesMM))
	copy(thick, thicknessesMM)

	return Grid{ConcentrationsPPM: concs, ThicknessesMM: thick}, nil
}

// Size devuelve el número de celdas.
func (g Grid) Size() int {
	return len(g.ConcentrationsPPM) * len(g.ThicknessesMM)
}

// Cells enumera el grid en el orden del recorrido de referencia:
// bucle externo concentración, interno espesor.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Size())
	for _, c := range g.ConcentrationsPPM {
		for _, t := range g.ThicknessesMM {
			cells = append(cells, Cell{Index: len(cells), ConcentrationPPM: c, ThicknessMM: t})
		}
	}
	return cells
}
