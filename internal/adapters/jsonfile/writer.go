// Package jsonfile escribe los registros de resultado como ficheros JSON.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
)

// Nombres de fichero que consumen las herramientas externas.
const (
	ScenarioFile = "high_fidelity_results.json"
	OptimumFile  = "optimized_model_weights.json"
)

// Writer implementa ports.ResultWriter sobre un directorio.
type Writer struct {
	dir string
}

// NewWriter crea el directorio si no existe.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile.NewWriter: mkdir %q: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// Dir devuelve el directorio de salida.
func (w *Writer) Dir() string { return w.dir }

// WriteScenario escribe {optical_efficiency, power_output_W, power_density}.
func (w *Writer) WriteScenario(ctx context.Context, res domain.OpticalResult) (string, error) {
	path, err := w.write(ctx, ScenarioFile, res.Record())
	if err != nil {
		return "", fmt.Errorf("jsonfile.WriteScenario: %w", err)
	}
	return path, nil
}

// WriteOptimum escribe {concentration_ppm, thickness_mm, metrics{...}}.
func (w *Writer) WriteOptimum(ctx context.Context, outcome domain.SearchOutcome) (string, error) {
	path, err := w.write(ctx, OptimumFile, outcome.Record())
	if err != nil {
		return "", fmt.Errorf("jsonfile.WriteOptimum: %w", err)
	}
	return path, nil
}

// write serializa v y lo deja en su sitio con rename, nunca a medio escribir.
func (w *Writer) write(ctx context.Context, name string, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(w.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename %s: %w", name, err)
	}
	return path, nil
}
