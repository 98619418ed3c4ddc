package efficiency

import (
	"fmt"
	"strings"

	"github.com/SourishSenapati/Team-Glass2Grid/internal/domain"
)

// Fidelity selecciona la formulación de eficiencia óptica.
type Fidelity string

const (
	// FidelityDirect multiplica factores fijos. Es la forma por defecto.
	FidelityDirect Fidelity = "direct"
	// FidelityPropagation atenúa exponencialmente con el camino hasta el canto.
	FidelityPropagation Fidelity = "propagation"
)

// Model define el contrato de una formulación de eficiencia óptica.
// Cada implementación es una función pura de geometría y material.
type Model interface {
	// Fidelity identifica la formulación.
	Fidelity() Fidelity
	// Efficiency devuelve la fracción de potencia solar incidente que llega al canto.
	Efficiency(geom domain.DeviceGeometry, mat domain.MaterialProperties) float64
}

// ParseFidelity acepta "direct" o "propagation" (sin distinguir mayúsculas).
// Cadena vacía → FidelityDirect.
func ParseFidelity(s string) (Fidelity, error) {
	switch Fidelity(strings.ToLower(strings.TrimSpace(s))) {
	case "", FidelityDirect:
		return FidelityDirect, nil
	case FidelityPropagation:
		return FidelityPropagation, nil
	default:
		return "", fmt.Errorf("efficiency.ParseFidelity: unknown fidelity %q", s)
	}
}

// New devuelve la implementación para la fidelidad dada.
func New(f Fidelity) (Model, error) {
	switch f {
	case "", FidelityDirect:
		return DirectFactor{}, nil
	case FidelityPropagation:
		return Propagation{}, nil
	default:
		return nil, fmt.Errorf("efficiency.New: unknown fidelity %q", f)
	}
}
