package domain

import "errors"

// Errores base del motor. Los callers los distinguen con errors.Is;
// el contexto concreto (qué campo, qué valor) viaja en el wrap.
var (
	// ErrInvalidGeometry: ancho, alto o espesor no positivos (o no finitos).
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidMaterial: quantum yield / trapping fuera de [0,1], índice de refracción < 1,
	// anchos de banda no positivos o coeficientes de pérdida negativos.
	ErrInvalidMaterial = errors.New("invalid material")

	// ErrInvalidEconomics: concentración, espesor o coeficientes de coste no positivos.
	ErrInvalidEconomics = errors.New("invalid economic parameters")

	// ErrComputation: división por cero o resultado no finito durante el cálculo.
	ErrComputation = errors.New("computation error")
)
