package domain

import (
	"fmt"
	"math"
)

// DeviceGeometry describe el panel LSC. El espesor se guarda siempre en metros.
type DeviceGeometry struct {
	width     float64 // m
	height    float64 // m
	thickness float64 // m
}

// NewDeviceGeometry valida las dimensiones y convierte el espesor de mm a m.
func NewDeviceGeometry(widthM, heightM, thicknessMM float64) (DeviceGeometry, error) {
	if !positive(widthM) || !positive(heightM) || !positive(thicknessMM) {
		return DeviceGeometry{}, fmt.Errorf(
			"domain.NewDeviceGeometry: width=%g m height=%g m thickness=%g mm: %w",
			widthM, heightM, thicknessMM, ErrInvalidGeometry,
		)
	}
	return DeviceGeometry{
		width:     widthM,
		height:    heightM,
		thickness: thicknessMM / 1000.0,
	}, nil
}

// Width devuelve el ancho en metros.
func (g DeviceGeometry) Width() float64 { return g.width }

// Height devuelve el alto en metros.
func (g DeviceGeometry) Height() float64 { return g.height }

// Thickness devuelve el espesor en metros.
func (g DeviceGeometry) Thickness() float64 { return g.thickness }

// ThicknessMM devuelve el espesor en milímetros.
func (g DeviceGeometry) ThicknessMM() float64 { return g.thickness * 1000.0 }

// Area es la cara colectora: width × height (m²).
func (g DeviceGeometry) Area() float64 { return g.width * g.height }

// Perimeter devuelve 2·(w+h) en metros.
func (g DeviceGeometry) Perimeter() float64 { return 2 * (g.width + g.height) }

// EdgeArea es la superficie de los cantos donde van las tiras PV (m²).
func (g DeviceGeometry) EdgeArea() float64 { return g.Perimeter() * g.thickness }

// GeometricGain = cara colectora / cantos. Sin unidades.
func (g DeviceGeometry) GeometricGain() float64 {
	edge := g.EdgeArea()
	if edge <= 0 {
		return 0
	}
	return g.Area() / edge
}

// PathLength es el camino medio hasta el canto: media diagonal.
func (g DeviceGeometry) PathLength() float64 {
	return HalfDiagonal(g.width, g.height)
}

// Volume devuelve el volumen de la guía de onda (m³).
func (g DeviceGeometry) Volume() float64 { return g.Area() * g.thickness }

// HalfDiagonal = sqrt(w² + h²) / 2.
func HalfDiagonal(width, height float64) float64 {
	return math.Sqrt(width*width+height*height) / 2
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
