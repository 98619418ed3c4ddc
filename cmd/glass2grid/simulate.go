package main

import (
	"fmt"
	"log/slog"

	"github.com/SourishSenapati/Team-Glass2Grid/config"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/application/simulator"
)

// buildModel traduce las secciones panel/material/simulation al modelo físico.
func buildModel(cfg *config.Config) (*simulator.PhysicalModel, error) {
	geom, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	mat, err := cfg.MaterialProperties()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.SimulationOptions()
	if err != nil {
		return nil, err
	}
	return simulator.New(geom, mat, opts)
}

// logSpectrum muestrea las curvas de absorción y emisión (300–800 nm).
func logSpectrum(model *simulator.PhysicalModel) error {
	s, err := model.Spectrum(simulator.SpectrumFromNM, simulator.SpectrumToNM, simulator.SpectrumSamples)
	if err != nil {
		return fmt.Errorf("logSpectrum: %w", err)
	}
	slog.Info("spectrum sampled",
		"samples", len(s.WavelengthNM),
		"peak_absorption_nm", fmt.Sprintf("%.1f", s.PeakAbsorptionNM()),
		"peak_emission_nm", fmt.Sprintf("%.1f", s.PeakEmissionNM()),
		"overlap", fmt.Sprintf("%.4f", model.SpectralOverlapFactor()),
	)
	return nil
}
