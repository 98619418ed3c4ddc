package main

import (
	"github.com/SourishSenapati/Team-Glass2Grid/config"
	"github.com/SourishSenapati/Team-Glass2Grid/internal/application/optimizer"
)

// buildOptimizer traduce las secciones economics/sweep al optimizador y su grid.
func buildOptimizer(cfg *config.Config) (*optimizer.EconomicOptimizer, optimizer.Grid, error) {
	oc, err := cfg.OptimizerConfig()
	if err != nil {
		return nil, optimizer.Grid{}, err
	}
	grid, err := cfg.Grid()
	if err != nil {
		return nil, optimizer.Grid{}, err
	}
	opt, err := optimizer.New(oc)
	if err != nil {
		return nil, optimizer.Grid{}, err
	}
	return opt, grid, nil
}
