package worldgen

import (
	"fmt"
)

// DisplayMode selects which scalar a viewer wants per coordinate. It is
// a closed set; DisplayValue matches exhaustively. The core maps modes
// to normalized values only, never to colors: color mapping belongs to
// the rendering layer.
type DisplayMode int

const (
	DisplayElevation DisplayMode = iota
	DisplayMoisture
	DisplayTemperature
	DisplayBiome
	DisplayResource
	DisplayNoise // Raw fractal elevation before any shape modifier.
)

// String returns the name of the display mode.
func (m DisplayMode) String() string {
	switch m {
	case DisplayElevation:
		return "elevation"
	case DisplayMoisture:
		return "moisture"
	case DisplayTemperature:
		return "temperature"
	case DisplayBiome:
		return "biome"
	case DisplayResource:
		return "resource"
	case DisplayNoise:
		return "noise"
	}
	return "unknown"
}

// ParseDisplayMode returns the display mode with the given name.
func ParseDisplayMode(name string) (DisplayMode, error) {
	for m := DisplayElevation; m <= DisplayNoise; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown display mode %q", name)
}

// displayValue is the single exhaustive match over the display modes.
func (g *generators) displayValue(mode DisplayMode, x, y float64) (float64, error) {
	switch mode {
	case DisplayElevation:
		return g.elevationAt(x, y), nil
	case DisplayMoisture:
		return g.moistureAt(x, y), nil
	case DisplayTemperature:
		return g.climate.CalculateTemperature(x, y, g.elevationAt(x, y)), nil
	case DisplayBiome:
		return float64(g.biomeAt(x, y)) / float64(NumBiomes-1), nil
	case DisplayResource:
		elevation := g.elevationAt(x, y)
		moisture := g.moistureAt(x, y)
		temperature := g.climate.CalculateTemperature(x, y, elevation)
		biome := classifyBiome(elevation, moisture, temperature, g.cfg.Biomes)
		if dep := g.resourceAt(x, y, biome, elevation, moisture, temperature); dep != nil {
			return dep.Density, nil
		}
		return 0, nil
	case DisplayNoise:
		return g.rawElevation(x, y), nil
	}
	return 0, fmt.Errorf("unknown display mode %d", mode)
}

// DisplayValue returns the normalized [0,1] display value for the given
// mode at the coordinate.
func (w *World) DisplayValue(mode DisplayMode, x, y float64) (float64, error) {
	return w.gen.Load().displayValue(mode, x, y)
}
