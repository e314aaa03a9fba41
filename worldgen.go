// Package worldgen is a deterministic procedural terrain and climate
// synthesizer: given a world coordinate and a seed it produces elevation,
// moisture, temperature, a biome classification, and optional resource
// deposits, reproducibly across runs. Every query is a pure function of
// (coordinate, configuration), so callers may fan out read-only queries
// across goroutines freely as long as Configure is not running.
package worldgen

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/romxai/world-generation-sub000/noise"
)

// generators is one immutable bundle of compiled sub-generators for a
// configuration. Configure builds a fresh bundle and swaps it in
// atomically, so a query sees either the old world or the new one,
// never a half-updated mix.
type generators struct {
	cfg         *Config
	elevation   *noise.Noise
	moisture    *noise.Noise
	radial      *radialFalloff
	continental *continentalFalloff
	climate     *Climate
	resources   []*resourceField
}

// World is the single query surface over the noise-and-classification
// engine. It owns the configuration and all sub-generators.
type World struct {
	gen atomic.Pointer[generators]
}

// NewWorld returns a world with the default configuration and the given seed.
func NewWorld(seed int64) (*World, error) {
	cfg := NewConfig()
	cfg.Seed = seed
	return NewWorldFromConfig(cfg)
}

// NewWorldFromConfig returns a world for the given configuration.
func NewWorldFromConfig(cfg *Config) (*World, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	w := &World{}
	w.gen.Store(buildGenerators(cfg, nil))
	return w, nil
}

// Configure replaces the active configuration. Only the sub-generators
// whose parameters changed are rebuilt: a seed change rebuilds
// everything, while scale/persistence-only changes derive copies that
// share the existing permutation tables. The previous bundle is never
// mutated, so queries that loaded it before the swap stay consistent.
func (w *World) Configure(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	w.gen.Store(buildGenerators(cfg, w.gen.Load()))
	return nil
}

// Config returns the active configuration.
func (w *World) Config() *Config {
	return w.gen.Load().cfg
}

// buildGenerators compiles a configuration into a generator bundle,
// reusing sub-generators from prev wherever their seeds and structural
// parameters (octave counts) are unchanged.
func buildGenerators(cfg *Config, prev *generators) *generators {
	// A seed or stride change shifts every per-octave seed, so nothing
	// from the previous bundle can be reused.
	if prev != nil && (prev.cfg.Seed != cfg.Seed || prev.cfg.Noise.SeedStride != cfg.Noise.SeedStride) {
		prev = nil
	}

	g := &generators{cfg: cfg}
	nc := cfg.Noise

	var prevElev, prevMoist *noise.Noise
	if prev != nil && prev.cfg.Noise.SeedStride == nc.SeedStride {
		if prev.cfg.Noise.MoistureOffset == nc.MoistureOffset {
			prevMoist = prev.moisture
		}
		prevElev = prev.elevation
	}
	g.elevation = reuseField(prevElev, nc.Elevation, cfg.Seed, nc.SeedStride)
	g.moisture = reuseField(prevMoist, nc.Moisture, cfg.Seed+nc.MoistureOffset, nc.SeedStride)

	g.radial = &radialFalloff{
		RadialConfig: cfg.Shape.Radial,
		width:        cfg.Width,
		height:       cfg.Height,
	}

	g.continental = &continentalFalloff{ContinentalConfig: cfg.Shape.Continental}
	if cc := cfg.Shape.Continental; cc.Enabled {
		ccField := FieldConfig{Octaves: cc.Octaves, Scale: cc.Scale, Persistence: 0.5, Lacunarity: 2.0}
		var prevCont *noise.Noise
		if prev != nil && prev.continental != nil && prev.continental.field != nil &&
			prev.cfg.Noise.ContinentalOffset == nc.ContinentalOffset {
			prevCont = prev.continental.field
		}
		g.continental.field = reuseField(prevCont, ccField, cfg.Seed+nc.ContinentalOffset, nc.SeedStride)
	}

	if prev != nil && *prev.cfg.Climate == *cfg.Climate && prev.cfg.Height == cfg.Height &&
		prev.cfg.Noise.ClimateOffset == nc.ClimateOffset {
		g.climate = prev.climate
	} else {
		g.climate = newClimate(*cfg.Climate, cfg.Height, cfg.Seed+nc.ClimateOffset, nc.SeedStride)
	}

	g.resources = make([]*resourceField, len(cfg.Res.Kinds))
	for i, def := range cfg.Res.Kinds {
		seed := cfg.Seed + nc.ResourceOffset + int64(i)*10007
		if prev != nil && i < len(prev.resources) &&
			prev.cfg.Noise.ResourceOffset == nc.ResourceOffset &&
			resourceDefEqual(prev.resources[i].def, def) {
			g.resources[i] = prev.resources[i]
			continue
		}
		g.resources[i] = newResourceField(def, seed, nc.SeedStride)
	}
	return g
}

// reuseField derives a field from prev if only scale/persistence/
// lacunarity changed, sharing prev's permutation tables without
// mutating prev: readers still holding the old bundle keep seeing the
// old parameters. A fresh field is built if the octave count changed
// (per-octave seeds shift) or there is nothing to reuse.
func reuseField(prev *noise.Noise, fc FieldConfig, seed, stride int64) *noise.Noise {
	if prev == nil || prev.Octaves != fc.Octaves || prev.Seed != seed || prev.SeedStride != stride {
		return noise.NewNoiseWithStride(fc.Octaves, fc.Persistence, fc.Lacunarity, fc.Scale, seed, stride)
	}
	return prev.WithParams(fc.Scale, fc.Persistence, fc.Lacunarity)
}

func resourceDefEqual(a, b ResourceDef) bool {
	if len(a.Biomes) != len(b.Biomes) {
		return false
	}
	for i := range a.Biomes {
		if a.Biomes[i] != b.Biomes[i] {
			return false
		}
	}
	return a.Name == b.Name && a.Rarity == b.Rarity &&
		a.MinElevation == b.MinElevation && a.MaxElevation == b.MaxElevation &&
		a.MinMoisture == b.MinMoisture && a.MaxMoisture == b.MaxMoisture &&
		a.MinTemperature == b.MinTemperature && a.MaxTemperature == b.MaxTemperature &&
		a.Octaves == b.Octaves && a.Scale == b.Scale &&
		a.Persistence == b.Persistence && a.Lacunarity == b.Lacunarity
}

// rawElevation is the fractal elevation before any shape modifier.
func (g *generators) rawElevation(x, y float64) float64 {
	return g.elevation.Eval2(x, y)
}

// elevationAt applies the shape modifiers in their fixed order:
// radial first, continental second.
func (g *generators) elevationAt(x, y float64) float64 {
	return g.continental.Apply(x, y, g.radial.Apply(x, y, g.rawElevation(x, y)))
}

func (g *generators) moistureAt(x, y float64) float64 {
	return g.moisture.Eval2(x, y)
}

func (g *generators) resourceAt(x, y float64, biome Biome, elevation, moisture, temperature float64) *Deposit {
	// Deep ocean is universally non-placeable, regardless of noise.
	if biome == BiomeOceanDeep {
		return nil
	}
	// First eligible kind in config order wins. This is a deliberate
	// policy, not a density argmax: rarer kinds listed first keep
	// priority over common ones at the same coordinate.
	for _, rf := range g.resources {
		if !rf.eligible(biome, elevation, moisture, temperature) {
			continue
		}
		if dep := rf.sample(x, y, g.cfg.Res.GlobalDensity); dep != nil {
			return dep
		}
	}
	return nil
}

// ElevationAt returns the shaped elevation in [0,1] at the coordinate.
func (w *World) ElevationAt(x, y float64) float64 {
	return w.gen.Load().elevationAt(x, y)
}

// MoistureAt returns the moisture in [0,1] at the coordinate.
func (w *World) MoistureAt(x, y float64) float64 {
	return w.gen.Load().moistureAt(x, y)
}

// TemperatureAt returns the temperature in [0,1] at the coordinate for
// the given elevation.
func (w *World) TemperatureAt(x, y, elevation float64) float64 {
	return w.gen.Load().climate.CalculateTemperature(x, y, elevation)
}

func (g *generators) biomeAt(x, y float64) Biome {
	elevation := g.elevationAt(x, y)
	moisture := g.moistureAt(x, y)
	temperature := g.climate.CalculateTemperature(x, y, elevation)
	return classifyBiome(elevation, moisture, temperature, g.cfg.Biomes)
}

// BiomeAt returns the biome classification at the coordinate.
func (w *World) BiomeAt(x, y float64) Biome {
	return w.gen.Load().biomeAt(x, y)
}

// ResourceAt returns the resource deposit at the coordinate, or nil if
// no resource kind qualifies there.
func (w *World) ResourceAt(x, y float64) *Deposit {
	g := w.gen.Load()
	elevation := g.elevationAt(x, y)
	moisture := g.moistureAt(x, y)
	temperature := g.climate.CalculateTemperature(x, y, elevation)
	biome := classifyBiome(elevation, moisture, temperature, g.cfg.Biomes)
	return g.resourceAt(x, y, biome, elevation, moisture, temperature)
}

// Tile is the aggregate of every per-coordinate value.
type Tile struct {
	Elevation   float64
	Moisture    float64
	Temperature float64
	Biome       Biome
	Resource    *Deposit // nil if no resource was placed.
}

// TileAt returns every per-coordinate value in one query. All values
// come from the same generator bundle, so a concurrent Configure can
// never produce a mixed tile.
func (w *World) TileAt(x, y float64) Tile {
	g := w.gen.Load()
	elevation := g.elevationAt(x, y)
	moisture := g.moistureAt(x, y)
	temperature := g.climate.CalculateTemperature(x, y, elevation)
	biome := classifyBiome(elevation, moisture, temperature, g.cfg.Biomes)
	return Tile{
		Elevation:   elevation,
		Moisture:    moisture,
		Temperature: temperature,
		Biome:       biome,
		Resource:    g.resourceAt(x, y, biome, elevation, moisture, temperature),
	}
}

// DebugSummary returns a multi-line description of every intermediate
// value at the coordinate. Diagnostic display only; nothing decides on
// this string.
func (w *World) DebugSummary(x, y float64) string {
	g := w.gen.Load()
	raw := g.rawElevation(x, y)
	postRadial := g.radial.Apply(x, y, raw)
	elevation := g.continental.Apply(x, y, postRadial)
	moisture := g.moistureAt(x, y)
	temperature := g.climate.CalculateTemperature(x, y, elevation)
	biome := classifyBiome(elevation, moisture, temperature, g.cfg.Biomes)

	var sb strings.Builder
	fmt.Fprintf(&sb, "coordinate: (%.2f, %.2f) seed %d\n", x, y, g.cfg.Seed)
	fmt.Fprintf(&sb, "elevation: raw %.4f radial %.4f continental %.4f\n", raw, postRadial, elevation)
	fmt.Fprintf(&sb, "moisture: %.4f\n", moisture)
	fmt.Fprintf(&sb, "temperature: %.4f (latitude %.4f, cooling %.4f)\n",
		temperature, g.climate.latitudeTemperature(clamp01(y/g.cfg.Height)),
		elevation*g.cfg.Climate.ElevationCooling)
	fmt.Fprintf(&sb, "biome: %s\n", biome)
	if dep := g.resourceAt(x, y, biome, elevation, moisture, temperature); dep != nil {
		fmt.Fprintf(&sb, "resource: %s density %.4f size %d\n", dep.Kind, dep.Density, dep.Size)
	} else {
		sb.WriteString("resource: none\n")
		for _, rf := range g.resources {
			if !rf.biomes.Contains(biome) {
				fmt.Fprintf(&sb, "  %s: biome %s not allowed\n", rf.def.Name, biome)
			} else if !rf.eligible(biome, elevation, moisture, temperature) {
				fmt.Fprintf(&sb, "  %s: out of range\n", rf.def.Name)
			} else {
				density := rf.field.Eval2(x, y)
				fmt.Fprintf(&sb, "  %s: density %.4f below threshold %.4f\n",
					rf.def.Name, density, (1-g.cfg.Res.GlobalDensity)*rf.def.Rarity)
			}
		}
	}
	return sb.String()
}
