package worldgen

import (
	"fmt"
	"math"

	"github.com/romxai/world-generation-sub000/noise"
)

// depositExponent biases resource noise toward sparser, more clustered
// deposits before the rarity threshold is applied.
const depositExponent = 1.3

// depositSizeScale is the coordinate scale of the secondary noise query
// that derives the deposit size.
const depositSizeScale = 0.1

// ResourceConfig holds the resource placement model parameters.
// The order of Kinds matters: ResourceAt evaluates them in declared
// order and returns the first eligible match, not the statistically
// most likely one.
type ResourceConfig struct {
	GlobalDensity float64       `yaml:"global_density"` // 0..1, higher means more deposits overall.
	Kinds         []ResourceDef `yaml:"kinds"`
}

// ResourceDef describes one placeable resource kind.
type ResourceDef struct {
	Name   string   `yaml:"name"`
	Rarity float64  `yaml:"rarity"` // Rarity multiplier, closer to 1 = rarer.
	Biomes []string `yaml:"biomes"` // Names of biomes the resource may appear in.

	// Inclusive eligibility ranges.
	MinElevation   float64 `yaml:"min_elevation"`
	MaxElevation   float64 `yaml:"max_elevation"`
	MinMoisture    float64 `yaml:"min_moisture"`
	MaxMoisture    float64 `yaml:"max_moisture"`
	MinTemperature float64 `yaml:"min_temperature"`
	MaxTemperature float64 `yaml:"max_temperature"`

	// Fractal parameters of the resource's own noise field.
	Octaves     int     `yaml:"octaves"`
	Scale       float64 `yaml:"scale"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// NewResourceConfig returns the default resource set.
func NewResourceConfig() *ResourceConfig {
	landRock := []string{"grassland", "forest", "savanna", "shrubland", "taiga", "tundra", "bare", "desert"}
	return &ResourceConfig{
		GlobalDensity: 0.35,
		Kinds: []ResourceDef{
			{
				Name:           "coal",
				Rarity:         0.55,
				Biomes:         append([]string{"swamp"}, landRock...),
				MinElevation:   0.53,
				MaxElevation:   0.88,
				MinMoisture:    0,
				MaxMoisture:    1,
				MinTemperature: 0,
				MaxTemperature: 1,
				Octaves:        4,
				Scale:          60,
				Persistence:    0.5,
				Lacunarity:     2.0,
			},
			{
				Name:           "iron",
				Rarity:         0.65,
				Biomes:         landRock,
				MinElevation:   0.53,
				MaxElevation:   1,
				MinMoisture:    0,
				MaxMoisture:    1,
				MinTemperature: 0,
				MaxTemperature: 1,
				Octaves:        4,
				Scale:          70,
				Persistence:    0.5,
				Lacunarity:     2.0,
			},
			{
				Name:           "gold",
				Rarity:         0.85,
				Biomes:         []string{"bare", "scorched", "shrubland", "tundra", "snow"},
				MinElevation:   0.75,
				MaxElevation:   1,
				MinMoisture:    0,
				MaxMoisture:    1,
				MinTemperature: 0,
				MaxTemperature: 1,
				Octaves:        3,
				Scale:          45,
				Persistence:    0.45,
				Lacunarity:     2.1,
			},
			{
				Name:           "gems",
				Rarity:         0.9,
				Biomes:         []string{"bare", "scorched", "snow"},
				MinElevation:   0.8,
				MaxElevation:   1,
				MinMoisture:    0,
				MaxMoisture:    1,
				MinTemperature: 0,
				MaxTemperature: 1,
				Octaves:        3,
				Scale:          40,
				Persistence:    0.45,
				Lacunarity:     2.1,
			},
			{
				// Restricted to shallow water, the one kind that may
				// appear below the shore line.
				Name:           "oil",
				Rarity:         0.8,
				Biomes:         []string{"ocean_shallow", "desert"},
				MinElevation:   0.45,
				MaxElevation:   0.62,
				MinMoisture:    0,
				MaxMoisture:    1,
				MinTemperature: 0.15,
				MaxTemperature: 1,
				Octaves:        3,
				Scale:          90,
				Persistence:    0.5,
				Lacunarity:     2.0,
			},
		},
	}
}

// Validate checks the resource placement parameters.
func (rc *ResourceConfig) Validate() error {
	if rc.GlobalDensity <= 0 || rc.GlobalDensity > 1 {
		return fmt.Errorf("global density must be in (0,1], got %f", rc.GlobalDensity)
	}
	seen := make(map[string]bool, len(rc.Kinds))
	for i := range rc.Kinds {
		def := &rc.Kinds[i]
		if def.Name == "" {
			return fmt.Errorf("resource %d has no name", i)
		}
		if seen[def.Name] {
			return fmt.Errorf("duplicate resource name %q", def.Name)
		}
		seen[def.Name] = true
		if def.Rarity <= 0 || def.Rarity > 1 {
			return fmt.Errorf("resource %q rarity must be in (0,1], got %f", def.Name, def.Rarity)
		}
		if len(def.Biomes) == 0 {
			return fmt.Errorf("resource %q allows no biomes", def.Name)
		}
		for _, name := range def.Biomes {
			b, err := BiomeByName(name)
			if err != nil {
				return fmt.Errorf("resource %q: %w", def.Name, err)
			}
			if b == BiomeOceanDeep || b == BiomeOceanMedium {
				return fmt.Errorf("resource %q: biome %q is not placeable", def.Name, name)
			}
		}
		if def.MinElevation > def.MaxElevation {
			return fmt.Errorf("resource %q elevation range inverted", def.Name)
		}
		if def.MinMoisture > def.MaxMoisture {
			return fmt.Errorf("resource %q moisture range inverted", def.Name)
		}
		if def.MinTemperature > def.MaxTemperature {
			return fmt.Errorf("resource %q temperature range inverted", def.Name)
		}
		fc := FieldConfig{Octaves: def.Octaves, Scale: def.Scale, Persistence: def.Persistence, Lacunarity: def.Lacunarity}
		if err := fc.Validate(); err != nil {
			return fmt.Errorf("resource %q noise: %w", def.Name, err)
		}
	}
	return nil
}

// Deposit describes a placed resource at one coordinate. "No deposit"
// is a normal, frequent outcome and is represented by a nil *Deposit.
type Deposit struct {
	Kind    string
	Density float64 // (0,1], how far past the rarity threshold the field is.
	Size    int     // 1-10, independent of density.
}

// resourceField is one compiled resource kind: its noise field plus the
// eligibility filter in O(1)-membership form.
type resourceField struct {
	def    ResourceDef
	biomes BiomeSet
	field  *noise.Noise
}

func newResourceField(def ResourceDef, seed, stride int64) *resourceField {
	rf := &resourceField{
		def:   def,
		field: noise.NewNoiseWithStride(def.Octaves, def.Persistence, def.Lacunarity, def.Scale, seed, stride),
	}
	for _, name := range def.Biomes {
		b, err := BiomeByName(name)
		if err != nil {
			// Validate runs before compilation, so this is a broken invariant.
			panic(err)
		}
		rf.biomes |= NewBiomeSet(b)
	}
	return rf
}

// eligible reports whether the sample passes the biome membership and
// the inclusive elevation/moisture/temperature ranges.
func (rf *resourceField) eligible(biome Biome, elevation, moisture, temperature float64) bool {
	if !rf.biomes.Contains(biome) {
		return false
	}
	d := &rf.def
	return elevation >= d.MinElevation && elevation <= d.MaxElevation &&
		moisture >= d.MinMoisture && moisture <= d.MaxMoisture &&
		temperature >= d.MinTemperature && temperature <= d.MaxTemperature
}

// sample returns the deposit at the coordinate, or nil if the clustered
// density does not clear the rarity threshold.
func (rf *resourceField) sample(x, y, globalDensity float64) *Deposit {
	density := math.Pow(rf.field.Eval2(x, y), depositExponent)
	threshold := (1 - globalDensity) * rf.def.Rarity
	if density <= threshold {
		return nil
	}
	// A second, coarser query decides the deposit size so that size
	// varies independently of the placement field.
	size := 1 + int(rf.field.Eval2(x*depositSizeScale, y*depositSizeScale)*10)
	if size > 10 {
		size = 10
	}
	return &Deposit{
		Kind:    rf.def.Name,
		Density: density,
		Size:    size,
	}
}
