package worldgen

import (
	"fmt"
)

// Biome is a classification label derived from elevation, moisture, and
// temperature. The set is closed; every point in [0,1]^3 maps to exactly
// one tag and tags are never stored, always recomputed.
type Biome int

const (
	BiomeOceanDeep Biome = iota
	BiomeOceanMedium
	BiomeOceanShallow
	BiomeIce
	BiomeBeach
	BiomeRockyShore
	BiomeDesert
	BiomeSavanna
	BiomeGrassland
	BiomeForest
	BiomeRainforest
	BiomeSwamp
	BiomeShrubland
	BiomeTaiga
	BiomeTundra
	BiomeBare
	BiomeScorched
	BiomeSnow
	NumBiomes int = iota
)

// String returns the name of the biome.
func (b Biome) String() string {
	switch b {
	case BiomeOceanDeep:
		return "ocean_deep"
	case BiomeOceanMedium:
		return "ocean_medium"
	case BiomeOceanShallow:
		return "ocean_shallow"
	case BiomeIce:
		return "ice"
	case BiomeBeach:
		return "beach"
	case BiomeRockyShore:
		return "rocky_shore"
	case BiomeDesert:
		return "desert"
	case BiomeSavanna:
		return "savanna"
	case BiomeGrassland:
		return "grassland"
	case BiomeForest:
		return "forest"
	case BiomeRainforest:
		return "rainforest"
	case BiomeSwamp:
		return "swamp"
	case BiomeShrubland:
		return "shrubland"
	case BiomeTaiga:
		return "taiga"
	case BiomeTundra:
		return "tundra"
	case BiomeBare:
		return "bare"
	case BiomeScorched:
		return "scorched"
	case BiomeSnow:
		return "snow"
	}
	return "unknown"
}

// BiomeByName returns the biome with the given name.
func BiomeByName(name string) (Biome, error) {
	for b := Biome(0); int(b) < NumBiomes; b++ {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown biome %q", name)
}

// BiomeSet is a bitmask over the closed biome enumeration, used for O(1)
// membership checks in resource eligibility filters.
type BiomeSet uint32

// NewBiomeSet returns a set containing the given biomes.
func NewBiomeSet(biomes ...Biome) BiomeSet {
	var s BiomeSet
	for _, b := range biomes {
		s |= 1 << uint(b)
	}
	return s
}

// Contains returns true if the set contains the given biome.
func (s BiomeSet) Contains(b Biome) bool {
	return s&(1<<uint(b)) != 0
}

// BiomeThresholds holds the ordered cut points that partition the
// elevation, moisture, and temperature axes for classification.
// All upper-bound comparisons are strict (<), so a value exactly on a
// cut point falls into the next (higher) category. This keeps boundary
// values stable across runs instead of flickering between categories.
type BiomeThresholds struct {
	// Elevation bands, ascending.
	DeepWater    float64 `yaml:"deep_water"`
	MediumWater  float64 `yaml:"medium_water"`
	ShallowWater float64 `yaml:"shallow_water"`
	Shore        float64 `yaml:"shore"`
	Low          float64 `yaml:"low"`
	Medium       float64 `yaml:"medium"`
	High         float64 `yaml:"high"`

	// Moisture cut points, ascending.
	Dry      float64 `yaml:"dry"`
	Moderate float64 `yaml:"moderate"`
	Wet      float64 `yaml:"wet"`

	// Temperature cut points, ascending.
	Freezing float64 `yaml:"freezing"`
	Cold     float64 `yaml:"cold"`
	Cool     float64 `yaml:"cool"`
	Mild     float64 `yaml:"mild"`
	Warm     float64 `yaml:"warm"`
}

// NewBiomeThresholds returns the canonical threshold table. The water
// bands sit around 0.35-0.5; an older table with water bands at
// 0.45-0.51 is superseded by this one.
func NewBiomeThresholds() *BiomeThresholds {
	return &BiomeThresholds{
		DeepWater:    0.35,
		MediumWater:  0.45,
		ShallowWater: 0.5,
		Shore:        0.53,
		Low:          0.62,
		Medium:       0.75,
		High:         0.88,

		Dry:      0.3,
		Moderate: 0.5,
		Wet:      0.8,

		Freezing: 0.15,
		Cold:     0.3,
		Cool:     0.45,
		Mild:     0.65,
		Warm:     0.8,
	}
}

// Validate checks that each threshold axis is monotonically
// non-decreasing and within [0,1].
func (bt *BiomeThresholds) Validate() error {
	axes := []struct {
		name string
		vals []float64
	}{
		{"elevation", []float64{bt.DeepWater, bt.MediumWater, bt.ShallowWater, bt.Shore, bt.Low, bt.Medium, bt.High}},
		{"moisture", []float64{bt.Dry, bt.Moderate, bt.Wet}},
		{"temperature", []float64{bt.Freezing, bt.Cold, bt.Cool, bt.Mild, bt.Warm}},
	}
	for _, axis := range axes {
		prev := 0.0
		for i, v := range axis.vals {
			if v < 0 || v > 1 {
				return fmt.Errorf("%s threshold %d out of range: %f", axis.name, i, v)
			}
			if v < prev {
				return fmt.Errorf("%s thresholds not ordered: %f after %f", axis.name, v, prev)
			}
			prev = v
		}
	}
	return nil
}

// ThresholdsFromWeights derives an ordered cut-point table from a list
// of band weights. The weights are normalized, so the table is
// monotonically non-decreasing and the final upper bound is exactly 1.0.
func ThresholdsFromWeights(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("no band weights given")
	}
	var total float64
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("band weight %d must not be negative: %f", i, w)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("band weights sum to zero")
	}
	out := make([]float64, len(weights))
	var acc float64
	for i, w := range weights {
		acc += w
		out[i] = acc / total
	}
	// Pin the last bound against float rounding.
	out[len(out)-1] = 1.0
	return out, nil
}

// classifyBiome maps one (elevation, moisture, temperature) triple to a
// biome tag, Whittaker style. Water depth is decided purely by
// elevation, the shore band by temperature and moisture, and each land
// tier first separates climate zones by temperature and then picks the
// biome by moisture.
func classifyBiome(elevation, moisture, temperature float64, t *BiomeThresholds) Biome {
	// Water tiers ignore moisture and temperature, except that freezing
	// shallow water turns to sea ice.
	switch {
	case elevation < t.DeepWater:
		return BiomeOceanDeep
	case elevation < t.MediumWater:
		return BiomeOceanMedium
	case elevation < t.ShallowWater:
		if temperature < t.Freezing {
			return BiomeIce
		}
		return BiomeOceanShallow
	}

	// Shore band: colder or wetter shores are rocky.
	if elevation < t.Shore {
		if temperature < t.Cold || moisture >= t.Wet {
			return BiomeRockyShore
		}
		return BiomeBeach
	}

	if elevation < t.Low {
		switch {
		case temperature < t.Freezing:
			return BiomeTundra
		case temperature < t.Cold:
			if moisture < t.Moderate {
				return BiomeShrubland
			}
			return BiomeTaiga
		case temperature < t.Cool:
			if moisture < t.Dry {
				return BiomeGrassland
			}
			if moisture < t.Wet {
				return BiomeForest
			}
			return BiomeSwamp
		case temperature < t.Mild:
			if moisture < t.Dry {
				return BiomeSavanna
			}
			if moisture < t.Moderate {
				return BiomeGrassland
			}
			return BiomeForest
		case temperature < t.Warm:
			if moisture < t.Dry {
				return BiomeDesert
			}
			if moisture < t.Wet {
				return BiomeSavanna
			}
			return BiomeForest
		default:
			if moisture < t.Dry {
				return BiomeDesert
			}
			if moisture < t.Wet {
				return BiomeSavanna
			}
			return BiomeRainforest
		}
	}

	if elevation < t.Medium {
		switch {
		case temperature < t.Freezing:
			return BiomeSnow
		case temperature < t.Cold:
			return BiomeTundra
		case temperature < t.Cool:
			if moisture < t.Moderate {
				return BiomeShrubland
			}
			return BiomeTaiga
		case temperature < t.Mild:
			if moisture < t.Dry {
				return BiomeShrubland
			}
			return BiomeGrassland
		default:
			if moisture < t.Dry {
				return BiomeDesert
			}
			return BiomeShrubland
		}
	}

	if elevation < t.High {
		switch {
		case temperature < t.Cold:
			return BiomeSnow
		case temperature < t.Cool:
			return BiomeTundra
		case temperature < t.Mild:
			if moisture < t.Moderate {
				return BiomeBare
			}
			return BiomeTundra
		default:
			if moisture < t.Dry {
				return BiomeScorched
			}
			return BiomeBare
		}
	}

	// Very high elevation.
	switch {
	case temperature < t.Cool:
		return BiomeSnow
	case temperature < t.Warm:
		return BiomeBare
	default:
		return BiomeScorched
	}
}
