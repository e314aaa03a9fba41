package worldgen

import (
	"fmt"
	"math"

	"github.com/romxai/world-generation-sub000/noise"
)

// ShapeConfig holds the parameters of the landmass shape modifiers.
// Both modifiers are pure transforms on the raw fractal elevation and
// are applied in a fixed order: radial first, then continental. The
// composition is not commutative, so the order is part of the contract.
type ShapeConfig struct {
	Radial      RadialConfig      `yaml:"radial"`
	Continental ContinentalConfig `yaml:"continental"`
}

// NewShapeConfig returns a new config for the shape modifiers.
func NewShapeConfig() *ShapeConfig {
	return &ShapeConfig{
		Radial: RadialConfig{
			CenterX:     0.5,
			CenterY:     0.5,
			InnerRadius: 0.4,
			Exponent:    2.2,
			Strength:    1.0,
		},
		Continental: ContinentalConfig{
			Enabled:   true,
			Octaves:   3,
			Scale:     480,
			Threshold: 0.52,
			Sharpness: 4.0,
			Strength:  0.9,
			OceanDepth: 1.0,
		},
	}
}

// Validate checks the shape modifier parameters.
func (sc *ShapeConfig) Validate() error {
	if r := &sc.Radial; r.InnerRadius < 0 || r.InnerRadius >= 1 {
		return fmt.Errorf("radial inner radius must be in [0,1), got %f", r.InnerRadius)
	}
	if sc.Radial.Strength < 0 || sc.Radial.Strength > 1 {
		return fmt.Errorf("radial strength must be in [0,1], got %f", sc.Radial.Strength)
	}
	if sc.Radial.Exponent <= 0 {
		return fmt.Errorf("radial exponent must be positive, got %f", sc.Radial.Exponent)
	}
	if c := &sc.Continental; c.Enabled {
		if c.Octaves < 1 {
			return fmt.Errorf("continental octave count must be >= 1, got %d", c.Octaves)
		}
		if c.Scale <= 0 {
			return fmt.Errorf("continental scale must be positive, got %f", c.Scale)
		}
		if c.Threshold < 0 || c.Threshold > 1 {
			return fmt.Errorf("continental threshold must be in [0,1], got %f", c.Threshold)
		}
		if c.Sharpness <= 0 {
			return fmt.Errorf("continental sharpness must be positive, got %f", c.Sharpness)
		}
	}
	return nil
}

// RadialConfig describes a radial-gradient falloff that fades elevation
// toward the map edge, producing one roughly circular central continent.
// Center and inner radius are normalized to the world extent.
type RadialConfig struct {
	CenterX     float64 `yaml:"center_x"`
	CenterY     float64 `yaml:"center_y"`
	InnerRadius float64 `yaml:"inner_radius"`
	Exponent    float64 `yaml:"exponent"`
	Strength    float64 `yaml:"strength"`
}

// ContinentalConfig describes a threshold falloff driven by a second,
// independently seeded low-octave fractal field. Wherever that field
// exceeds Threshold lies a continent core; elsewhere elevation is pushed
// down toward deep ocean, producing multiple distinct landmasses instead
// of one central continent.
type ContinentalConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Octaves    int     `yaml:"octaves"`
	Scale      float64 `yaml:"scale"`
	Threshold  float64 `yaml:"threshold"`
	Sharpness  float64 `yaml:"sharpness"`
	Strength   float64 `yaml:"strength"`
	OceanDepth float64 `yaml:"ocean_depth"`
}

// radialFalloff is the compiled radial modifier bound to a world extent.
type radialFalloff struct {
	RadialConfig
	width, height float64
}

// Apply returns the elevation after the radial falloff. Coordinates
// inside the inner radius pass through unmodified; beyond it the
// elevation is scaled by (1 - falloff^exponent * strength), where the
// falloff ramps linearly from the inner radius to the map edge.
func (rf *radialFalloff) Apply(x, y, elevation float64) float64 {
	dx := x/rf.width - rf.CenterX
	dy := y/rf.height - rf.CenterY
	// Normalize so the nearest map edge sits at distance 1.
	dist := 2 * math.Sqrt(dx*dx+dy*dy)
	if dist <= rf.InnerRadius {
		return elevation
	}
	falloff := (dist - rf.InnerRadius) / (1 - rf.InnerRadius)
	if falloff > 1 {
		falloff = 1
	}
	return clamp01(elevation * (1 - math.Pow(falloff, rf.Exponent)*rf.Strength))
}

// continentalFalloff is the compiled continental modifier with its own
// low-octave noise field.
type continentalFalloff struct {
	ContinentalConfig
	field *noise.Noise
}

// Apply returns the elevation after the continental falloff. With the
// modifier disabled it is the identity transform.
func (cf *continentalFalloff) Apply(x, y, elevation float64) float64 {
	if !cf.Enabled {
		return elevation
	}
	v := cf.field.Eval2(x, y)
	if v >= cf.Threshold {
		return elevation
	}
	drop := clamp01((cf.Threshold - v) * cf.Sharpness)
	return clamp01(elevation * (1 - drop*cf.Strength*cf.OceanDepth))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
