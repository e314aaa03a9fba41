package worldgen

import (
	"fmt"
	"math"

	"github.com/romxai/world-generation-sub000/noise"
	"github.com/romxai/world-generation-sub000/various"
)

// ClimateConfig holds the parameters of the temperature model.
type ClimateConfig struct {
	EquatorPosition    float64 `yaml:"equator_position"`    // Normalized y of the equator (0..1).
	BandScale          float64 `yaml:"band_scale"`          // <1 widens warm bands, >1 narrows them.
	EquatorTemperature float64 `yaml:"equator_temperature"` // Temperature at the equator (0..1).
	PolarTemperature   float64 `yaml:"polar_temperature"`   // Temperature at the poles (0..1).
	Variance           float64 `yaml:"variance"`            // Strength of the regional noise perturbation.
	VarianceScale      float64 `yaml:"variance_scale"`      // Sampling scale of the perturbation field.
	VarianceOctaves    int     `yaml:"variance_octaves"`
	ElevationCooling   float64 `yaml:"elevation_cooling"` // Temperature drop per unit of elevation.
}

// NewClimateConfig returns a new config for the temperature model.
func NewClimateConfig() *ClimateConfig {
	return &ClimateConfig{
		EquatorPosition:    0.5,
		BandScale:          1.0,
		EquatorTemperature: 0.9,
		PolarTemperature:   0.1,
		Variance:           0.08,
		VarianceScale:      350,
		VarianceOctaves:    4,
		ElevationCooling:   0.35,
	}
}

// Validate checks the climate parameters.
func (cc *ClimateConfig) Validate() error {
	if cc.EquatorPosition < 0 || cc.EquatorPosition > 1 {
		return fmt.Errorf("equator position must be in [0,1], got %f", cc.EquatorPosition)
	}
	if cc.BandScale <= 0 {
		return fmt.Errorf("band scale must be positive, got %f", cc.BandScale)
	}
	if cc.PolarTemperature > cc.EquatorTemperature {
		return fmt.Errorf("polar temperature %f exceeds equator temperature %f",
			cc.PolarTemperature, cc.EquatorTemperature)
	}
	if cc.Variance < 0 {
		return fmt.Errorf("variance must not be negative, got %f", cc.Variance)
	}
	if cc.Variance > 0 {
		if cc.VarianceOctaves < 1 {
			return fmt.Errorf("variance octave count must be >= 1, got %d", cc.VarianceOctaves)
		}
		if cc.VarianceScale <= 0 {
			return fmt.Errorf("variance scale must be positive, got %f", cc.VarianceScale)
		}
	}
	return nil
}

// latitudeSamples is the resolution of the precomputed latitude curve.
const latitudeSamples = 512

// Climate is the compiled temperature model: a latitude gradient
// precomputed once per configuration, a regional fractal perturbation,
// and an elevation cooling term.
type Climate struct {
	cfg     ClimateConfig
	height  float64
	perturb *noise.Noise
	curve   [latitudeSamples + 1]float64
}

// newClimate compiles the temperature model for the given world height
// and seed. The latitude curve is sampled into a table here so that
// per-query work is a table lookup plus one noise evaluation.
func newClimate(cfg ClimateConfig, height float64, seed, stride int64) *Climate {
	c := &Climate{
		cfg:    cfg,
		height: height,
	}
	if cfg.Variance > 0 {
		c.perturb = noise.NewNoiseWithStride(cfg.VarianceOctaves, 0.5, 2.0, cfg.VarianceScale, seed, stride)
	}
	for i := range c.curve {
		c.curve[i] = c.latitudeTemperature(float64(i) / latitudeSamples)
	}
	return c
}

// latitudeTemperature computes the base temperature for a normalized
// y position in [0,1]. Temperature peaks at the equator and eases via
// a cosine toward the polar temperature at the farthest pole.
func (c *Climate) latitudeTemperature(ny float64) float64 {
	eq := c.cfg.EquatorPosition
	dist := math.Abs(ny-eq) / math.Max(eq, 1-eq)
	if c.cfg.BandScale != 1 {
		dist = math.Pow(dist, 1/c.cfg.BandScale)
	}
	return c.cfg.PolarTemperature +
		math.Cos(dist*math.Pi/2)*(c.cfg.EquatorTemperature-c.cfg.PolarTemperature)
}

// CalculateTemperature returns the temperature in [0,1] at the given
// coordinate and elevation.
func (c *Climate) CalculateTemperature(x, y, elevation float64) float64 {
	ny := clamp01(y / c.height)
	// Table lookup with linear interpolation between samples.
	pos := ny * latitudeSamples
	i := int(pos)
	if i >= latitudeSamples {
		i = latitudeSamples - 1
	}
	frac := pos - float64(i)
	temp := various.Lerp(c.curve[i], c.curve[i+1], frac)

	if c.perturb != nil {
		temp += (c.perturb.Eval2(x, y) - 0.5) * c.cfg.Variance * 2
	}
	temp -= elevation * c.cfg.ElevationCooling
	return clamp01(temp)
}
