package worldgen

import (
	"fmt"
)

// Config is a struct that holds all configuration options for the world
// generation. It is owned by the World facade; callers replace it wholesale
// via Configure instead of mutating sub-fields of a live world.
type Config struct {
	Seed    int64            `yaml:"seed"`
	Width   float64          `yaml:"width"`  // World extent in world units (x axis).
	Height  float64          `yaml:"height"` // World extent in world units (y axis).
	Noise   *NoiseConfig     `yaml:"noise"`
	Shape   *ShapeConfig     `yaml:"shape"`
	Climate *ClimateConfig   `yaml:"climate"`
	Biomes  *BiomeThresholds `yaml:"biomes"`
	Res     *ResourceConfig  `yaml:"resources"`
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Seed:    12345,
		Width:   1000,
		Height:  1000,
		Noise:   NewNoiseConfig(),
		Shape:   NewShapeConfig(),
		Climate: NewClimateConfig(),
		Biomes:  NewBiomeThresholds(),
		Res:     NewResourceConfig(),
	}
}

// Validate checks the configuration eagerly so that a bad threshold table or
// octave count is rejected at Configure time instead of surfacing later as
// silent misbehavior.
func (cfg *Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("world extent must be positive, got %fx%f", cfg.Width, cfg.Height)
	}
	if cfg.Noise == nil || cfg.Shape == nil || cfg.Climate == nil || cfg.Biomes == nil || cfg.Res == nil {
		return fmt.Errorf("config is missing a section")
	}
	if err := cfg.Noise.Validate(); err != nil {
		return fmt.Errorf("noise config: %w", err)
	}
	if err := cfg.Shape.Validate(); err != nil {
		return fmt.Errorf("shape config: %w", err)
	}
	if err := cfg.Climate.Validate(); err != nil {
		return fmt.Errorf("climate config: %w", err)
	}
	if err := cfg.Biomes.Validate(); err != nil {
		return fmt.Errorf("biome thresholds: %w", err)
	}
	if err := cfg.Res.Validate(); err != nil {
		return fmt.Errorf("resource config: %w", err)
	}
	return nil
}

// FieldConfig holds the fractal parameters for one noise field.
type FieldConfig struct {
	Octaves     int     `yaml:"octaves"`
	Scale       float64 `yaml:"scale"`       // Base sampling scale (higher = broader features).
	Persistence float64 `yaml:"persistence"` // Per-octave amplitude decay (<1).
	Lacunarity  float64 `yaml:"lacunarity"`  // Per-octave frequency growth (>1).
}

// Validate checks the fractal parameters of a single field.
func (fc *FieldConfig) Validate() error {
	if fc.Octaves < 1 {
		return fmt.Errorf("octave count must be >= 1, got %d", fc.Octaves)
	}
	if fc.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %f", fc.Scale)
	}
	if fc.Persistence <= 0 || fc.Persistence >= 1 {
		return fmt.Errorf("persistence must be in (0,1), got %f", fc.Persistence)
	}
	if fc.Lacunarity <= 1 {
		return fmt.Errorf("lacunarity must be > 1, got %f", fc.Lacunarity)
	}
	return nil
}

// NoiseConfig holds the fractal parameters of the primary scalar fields.
type NoiseConfig struct {
	Elevation  FieldConfig `yaml:"elevation"`
	Moisture   FieldConfig `yaml:"moisture"`
	SeedStride int64       `yaml:"seed_stride"` // Seed offset between octaves.

	// Seed offsets of the independent fields, so that elevation, moisture,
	// climate and shape noise never share octave seeds.
	MoistureOffset    int64 `yaml:"moisture_offset"`
	ClimateOffset     int64 `yaml:"climate_offset"`
	ContinentalOffset int64 `yaml:"continental_offset"`
	ResourceOffset    int64 `yaml:"resource_offset"`
}

// NewNoiseConfig returns a new config for the primary noise fields.
func NewNoiseConfig() *NoiseConfig {
	return &NoiseConfig{
		Elevation: FieldConfig{
			Octaves:     7,
			Scale:       180,
			Persistence: 0.5,
			Lacunarity:  2.0,
		},
		Moisture: FieldConfig{
			Octaves:     5,
			Scale:       250,
			Persistence: 0.55,
			Lacunarity:  2.0,
		},
		SeedStride:        1013,
		MoistureOffset:    100000,
		ClimateOffset:     200000,
		ContinentalOffset: 300000,
		ResourceOffset:    400000,
	}
}

// Validate checks the noise configuration.
func (nc *NoiseConfig) Validate() error {
	if err := nc.Elevation.Validate(); err != nil {
		return fmt.Errorf("elevation field: %w", err)
	}
	if err := nc.Moisture.Validate(); err != nil {
		return fmt.Errorf("moisture field: %w", err)
	}
	if nc.SeedStride == 0 {
		return fmt.Errorf("seed stride must not be zero")
	}
	return nil
}
