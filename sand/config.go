package sand

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables of a session. Durations are in ticks.
type Config struct {
	BlocksWide     int `yaml:"blocks_wide"`
	BlocksHigh     int `yaml:"blocks_high"`
	GrainsPerBlock int `yaml:"grains_per_block"`

	DropInterval int `yaml:"drop_interval"`
	DropFloor    int `yaml:"drop_floor"`
	SpeedupEvery int `yaml:"speedup_every"`
	SpeedupStep  int `yaml:"speedup_step"`

	SandEvery      int     `yaml:"sand_every"`
	FlashFrames    int     `yaml:"flash_frames"`
	ColorTolerance int     `yaml:"color_tolerance"`
	TintJitter     float64 `yaml:"tint_jitter"`

	ParticleChance  float64 `yaml:"particle_chance"`
	ParticleLife    int     `yaml:"particle_life"`
	ParticleGravity float64 `yaml:"particle_gravity"`

	Palette []RGB `yaml:"palette"`
}

// DefaultConfig returns a 10×20 block field with 4×4 grains per block.
func DefaultConfig() Config {
	return Config{
		BlocksWide:      10,
		BlocksHigh:      20,
		GrainsPerBlock:  4,
		DropInterval:    30,
		DropFloor:       10,
		SpeedupEvery:    5,
		SpeedupStep:     2,
		SandEvery:       1,
		FlashFrames:     20,
		ColorTolerance:  24,
		TintJitter:      0.05,
		ParticleChance:  0.08,
		ParticleLife:    40,
		ParticleGravity: 0.06,
		Palette:         append([]RGB(nil), DefaultPalette...),
	}
}

// GrainWidth is the field width in grains.
func (c Config) GrainWidth() int { return c.BlocksWide * c.GrainsPerBlock }

// GrainHeight is the field height in grains.
func (c Config) GrainHeight() int { return c.BlocksHigh * c.GrainsPerBlock }

// Validate checks that the config describes a playable field.
func (c Config) Validate() error {
	switch {
	case c.BlocksWide < 4:
		return fmt.Errorf("%w: blocks_wide must be at least 4, got %d", ErrInvalidConfig, c.BlocksWide)
	case c.BlocksHigh < 4:
		return fmt.Errorf("%w: blocks_high must be at least 4, got %d", ErrInvalidConfig, c.BlocksHigh)
	case c.GrainsPerBlock < 1:
		return fmt.Errorf("%w: grains_per_block must be positive, got %d", ErrInvalidConfig, c.GrainsPerBlock)
	case c.DropFloor < 1:
		return fmt.Errorf("%w: drop_floor must be positive, got %d", ErrInvalidConfig, c.DropFloor)
	case c.DropInterval < c.DropFloor:
		return fmt.Errorf("%w: drop_interval %d below drop_floor %d", ErrInvalidConfig, c.DropInterval, c.DropFloor)
	case c.SpeedupEvery < 0 || c.SpeedupStep < 0:
		return fmt.Errorf("%w: speedup settings must not be negative", ErrInvalidConfig)
	case c.SandEvery < 1:
		return fmt.Errorf("%w: sand_every must be positive, got %d", ErrInvalidConfig, c.SandEvery)
	case c.FlashFrames < 1:
		return fmt.Errorf("%w: flash_frames must be positive, got %d", ErrInvalidConfig, c.FlashFrames)
	case c.ColorTolerance < 1:
		return fmt.Errorf("%w: color_tolerance must be positive, got %d", ErrInvalidConfig, c.ColorTolerance)
	case c.TintJitter < 0:
		return fmt.Errorf("%w: tint_jitter must not be negative", ErrInvalidConfig)
	case c.ParticleChance < 0 || c.ParticleChance > 1:
		return fmt.Errorf("%w: particle_chance must be within [0, 1], got %g", ErrInvalidConfig, c.ParticleChance)
	case c.ParticleLife < 1:
		return fmt.Errorf("%w: particle_life must be positive, got %d", ErrInvalidConfig, c.ParticleLife)
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	}
	return nil
}

// ParseConfig reads YAML on top of DefaultConfig, so omitted keys keep their defaults,
// and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
