package effects

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid effects config")

// FireworksParams holds the firework recipe: a slow launch cell whose
// particles anchor a short, dense burst of sparks.
type FireworksParams struct {
	BirthRate      float64 `yaml:"birth_rate"`
	AnchorLifetime float64 `yaml:"anchor_lifetime"`
	AnchorSize     float64 `yaml:"anchor_size"`

	BurstBirthRate float64 `yaml:"burst_birth_rate"`
	BurstEndMin    float64 `yaml:"burst_end_min"`
	BurstEndMax    float64 `yaml:"burst_end_max"`

	SparkLifetimeMin float64 `yaml:"spark_lifetime_min"`
	SparkLifetimeMax float64 `yaml:"spark_lifetime_max"`
	SparkSpeedMin    float64 `yaml:"spark_speed_min"`
	SparkSpeedMax    float64 `yaml:"spark_speed_max"`
	SizeScaleMin     float64 `yaml:"size_scale_min"`
	SizeScaleMax     float64 `yaml:"size_scale_max"`
	// SizeDecay is the fraction of its initial size a spark loses per second.
	SizeDecay  float64 `yaml:"size_decay"`
	OpacityMin float64 `yaml:"opacity_min"`
	OpacityMax float64 `yaml:"opacity_max"`
}

// SparkleParams holds the leaf-only twinkle recipe.
type SparkleParams struct {
	BirthRate   float64 `yaml:"birth_rate"`
	LifetimeMin float64 `yaml:"lifetime_min"`
	LifetimeMax float64 `yaml:"lifetime_max"`
	SizeMin     float64 `yaml:"size_min"`
	SizeMax     float64 `yaml:"size_max"`
	DriftMin    float64 `yaml:"drift_min"`
	DriftMax    float64 `yaml:"drift_max"`
}

// Config controls every registered effect.
type Config struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Seed    int64   `yaml:"seed"`
	MaxStep float64 `yaml:"max_step"`
	// FlickerColors re-picks every spark's hue on each Draw instead of
	// keeping the hue chosen at birth.
	FlickerColors bool `yaml:"flicker_colors"`

	Fireworks FireworksParams `yaml:"fireworks"`
	Sparkle   SparkleParams   `yaml:"sparkle"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:   800,
		Height:  600,
		Seed:    1,
		MaxStep: 0.1,
		Fireworks: FireworksParams{
			BirthRate:        2,
			AnchorLifetime:   0.5,
			AnchorSize:       16,
			BurstBirthRate:   8000,
			BurstEndMin:      0.05,
			BurstEndMax:      0.1,
			SparkLifetimeMin: 0.2,
			SparkLifetimeMax: 0.5,
			SparkSpeedMin:    200,
			SparkSpeedMax:    400,
			SizeScaleMin:     0.25,
			SizeScaleMax:     1,
			SizeDecay:        0.5,
			OpacityMin:       0.5,
			OpacityMax:       0.9,
		},
		Sparkle: SparkleParams{
			BirthRate:   40,
			LifetimeMin: 0.4,
			LifetimeMax: 1.2,
			SizeMin:     2,
			SizeMax:     6,
			DriftMin:    5,
			DriftMax:    20,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().Apply(cfg)
}

// Apply returns c with every recognised key of m overriding its field.
// Malformed or out-of-range values are ignored.
func (c Config) Apply(m map[string]string) Config {
	if m == nil {
		return c
	}
	if v, ok := m["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := m["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := m["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := m["flicker"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.FlickerColors = parsed
		}
	}
	positive := func(key string, dst *float64) {
		if v, ok := m[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && !math.IsInf(parsed, 1) {
				*dst = parsed
			}
		}
	}
	nonNegative := func(key string, dst *float64) {
		if v, ok := m[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && !math.IsInf(parsed, 1) {
				*dst = parsed
			}
		}
	}

	positive("max_step", &c.MaxStep)

	fw := &c.Fireworks
	nonNegative("birth_rate", &fw.BirthRate)
	positive("anchor_lifetime", &fw.AnchorLifetime)
	positive("anchor_size", &fw.AnchorSize)
	nonNegative("burst_birth_rate", &fw.BurstBirthRate)
	positive("burst_end_min", &fw.BurstEndMin)
	positive("burst_end_max", &fw.BurstEndMax)
	if fw.BurstEndMax < fw.BurstEndMin {
		fw.BurstEndMax = fw.BurstEndMin
	}
	positive("spark_lifetime_min", &fw.SparkLifetimeMin)
	positive("spark_lifetime_max", &fw.SparkLifetimeMax)
	if fw.SparkLifetimeMax < fw.SparkLifetimeMin {
		fw.SparkLifetimeMax = fw.SparkLifetimeMin
	}
	nonNegative("spark_speed_min", &fw.SparkSpeedMin)
	nonNegative("spark_speed_max", &fw.SparkSpeedMax)
	if fw.SparkSpeedMax < fw.SparkSpeedMin {
		fw.SparkSpeedMax = fw.SparkSpeedMin
	}
	positive("size_scale_min", &fw.SizeScaleMin)
	positive("size_scale_max", &fw.SizeScaleMax)
	if fw.SizeScaleMax < fw.SizeScaleMin {
		fw.SizeScaleMax = fw.SizeScaleMin
	}
	nonNegative("size_decay", &fw.SizeDecay)
	positive("opacity_min", &fw.OpacityMin)
	positive("opacity_max", &fw.OpacityMax)
	if fw.OpacityMax < fw.OpacityMin {
		fw.OpacityMax = fw.OpacityMin
	}

	sp := &c.Sparkle
	nonNegative("sparkle_rate", &sp.BirthRate)
	positive("sparkle_lifetime_min", &sp.LifetimeMin)
	positive("sparkle_lifetime_max", &sp.LifetimeMax)
	if sp.LifetimeMax < sp.LifetimeMin {
		sp.LifetimeMax = sp.LifetimeMin
	}
	return c
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the
// result. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read effects config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML bytes on top of DefaultConfig and validates them.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse effects config YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first inconsistent setting, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	fw, sp := c.Fireworks, c.Sparkle
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return bad("canvas must be positive, got %dx%d", c.Width, c.Height)
	case c.MaxStep <= 0:
		return bad("max_step must be > 0, got %v", c.MaxStep)
	case fw.BirthRate < 0 || fw.BurstBirthRate < 0 || sp.BirthRate < 0:
		return bad("birth rates must be >= 0")
	case fw.AnchorLifetime <= 0 || math.IsInf(fw.AnchorLifetime, 1):
		return bad("fireworks.anchor_lifetime must be finite and > 0, got %v", fw.AnchorLifetime)
	case fw.AnchorSize <= 0:
		return bad("fireworks.anchor_size must be > 0, got %v", fw.AnchorSize)
	case fw.BurstEndMin <= 0 || fw.BurstEndMax < fw.BurstEndMin:
		return bad("fireworks burst window [%v, %v) is empty", fw.BurstEndMin, fw.BurstEndMax)
	case math.IsInf(fw.BurstEndMax, 1):
		return bad("fireworks burst window must close")
	case fw.SparkLifetimeMin <= 0 || fw.SparkLifetimeMax < fw.SparkLifetimeMin:
		return bad("fireworks spark lifetime [%v, %v) is empty", fw.SparkLifetimeMin, fw.SparkLifetimeMax)
	case fw.SparkSpeedMin < 0 || fw.SparkSpeedMax < fw.SparkSpeedMin:
		return bad("fireworks spark speed [%v, %v) is empty", fw.SparkSpeedMin, fw.SparkSpeedMax)
	case fw.SizeScaleMin <= 0 || fw.SizeScaleMax < fw.SizeScaleMin:
		return bad("fireworks size scale [%v, %v) is empty", fw.SizeScaleMin, fw.SizeScaleMax)
	case fw.SizeDecay < 0:
		return bad("fireworks.size_decay must be >= 0, got %v", fw.SizeDecay)
	case fw.OpacityMin <= 0 || fw.OpacityMax < fw.OpacityMin || fw.OpacityMax > 1:
		return bad("fireworks opacity [%v, %v) must lie in (0, 1]", fw.OpacityMin, fw.OpacityMax)
	case sp.LifetimeMin <= 0 || sp.LifetimeMax < sp.LifetimeMin:
		return bad("sparkle lifetime [%v, %v) is empty", sp.LifetimeMin, sp.LifetimeMax)
	case sp.SizeMin <= 0 || sp.SizeMax < sp.SizeMin:
		return bad("sparkle size [%v, %v) is empty", sp.SizeMin, sp.SizeMax)
	case sp.DriftMax < sp.DriftMin:
		return bad("sparkle drift [%v, %v) is empty", sp.DriftMin, sp.DriftMax)
	}
	return nil
}
