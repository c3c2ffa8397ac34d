package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.005
	DefaultSteps     = 1000
	DefaultBoxEdge   = 20.0
	DefaultBodies    = 64
	DefaultSites     = 3
	DefaultSpacing   = 0.5
	DefaultField     = "trap"
	DefaultFieldK    = 1.0
	DefaultBodiesPer = 4
)

type Config struct {
	Dt         float64      `yaml:"dt"`
	Steps      int          `yaml:"steps"`
	Seed       int64        `yaml:"seed"`
	Box        BoxConfig    `yaml:"box"`
	Bodies     BodyConfig   `yaml:"bodies"`
	ForceField FieldConfig  `yaml:"force_field"`
	Backend    string       `yaml:"backend"`
	Sizing     SizingConfig `yaml:"sizing"`
}

type BoxConfig struct {
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
	Lz float64 `yaml:"lz"`
}

type BodyConfig struct {
	// Count is the number of rigid bodies to build.
	Count int `yaml:"count"`
	// Sites is the constituent count per body, central excluded.
	Sites int `yaml:"sites"`
	// Spacing is the distance between neighboring template sites.
	Spacing float64 `yaml:"spacing"`
	// Free is the number of additional free particles.
	Free int `yaml:"free"`
}

type FieldConfig struct {
	Name string  `yaml:"name"`
	K    float64 `yaml:"k"`
}

type SizingConfig struct {
	PreferredWidth int `yaml:"preferred_width"`
	MaxWidth       int `yaml:"max_width"`
	BodiesPerGroup int `yaml:"bodies_per_group"`
	ScratchBudget  int `yaml:"scratch_budget"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:    DefaultDt,
		Steps: DefaultSteps,
		Box:   BoxConfig{Lx: DefaultBoxEdge, Ly: DefaultBoxEdge, Lz: DefaultBoxEdge},
		Bodies: BodyConfig{
			Count:   DefaultBodies,
			Sites:   DefaultSites,
			Spacing: DefaultSpacing,
		},
		ForceField: FieldConfig{Name: DefaultField, K: DefaultFieldK},
		Sizing:     SizingConfig{BodiesPerGroup: DefaultBodiesPer},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.Box.Lx <= 0 || c.Box.Ly <= 0 || c.Box.Lz <= 0 {
		return fmt.Errorf("box edges must be positive, got (%f, %f, %f)",
			c.Box.Lx, c.Box.Ly, c.Box.Lz)
	}
	if c.Bodies.Count < 0 || c.Bodies.Free < 0 {
		return fmt.Errorf("particle counts must be non-negative")
	}
	if c.Bodies.Count > 0 && c.Bodies.Sites <= 0 {
		return fmt.Errorf("bodies need at least one constituent site, got %d", c.Bodies.Sites)
	}
	return nil
}
