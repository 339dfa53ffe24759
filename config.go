package level

import (
	"io/ioutil"

	"github.com/go-yaml/yaml"
	"github.com/mitchellh/go-homedir"
)

// Config includes settings for rendering a Level
type Config struct {
	// multiplier applied to the final image size (nearest neighbour)
	Scale float64 `yaml:"scale"`

	// hex colour to fill the image with before drawing, "" leaves it transparent
	Background string `yaml:"background"`

	// outline objects (& draw their tile if they have one)
	DrawObjects bool   `yaml:"draw_objects"`
	ObjectColor string `yaml:"object_color"`

	// indexes of layers to draw, empty means all of them
	Layers []int `yaml:"layers"`
}

// DefaultConfig returns a render config with default settings.
func DefaultConfig() *Config {
	return &Config{
		Scale:       1,
		Background:  "",
		DrawObjects: false,
		ObjectColor: "#ff0000",
		Layers:      []int{},
	}
}

// LoadConfig reads a YAML config from `fname`. Settings missing from the
// file keep their defaults.
func LoadConfig(fname string) (*Config, error) {
	expanded, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadFile(expanded)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// drawLayer returns if layer `i` is selected by the config
func (c *Config) drawLayer(i int) bool {
	if len(c.Layers) == 0 {
		return true
	}
	for _, want := range c.Layers {
		if want == i {
			return true
		}
	}
	return false
}
