package pkg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Depth  int    `json:"depth" yaml:"depth"`
	Format string `json:"format" yaml:"format"`
	Source string `json:"source" yaml:"source"`
}

func NewConfig() *Config {
	return &Config{
		Depth:  int(HopGrandparent),
		Format: FormatJSON,
		Source: defaultSource,
	}
}

// LoadConfig reads a json or yaml config on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	c := NewConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if formatOf(path) == FormatYAML {
		err = yaml.Unmarshal(data, c)
	} else {
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.Depth < 0 {
		return ErrInvalidDepth
	}
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown snapshot format %q", c.Format)
	}
	switch c.Source {
	case SourceNative, SourceGopsutil:
	default:
		return fmt.Errorf("unknown process source %q", c.Source)
	}
	return nil
}

func (c *Config) Opener() Opener {
	return OpenerFor(c.Source)
}

func (c *Config) WriteTo(path string) error {
	var (
		data []byte
		err  error
	)
	if formatOf(path) == FormatYAML {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.Marshal(c)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
