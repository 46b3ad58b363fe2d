package convolveme

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// KernelSpec describes a custom kernel. Weights are divided by Divisor when it is set.
type KernelSpec struct {
	Matrix  [][]float64 `toml:"matrix" yaml:"matrix"`
	Divisor float64     `toml:"divisor" yaml:"divisor"`
}

// Config holds the default binding options and custom kernel definitions.
//
//	kernel = "edge3"
//	permanent = false
//
//	[kernels.edge3]
//	matrix = [[-1, -1, -1], [-1, 8, -1], [-1, -1, -1]]
type Config struct {
	Kernel    string                `toml:"kernel" yaml:"kernel"`
	Permanent bool                  `toml:"permanent" yaml:"permanent"`
	Kernels   map[string]KernelSpec `toml:"kernels" yaml:"kernels"`
}

// DefaultConfig returns the simple kernel in permanent mode.
func DefaultConfig() *Config {
	return &Config{
		Kernel:    "simple",
		Permanent: true,
	}
}

// LoadConfig reads a TOML or YAML file, picked by its extension.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return LoadConfigFromReader(f, "toml")
	case ".yaml", ".yml":
		return LoadConfigFromReader(f, "yaml")
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
}

// LoadConfigFromReader decodes a "toml" or "yaml" document on top of the defaults.
func LoadConfigFromReader(r io.Reader, format string) (*Config, error) {
	cfg := DefaultConfig()
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, err
		}
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return cfg, nil
}

// Resolve returns the custom kernel of the given name, or the built-in one.
func (c *Config) Resolve(name string) (*Kernel, error) {
	spec, ok := c.Kernels[name]
	if !ok {
		return KernelByName(name)
	}
	k, err := NewKernel(spec.Matrix)
	if err != nil {
		return nil, fmt.Errorf("kernel %q: %w", name, err)
	}
	if spec.Divisor != 0 && spec.Divisor != 1 {
		k = k.Scale(1 / spec.Divisor)
	}
	return k, nil
}

// Options returns the binding options described by the config.
func (c *Config) Options() (Options, error) {
	k, err := c.Resolve(c.Kernel)
	if err != nil {
		return Options{}, err
	}
	return Options{Kernel: k, Permanent: c.Permanent}, nil
}
