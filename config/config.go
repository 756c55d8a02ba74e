package config

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/gxtex/export"
	"github.com/mogaika/gxtex/source"
)

type Config struct {
	Listen        string            `yaml:"listen"`
	Output        string            `yaml:"output"`
	Compression   string            `yaml:"compression"`
	MaxUploadSize int64             `yaml:"max_upload_size"`
	Aliases       map[string]string `yaml:"aliases"`
}

func Default() *Config {
	return &Config{
		Listen:        ":8000",
		Output:        export.OutputPNG,
		Compression:   source.CompressionNone,
		MaxUploadSize: 16 << 20,
		Aliases:       map[string]string{},
	}
}

// Load overlays yaml file on top of defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read config")
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal config")
	}
	if c.Aliases == nil {
		c.Aliases = map[string]string{}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if !export.ValidOutput(c.Output) {
		return errors.Errorf("Unknown output %q, expected one of %v", c.Output, export.Outputs())
	}
	if !source.ValidCompression(c.Compression) {
		return errors.Errorf("Unknown compression %q, expected one of %v", c.Compression, source.Compressions())
	}
	if c.MaxUploadSize < 0 {
		return errors.Errorf("Negative max_upload_size %d", c.MaxUploadSize)
	}
	if _, err := c.FormatAliases(); err != nil {
		return err
	}
	return nil
}

var (
	currentLock   sync.RWMutex
	currentConfig = Default()
)

func Get() *Config {
	currentLock.RLock()
	defer currentLock.RUnlock()
	return currentConfig
}

func Set(c *Config) {
	currentLock.Lock()
	defer currentLock.Unlock()
	currentConfig = c
}
