package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	virtuallist "github.com/wippyai/virtual-list"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ListConfig struct {
		Direction         virtuallist.Direction `yaml:"direction" validate:"oneof=vertical horizontal"`
		Width             float64               `yaml:"width" validate:"gte=0"`
		Height            float64               `yaml:"height" validate:"gte=0"`
		Overscan          int                   `yaml:"overscan" validate:"gte=0"`
		InitialRows       int                   `yaml:"initial_rows" validate:"gte=0"`
		EstimatedItemSize float64               `yaml:"estimated_item_size" validate:"gte=0"`
		UpperThreshold    float64               `yaml:"upper_threshold" validate:"gte=0"`
		LowerThreshold    float64               `yaml:"lower_threshold" validate:"gte=0"`
		InitialIndex      int                   `yaml:"initial_index" validate:"gte=0"`
		Alignment         virtuallist.Alignment `yaml:"alignment" validate:"oneof=auto start center end"`
	}

	SectionConfig struct {
		Title  string  `yaml:"title" validate:"required"`
		Items  int     `yaml:"items" validate:"gte=0"`
		Header float64 `yaml:"header" validate:"gte=0"`
		Footer float64 `yaml:"footer" validate:"gte=0"`
	}

	DataConfig struct {
		ItemCount   int             `yaml:"item_count" validate:"gte=0"`
		MinItemSize float64         `yaml:"min_item_size" validate:"gte=1"`
		MaxItemSize float64         `yaml:"max_item_size" validate:"gtefield=MinItemSize"`
		Seed        uint64          `yaml:"seed"`
		Sections    []SectionConfig `yaml:"sections" validate:"dive"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		List    ListConfig    `yaml:"list"`
		Data    DataConfig    `yaml:"data"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// TotalItems returns the number of rows the data section describes.
func (d *DataConfig) TotalItems() int {
	if len(d.Sections) == 0 {
		return d.ItemCount
	}
	var n int
	for _, s := range d.Sections {
		n += s.Items
	}
	return n
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields defined above are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if err := cfg.check(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// check reports every cross-field problem the validator tags cannot express.
func (c *Config) check() error {
	var err error
	seen := make(map[string]struct{}, len(c.Data.Sections))
	for i, s := range c.Data.Sections {
		if _, ok := seen[s.Title]; ok {
			err = multierr.Append(err, fmt.Errorf("data.sections[%d]: duplicate title %q", i, s.Title))
		}
		seen[s.Title] = struct{}{}
	}
	if n := c.Data.TotalItems(); n > 0 && c.List.InitialIndex >= n {
		err = multierr.Append(err, fmt.Errorf("list.initial_index %d is outside of 0..%d", c.List.InitialIndex, n-1))
	}
	return err
}

// LoadConfiguration expands the embedded template, lays the file at path
// over it when path is not empty and validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump serializes cfg back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
