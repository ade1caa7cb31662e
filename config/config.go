package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of the sensor buses. A nil section leaves
// that sensor unconfigured.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	CT200    *CT200Config  `yaml:"ct200"`
	K30      *SensorConfig `yaml:"k30"`
	UX100    *SensorConfig `yaml:"ux100"`
}

// SensorConfig describes a single-device bus.
type SensorConfig struct {
	Port          string `yaml:"port"`
	Retry         int    `yaml:"retry"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
	BufferLimit   int    `yaml:"buffer_limit"`

	// ValidateCRC enables K30 response checksums. Ignored for UX100.
	ValidateCRC bool `yaml:"validate_crc"`
}

// CT200Config describes a bus of CT200 probes.
type CT200Config struct {
	Port          string `yaml:"port"`
	IDs           []int  `yaml:"ids"`
	Retry         int    `yaml:"retry"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
	BufferLimit   int    `yaml:"buffer_limit"`
	StrictClear   bool   `yaml:"strict_clear"`
}

// ErrNoSensors is returned when no sensor section is present.
var ErrNoSensors = errors.New("config: no sensor configured")

// Load reads, normalizes and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse decodes, normalizes and validates a YAML document. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
