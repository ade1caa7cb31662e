package config

import (
	"fmt"

	"github.com/arloliu/go-rs485/frame"
	"github.com/arloliu/go-rs485/logger"
)

// Validate checks configuration correctness.
// It performs declarative validation only and does not mutate cfg.
func Validate(cfg *Config) error {
	if _, ok := logger.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("config: unknown log_level %q", cfg.LogLevel)
	}

	if cfg.CT200 == nil && cfg.K30 == nil && cfg.UX100 == nil {
		return ErrNoSensors
	}

	ports := make(map[string]string)
	claim := func(section, port string) error {
		if port == "" {
			return fmt.Errorf("config: %s: port is required", section)
		}
		if owner, ok := ports[port]; ok {
			return fmt.Errorf("config: %s: port %q already used by %s", section, port, owner)
		}
		ports[port] = section

		return nil
	}

	if c := cfg.CT200; c != nil {
		if err := claim("ct200", c.Port); err != nil {
			return err
		}
		if err := validateCommon("ct200", c.Retry, c.ReadTimeoutMs, c.BufferLimit); err != nil {
			return err
		}
		if len(c.IDs) == 0 {
			return fmt.Errorf("config: ct200: at least one id is required")
		}

		seen := make(map[int]bool, len(c.IDs))
		for _, id := range c.IDs {
			if id < 0 || id > 0xFF {
				return fmt.Errorf("config: ct200: id %d out of range [0, 255]", id)
			}
			if id == int(frame.BroadcastAddress) {
				return fmt.Errorf("config: ct200: id %d is the broadcast address", id)
			}
			if seen[id] {
				return fmt.Errorf("config: ct200: duplicate id %d", id)
			}
			seen[id] = true
		}
	}

	sensors := []struct {
		name string
		cfg  *SensorConfig
	}{
		{"k30", cfg.K30},
		{"ux100", cfg.UX100},
	}
	for _, s := range sensors {
		if s.cfg == nil {
			continue
		}
		if err := claim(s.name, s.cfg.Port); err != nil {
			return err
		}
		if err := validateCommon(s.name, s.cfg.Retry, s.cfg.ReadTimeoutMs, s.cfg.BufferLimit); err != nil {
			return err
		}
	}

	return nil
}

func validateCommon(section string, retry, readTimeoutMs, bufferLimit int) error {
	if retry < 1 || retry > MaxRetry {
		return fmt.Errorf("config: %s: retry %d out of range [1, %d]", section, retry, MaxRetry)
	}
	if readTimeoutMs <= 0 {
		return fmt.Errorf("config: %s: read_timeout_ms must be positive", section)
	}
	if bufferLimit < 0 {
		return fmt.Errorf("config: %s: buffer_limit must not be negative", section)
	}

	return nil
}
