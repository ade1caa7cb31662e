package config

import (
	"github.com/arloliu/go-rs485/ct200"
	"github.com/arloliu/go-rs485/k30"
	"github.com/arloliu/go-rs485/serial"
	"github.com/arloliu/go-rs485/ux100"
)

// Normalize fills unset fields with driver defaults.
func Normalize(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if c := cfg.CT200; c != nil {
		if c.Retry == 0 {
			c.Retry = ct200.DefaultRetryCount
		}
		if c.ReadTimeoutMs == 0 {
			c.ReadTimeoutMs = int(serial.DefaultReadTimeout.Milliseconds())
		}
	}

	if s := cfg.K30; s != nil {
		normalizeSensor(s, k30.DefaultRetryCount)
	}
	if s := cfg.UX100; s != nil {
		normalizeSensor(s, ux100.DefaultRetryCount)
	}
}

func normalizeSensor(s *SensorConfig, retry int) {
	if s.Retry == 0 {
		s.Retry = retry
	}
	if s.ReadTimeoutMs == 0 {
		s.ReadTimeoutMs = int(serial.DefaultReadTimeout.Milliseconds())
	}
}
