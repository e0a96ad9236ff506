package config

import (
	"errors"
	"fmt"
	"strings"
)

var validDetectors = map[string]bool{
	"SIFT": true, "ORB": true, "AKAZE": true, "BRISK": true, "KAZE": true,
}

var validStrategies = map[string]bool{
	"none": true, "seat": true, "references": true, "both": true,
}

var validSources = map[string]bool{
	"icons": true, "splash_arts": true, "loading_screens": true,
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetect(); err != nil {
		return err
	}
	if err := c.validateBars(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetect() error {
	if !validDetectors[c.Detect.Detector] {
		return fmt.Errorf("detect.detector: unsupported detector %q", c.Detect.Detector)
	}
	if !validStrategies[c.Detect.ResizeStrategy] {
		return fmt.Errorf("detect.resize_strategy: unsupported strategy %q", c.Detect.ResizeStrategy)
	}
	if !validSources[c.Detect.ReferenceSource] {
		return fmt.Errorf("detect.reference_source: unsupported source %q", c.Detect.ReferenceSource)
	}
	return nil
}

func (c *Config) validateBars() error {
	if c.Bars.ElongationRatio >= 1 {
		return errors.New("bars.elongation_ratio must be below 1: bars are wide, not tall")
	}
	for _, baseline := range []string{c.Bars.BlueBaseline, c.Bars.RedBaseline} {
		if baseline == "max" {
			continue
		}
		role, ok := strings.CutPrefix(baseline, "role:")
		if !ok || strings.TrimSpace(role) == "" {
			return fmt.Errorf("bars baseline %q must be \"max\" or \"role:<ROLE>\"", baseline)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
