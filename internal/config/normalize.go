package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetect()
	c.normalizeBars()
	c.normalizeHUD()
	c.normalizePipeline()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.MatchesDir) == "" {
		c.Paths.MatchesDir = defaultMatchesDir
	}
	if c.Paths.MatchesDir, err = expandPath(c.Paths.MatchesDir); err != nil {
		return fmt.Errorf("paths.matches_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReferenceDir) == "" {
		c.Paths.ReferenceDir = defaultReferenceDir
	}
	if c.Paths.ReferenceDir, err = expandPath(c.Paths.ReferenceDir); err != nil {
		return fmt.Errorf("paths.reference_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TemplateDir) != "" {
		if c.Paths.TemplateDir, err = expandPath(c.Paths.TemplateDir); err != nil {
			return fmt.Errorf("paths.template_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeDetect() {
	c.Detect.Detector = strings.ToUpper(strings.TrimSpace(c.Detect.Detector))
	if c.Detect.Detector == "" {
		c.Detect.Detector = defaultDetector
	}
	c.Detect.ResizeStrategy = strings.ToLower(strings.TrimSpace(c.Detect.ResizeStrategy))
	if c.Detect.ResizeStrategy == "" {
		c.Detect.ResizeStrategy = defaultResizeStrategy
	}
	c.Detect.ReferenceSource = strings.ToLower(strings.TrimSpace(c.Detect.ReferenceSource))
	if c.Detect.ReferenceSource == "" {
		c.Detect.ReferenceSource = defaultReferenceSource
	}
}

func (c *Config) normalizeBars() {
	if c.Bars.MinArea <= 0 {
		c.Bars.MinArea = defaultBarsMinArea
	}
	if c.Bars.ElongationRatio <= 0 {
		c.Bars.ElongationRatio = defaultBarsElongationRatio
	}
	c.Bars.BlueBaseline = strings.TrimSpace(c.Bars.BlueBaseline)
	if c.Bars.BlueBaseline == "" {
		c.Bars.BlueBaseline = defaultBlueBaseline
	}
	c.Bars.RedBaseline = strings.TrimSpace(c.Bars.RedBaseline)
	if c.Bars.RedBaseline == "" {
		c.Bars.RedBaseline = defaultRedBaseline
	}
}

func (c *Config) normalizeHUD() {
	c.HUD.Language = strings.TrimSpace(c.HUD.Language)
	if c.HUD.Language == "" {
		c.HUD.Language = defaultOCRLanguage
	}
}

func (c *Config) normalizePipeline() {
	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = defaultPipelineWorkers
	}
	if c.Pipeline.QueueSize <= 0 {
		c.Pipeline.QueueSize = defaultPipelineQueueSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
