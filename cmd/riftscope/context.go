package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"riftscope/internal/config"
	"riftscope/internal/frame"
	"riftscope/internal/logging"
	"riftscope/internal/roi"
	"riftscope/internal/timeline"
)

// Template file names under the configured template directory.
const (
	champSelectTemplate = "champ_select_rois.json"
	overlayTemplate     = "main_overlay_rois.json"
	scoreboardTemplate  = "ocr_main_hud_rois.json"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	logger  *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) openStore() (*timeline.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return timeline.Open(cfg)
}

// loadTemplate resolves an explicit --template flag or falls back to the
// named file in the configured template directory.
func (c *commandContext) loadTemplate(flagValue, defaultName string) (*roi.Template, error) {
	path := strings.TrimSpace(flagValue)
	if path == "" {
		cfg, err := c.ensureConfig()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(cfg.Paths.TemplateDir, defaultName)
	}
	return roi.Load(path)
}

// loadFrame decodes a frame image from disk.
func loadFrame(path string) (gocv.Mat, error) {
	source := fileSource{}
	data, err := source.read(path)
	if err != nil {
		return gocv.NewMat(), err
	}
	return frame.Decode(data)
}
