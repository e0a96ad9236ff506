package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"riftscope/internal/bars"
	"riftscope/internal/champselect"
	"riftscope/internal/frame"
	"riftscope/internal/hud"
	"riftscope/internal/refset"
	"riftscope/internal/timeline"
)

func newChampSelectCommand(ctx *commandContext) *cobra.Command {
	var framePath, templatePath, detectorFlag, strategyFlag, sourceFlag string

	cmd := &cobra.Command{
		Use:   "champselect",
		Short: "Identify drafted champions on a champion-select frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			detector, ok := champselect.ParseDetector(pick(detectorFlag, cfg.Detect.Detector))
			if !ok {
				return fmt.Errorf("unknown detector %q", pick(detectorFlag, cfg.Detect.Detector))
			}
			strategy, ok := champselect.ParseStrategy(pick(strategyFlag, cfg.Detect.ResizeStrategy))
			if !ok {
				return fmt.Errorf("unknown resize strategy %q", pick(strategyFlag, cfg.Detect.ResizeStrategy))
			}
			source, ok := refset.ParseSource(pick(sourceFlag, cfg.Detect.ReferenceSource))
			if !ok {
				return fmt.Errorf("unknown reference source %q", pick(sourceFlag, cfg.Detect.ReferenceSource))
			}

			tpl, err := ctx.loadTemplate(templatePath, champSelectTemplate)
			if err != nil {
				return err
			}
			img, err := loadFrame(framePath)
			if err != nil {
				return err
			}
			defer img.Close()

			cache := refset.NewCache(refset.NewDirProvider(cfg.Paths.ReferenceDir), frame.Decode)
			defer cache.Close()
			set, err := cache.Get(cmd.Context(), source)
			if err != nil {
				return err
			}

			matcher, err := champselect.NewMatcher(detector, strategy)
			if err != nil {
				return err
			}
			defer matcher.Close()

			result, err := matcher.Match(img, tpl, set)
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string][5]string{"blue": result.Blue, "red": result.Red})
		},
	}

	cmd.Flags().StringVarP(&framePath, "frame", "f", "", "Frame image file")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "ROI template file")
	cmd.Flags().StringVar(&detectorFlag, "detector", "", "Feature detector (SIFT, ORB, AKAZE, BRISK, KAZE)")
	cmd.Flags().StringVar(&strategyFlag, "strategy", "", "Resize strategy (none, seat, references, both)")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Reference source (icons, splash_arts, loading_screens)")
	cmd.MarkFlagRequired("frame")
	return cmd
}

func newBarsCommand(ctx *commandContext) *cobra.Command {
	var framePath, templatePath, kindFlag string

	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Read resource bar percentages off a HUD frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			kind, err := parseBarKind(kindFlag)
			if err != nil {
				return err
			}
			opts, err := bars.OptionsFrom(cfg.Bars)
			if err != nil {
				return err
			}

			tpl, err := ctx.loadTemplate(templatePath, overlayTemplate)
			if err != nil {
				return err
			}
			img, err := loadFrame(framePath)
			if err != nil {
				return err
			}
			defer img.Close()

			reading, err := bars.Detect(img, tpl, kind, opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string]map[timeline.Role]*float64{
				"blue": reading.Blue,
				"red":  reading.Red,
			})
		},
	}

	cmd.Flags().StringVarP(&framePath, "frame", "f", "", "Frame image file")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "ROI template file")
	cmd.Flags().StringVar(&kindFlag, "kind", "health", "Bar kind (health, mana, enemy)")
	cmd.MarkFlagRequired("frame")
	return cmd
}

func newHUDCommand(ctx *commandContext) *cobra.Command {
	var framePath, templatePath string

	cmd := &cobra.Command{
		Use:   "hud",
		Short: "OCR the scoreboard overlay fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			tpl, err := ctx.loadTemplate(templatePath, scoreboardTemplate)
			if err != nil {
				return err
			}
			img, err := loadFrame(framePath)
			if err != nil {
				return err
			}
			defer img.Close()

			extractor, err := hud.NewExtractor(cfg.HUD.TessdataDir, cfg.HUD.Language, ctx.ensureLogger())
			if err != nil {
				return err
			}
			defer extractor.Close()

			values, err := extractor.Extract(img, tpl)
			if err != nil {
				return err
			}
			return writeJSON(cmd, hudOutput(values))
		},
	}

	cmd.Flags().StringVarP(&framePath, "frame", "f", "", "Frame image file")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "ROI template file")
	cmd.MarkFlagRequired("frame")
	return cmd
}

func parseBarKind(s string) (bars.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "health", "":
		return bars.KindHealth, nil
	case "mana":
		return bars.KindMana, nil
	case "enemy":
		return bars.KindEnemy, nil
	}
	return 0, fmt.Errorf("unknown bar kind %q", s)
}

// hudOutput renders OCR values as {raw, parsed} pairs.
func hudOutput(values map[string]hud.Value) map[string]map[string]any {
	out := make(map[string]map[string]any, len(values))
	for name, v := range values {
		entry := map[string]any{"kind": v.Kind.String(), "raw": v.Raw}
		switch {
		case v.KDA != nil:
			entry["parsed"] = v.KDA
		case v.Count != nil:
			entry["parsed"] = *v.Count
		case v.Text != nil:
			entry["parsed"] = *v.Text
		default:
			entry["parsed"] = nil
		}
		out[name] = entry
	}
	return out
}

// pick prefers an explicit flag value over the configured default.
func pick(flagValue, configValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	return configValue
}
