package config

const (
	defaultMatchesDir   = "~/.local/share/riftscope/matches"
	defaultReferenceDir = "~/.cache/riftscope/reference"
	defaultLogDir       = "~/.local/share/riftscope/logs"

	defaultDetector        = "ORB"
	defaultResizeStrategy  = "both"
	defaultReferenceSource = "icons"

	defaultBarsMinArea         = 300.0
	defaultBarsElongationRatio = 0.5
	defaultBlueBaseline        = "role:JUNGLE"
	defaultRedBaseline         = "max"

	defaultOCRLanguage = "eng"

	defaultPipelineWorkers   = 4
	defaultPipelineQueueSize = 32

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns the baseline configuration before any file overrides.
func Default() Config {
	return Config{
		Paths: Paths{
			MatchesDir:   defaultMatchesDir,
			ReferenceDir: defaultReferenceDir,
			LogDir:       defaultLogDir,
		},
		Detect: Detect{
			Detector:        defaultDetector,
			ResizeStrategy:  defaultResizeStrategy,
			ReferenceSource: defaultReferenceSource,
		},
		Bars: Bars{
			MinArea:         defaultBarsMinArea,
			ElongationRatio: defaultBarsElongationRatio,
			BlueBaseline:    defaultBlueBaseline,
			RedBaseline:     defaultRedBaseline,
		},
		HUD: HUD{
			Language: defaultOCRLanguage,
		},
		Pipeline: Pipeline{
			Workers:   defaultPipelineWorkers,
			QueueSize: defaultPipelineQueueSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
