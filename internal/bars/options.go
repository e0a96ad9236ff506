package bars

import (
	"fmt"

	"riftscope/internal/config"
)

// OptionsFrom builds detection options from the bars config section.
func OptionsFrom(section config.Bars) (Options, error) {
	blue, err := ParseBaseline(section.BlueBaseline)
	if err != nil {
		return Options{}, fmt.Errorf("bars: blue baseline: %w", err)
	}
	red, err := ParseBaseline(section.RedBaseline)
	if err != nil {
		return Options{}, fmt.Errorf("bars: red baseline: %w", err)
	}
	return Options{
		MinArea:         section.MinArea,
		ElongationRatio: section.ElongationRatio,
		BlueBaseline:    blue,
		RedBaseline:     red,
	}, nil
}
