// Package bars reads player resource bars off a broadcast HUD frame by HSV
// color segmentation: green health and blue mana on the team panels, plus
// the red variant used for enemy overlay bars.
package bars
