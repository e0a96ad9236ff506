package bars

import "gocv.io/x/gocv"

// Kind selects which bar family a detection pass looks for.
type Kind int

const (
	// KindHealth segments the green health bars.
	KindHealth Kind = iota
	// KindMana segments the blue mana bars.
	KindMana
	// KindEnemy segments the red enemy overlay bars, which render in many
	// shades and need several hue windows plus fragment clustering.
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindHealth:
		return "health"
	case KindMana:
		return "mana"
	case KindEnemy:
		return "enemy"
	}
	return "unknown"
}

// window is one HSV segmentation range with its own minimum contour area at
// the 1920x1080 reference resolution.
type window struct {
	lo, hi  gocv.Scalar
	areaRef float64
}

func hsv(h, s, v float64) gocv.Scalar { return gocv.NewScalar(h, s, v, 0) }

// healthWindows and manaWindows use the generic area floor; the caller's
// MinArea overrides their areaRef.
var healthWindows = []window{
	{lo: hsv(30, 40, 40), hi: hsv(80, 250, 250)},
}

var manaWindows = []window{
	{lo: hsv(95, 50, 50), hi: hsv(125, 255, 255)},
}

// enemyWindows covers the red bar shades seen on broadcast overlays: vivid
// red, orange tints, dark faded reds and the wrap-around hues near 180.
var enemyWindows = []window{
	{lo: hsv(0, 10, 40), hi: hsv(20, 255, 200), areaRef: 200},
	{lo: hsv(0, 50, 80), hi: hsv(10, 255, 255), areaRef: 300},
	{lo: hsv(10, 40, 70), hi: hsv(20, 255, 255), areaRef: 300},
	{lo: hsv(0, 25, 40), hi: hsv(10, 150, 200), areaRef: 300},
	{lo: hsv(10, 25, 40), hi: hsv(20, 150, 200), areaRef: 300},
	{lo: hsv(160, 50, 80), hi: hsv(179, 255, 255), areaRef: 300},
	{lo: hsv(160, 25, 40), hi: hsv(179, 150, 200), areaRef: 300},
	{lo: hsv(140, 40, 60), hi: hsv(159, 255, 255), areaRef: 300},
}

func windowsFor(kind Kind) []window {
	switch kind {
	case KindHealth:
		return healthWindows
	case KindMana:
		return manaWindows
	case KindEnemy:
		return enemyWindows
	}
	return nil
}
