package hud

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reKDA      = regexp.MustCompile(`(\d+)/(\d+)/(\d+)`)
	reGold     = regexp.MustCompile(`\d+\.?\d*K`)
	reClock    = regexp.MustCompile(`\d{1,2}:\d{2}`)
	reTrailInt = regexp.MustCompile(`\d+$`)
	reFirstInt = regexp.MustCompile(`\d+`)
)

// KDA is one player's kill/death/assist triple.
type KDA struct {
	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`
}

// Value is one OCR'd field: the raw recognized text plus at most one parsed
// representation matching the field kind. All parsed members nil means the
// region did not read.
type Value struct {
	Kind FieldKind
	Raw  string

	KDA   *KDA
	Count *int
	Text  *string
}

// Empty reports whether nothing parsed out of the region.
func (v Value) Empty() bool {
	return v.KDA == nil && v.Count == nil && v.Text == nil
}

// parse interprets raw OCR text according to the field kind.
func parse(kind FieldKind, raw string) Value {
	v := Value{Kind: kind, Raw: raw}
	switch kind {
	case FieldKDA:
		v.KDA = ParseKDA(raw)
	case FieldCreeps:
		v.Count = matchInt(reTrailInt, raw)
	case FieldTowers:
		v.Count = matchInt(reFirstInt, raw)
	case FieldGold:
		v.Text = matchText(reGold, raw)
	case FieldClock:
		v.Text = matchText(reClock, raw)
	default:
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			v.Text = &trimmed
		}
	}
	return v
}

// ParseKDA extracts the first k/d/a triple in the text.
func ParseKDA(raw string) *KDA {
	m := reKDA.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	k, _ := strconv.Atoi(m[1])
	d, _ := strconv.Atoi(m[2])
	a, _ := strconv.Atoi(m[3])
	return &KDA{Kills: k, Deaths: d, Assists: a}
}

// GoldToInt converts a "24.5K" style reading into whole gold.
func GoldToInt(s string) (int, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "K"))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f * 1000), true
}

func matchInt(re *regexp.Regexp, raw string) *int {
	m := re.FindString(raw)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

func matchText(re *regexp.Regexp, raw string) *string {
	m := re.FindString(raw)
	if m == "" {
		return nil
	}
	return &m
}
