package hud

import "strings"

// FieldKind is the closed set of scoreboard field types. The kind fixes the
// binarizer, the OCR whitelist and the parser for a region.
type FieldKind int

const (
	// FieldGeneric is the fallback for regions no rule claims.
	FieldGeneric FieldKind = iota
	// FieldKDA is a kills/deaths/assists triple like "3/1/7".
	FieldKDA
	// FieldCreeps is a creep score counter.
	FieldCreeps
	// FieldGold is a team gold total like "24.5K".
	FieldGold
	// FieldTowers is a destroyed tower counter.
	FieldTowers
	// FieldClock is the match timer "MM:SS".
	FieldClock
)

func (k FieldKind) String() string {
	switch k {
	case FieldKDA:
		return "kda"
	case FieldCreeps:
		return "creeps"
	case FieldGold:
		return "gold"
	case FieldTowers:
		return "towers"
	case FieldClock:
		return "clock"
	}
	return "generic"
}

// whitelist returns the OCR character set for the kind.
func (k FieldKind) whitelist() string {
	switch k {
	case FieldKDA:
		return "0123456789/"
	case FieldCreeps, FieldTowers:
		return "0123456789"
	case FieldGold:
		return "0123456789K."
	case FieldClock:
		return "0123456789:"
	}
	return "0123456789K:/"
}

// ClassifyField maps a template region name onto its kind. The overlay
// templates use "<side><Role>Kda" and "<side><Role>Creeps" for per-player
// fields and fixed names for the team counters.
func ClassifyField(name string) FieldKind {
	switch {
	case strings.HasSuffix(name, "Kda"), strings.HasSuffix(name, "kda"):
		return FieldKDA
	case strings.HasSuffix(name, "Creeps"), strings.HasSuffix(name, "creeps"):
		return FieldCreeps
	case name == "blueGold", name == "redGold":
		return FieldGold
	case name == "blueTowers", name == "redTowers":
		return FieldTowers
	case name == "time":
		return FieldClock
	}
	return FieldGeneric
}
