package hud

import "testing"

func TestClassifyField(t *testing.T) {
	for name, want := range map[string]FieldKind{
		"blueTopKda":     FieldKDA,
		"redSupportKda":  FieldKDA,
		"blueMidCreeps":  FieldCreeps,
		"redBotCreeps":   FieldCreeps,
		"blueGold":       FieldGold,
		"redGold":        FieldGold,
		"blueTowers":     FieldTowers,
		"redTowers":      FieldTowers,
		"time":           FieldClock,
		"dragonTimer":    FieldGeneric,
		"blueTeamName":   FieldGeneric,
	} {
		if got := ClassifyField(name); got != want {
			t.Errorf("ClassifyField(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestWhitelistPerKind(t *testing.T) {
	if got := FieldClock.whitelist(); got != "0123456789:" {
		t.Errorf("clock whitelist = %q", got)
	}
	if got := FieldGold.whitelist(); got != "0123456789K." {
		t.Errorf("gold whitelist = %q", got)
	}
	if got := FieldGeneric.whitelist(); got != "0123456789K:/" {
		t.Errorf("generic whitelist = %q", got)
	}
}
