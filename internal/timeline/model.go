package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// TeamColor identifies a side of the map as rendered in the broadcast.
type TeamColor string

const (
	TeamBlue TeamColor = "BLUE"
	TeamRed  TeamColor = "RED"
)

// Role is a canonical in-game position. The declaration order matches the
// top-to-bottom layout of the broadcast HUD and is load-bearing: bar and seat
// indices map to roles through Roles.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleBot     Role = "BOT"
	RoleSupport Role = "SUPPORT"
)

// Roles lists every role in HUD order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleBot, RoleSupport}

// ParseRole maps a role name to its Role, case-insensitively.
func ParseRole(name string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(name)))
	for _, r := range Roles {
		if r == role {
			return r, true
		}
	}
	return "", false
}

// PlayerStats carries the per-player numbers captured from the HUD overlay.
// Nil means the field was not observed in the frame.
type PlayerStats struct {
	HealthPct *float64 `json:"health_pct"`
	ManaPct   *float64 `json:"mana_pct"`
	Position  *[2]int  `json:"position"`
	Kills     *int     `json:"kills"`
	Deaths    *int     `json:"deaths"`
	Assists   *int     `json:"assists"`
	CS        *int     `json:"cs"`
	Gold      *int     `json:"gold"`
}

// TeamStats aggregates the team counters from the top HUD bar.
type TeamStats struct {
	TotalKills *int `json:"total_kills"`
	TotalGold  *int `json:"total_gold"`
	Towers     *int `json:"towers"`
	Objectives *int `json:"objectives"`
}

// GlobalTimers holds respawn timers for neutral objectives, in whole seconds.
type GlobalTimers struct {
	DragonTimer   *int `json:"dragon_timer"`
	BaronTimer    *int `json:"baron_timer"`
	HeraldTimer   *int `json:"herald_timer"`
	VoidgrubTimer *int `json:"voidgrub_timer"`
}

// StaticTeamInfo is one side's draft record: name plus champion per role.
type StaticTeamInfo struct {
	Color     TeamColor       `json:"color"`
	TeamName  string          `json:"team_name"`
	Champions map[Role]string `json:"champions"`
}

// StaticGameInfo is both sides' immutable draft information.
type StaticGameInfo struct {
	Blue StaticTeamInfo `json:"blue"`
	Red  StaticTeamInfo `json:"red"`
}

// Fragment is a partial snapshot: an arbitrary subset of the snapshot
// structure, merged field-by-field into the persisted record.
type Fragment = map[string]any

// Timeline is the complete persisted match record. LiveGameInfo keys are
// match-timer strings "MM:SS" plus the markers "startGame" and "endGame".
type Timeline struct {
	StaticGameInfo StaticGameInfo      `json:"static_game_info"`
	LiveGameInfo   map[string]Fragment `json:"live_game_info"`
	Winner         TeamColor           `json:"winner,omitempty"`
}

// Snapshot markers.
const (
	KeyStartGame = "startGame"
	KeyEndGame   = "endGame"
)

// EmptySnapshot builds the canonical all-null snapshot written under
// startGame, so every later merge lands on a fully shaped record.
func EmptySnapshot() Fragment {
	team := func(color TeamColor) map[string]any {
		players := make(map[string]any, len(Roles))
		for _, role := range Roles {
			players[string(role)] = map[string]any{
				"health_pct": nil,
				"mana_pct":   nil,
				"position":   nil,
				"kills":      nil,
				"deaths":     nil,
				"assists":    nil,
				"cs":         nil,
				"gold":       nil,
			}
		}
		return map[string]any{
			"color":   string(color),
			"players": players,
			"stats": map[string]any{
				"total_kills": nil,
				"total_gold":  nil,
				"towers":      nil,
				"objectives":  nil,
			},
		}
	}
	return Fragment{
		"blue": team(TeamBlue),
		"red":  team(TeamRed),
		"global": map[string]any{
			"dragon_timer":   nil,
			"baron_timer":    nil,
			"herald_timer":   nil,
			"voidgrub_timer": nil,
		},
	}
}

// FormatClock renders whole seconds as the canonical MM:SS key.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseClock parses an MM:SS (or M:SS) key into whole seconds.
func ParseClock(key string) (int, bool) {
	minutes, rest, ok := strings.Cut(key, ":")
	if !ok || len(rest) != 2 {
		return 0, false
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 {
		return 0, false
	}
	s, err := strconv.Atoi(rest)
	if err != nil || s < 0 || s > 59 {
		return 0, false
	}
	return m*60 + s, true
}

// NormalizeTimer maps the accepted timer spellings onto the canonical key:
// raw seconds ("95") become "01:35", MM:SS strings pass through untouched.
func NormalizeTimer(timer string) string {
	timer = strings.TrimSpace(timer)
	if seconds, err := strconv.Atoi(timer); err == nil {
		return FormatClock(seconds)
	}
	return timer
}
