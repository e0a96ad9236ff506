package pipeline

import (
	"errors"
	"fmt"

	"riftscope/internal/bars"
	"riftscope/internal/hud"
	"riftscope/internal/timeline"
)

// ErrNoClock rejects a detection whose scoreboard clock did not read; a
// snapshot without a clock has no timeline key to merge under.
var ErrNoClock = errors.New("pipeline: no readable match clock")

// clockField is the template region carrying the match timer.
const clockField = "time"

// SnapshotFromDetections assembles the canonical timeline fragment from the
// three detector outputs and returns it with the clock key it belongs under.
// Unread fields are simply absent, so merging never erases earlier readings.
func SnapshotFromDetections(health, mana bars.Reading, stats map[string]hud.Value) (timeline.Fragment, string, error) {
	clockValue, ok := stats[clockField]
	if !ok || clockValue.Text == nil {
		return nil, "", ErrNoClock
	}
	clock := *clockValue.Text
	if _, ok := timeline.ParseClock(clock); !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrNoClock, clock)
	}

	fragment := timeline.Fragment{
		"blue": map[string]any{
			"players": teamPlayers("blue", health.Blue, mana.Blue, stats),
			"stats":   teamStats("blue", stats),
		},
		"red": map[string]any{
			"players": teamPlayers("red", health.Red, mana.Red, stats),
			"stats":   teamStats("red", stats),
		},
		"global": map[string]any{},
	}
	return fragment, clock, nil
}

func teamPlayers(team string, health, mana map[timeline.Role]*float64, stats map[string]hud.Value) map[string]any {
	players := make(map[string]any, len(timeline.Roles))
	for i, role := range timeline.Roles {
		player := map[string]any{}
		if pct := health[role]; pct != nil {
			player["health_pct"] = *pct
		}
		if pct := mana[role]; pct != nil {
			player["mana_pct"] = *pct
		}
		if kda := stats[fmt.Sprintf("%sPlayer%dkda", team, i+1)].KDA; kda != nil {
			player["kills"] = kda.Kills
			player["deaths"] = kda.Deaths
			player["assists"] = kda.Assists
		}
		if cs := stats[fmt.Sprintf("%sPlayer%dcreeps", team, i+1)].Count; cs != nil {
			player["cs"] = *cs
		}
		players[string(role)] = player
	}
	return players
}

func teamStats(team string, stats map[string]hud.Value) map[string]any {
	out := map[string]any{}
	if gold := stats[team+"Gold"].Text; gold != nil {
		if total, ok := hud.GoldToInt(*gold); ok {
			out["total_gold"] = total
		}
	}
	if towers := stats[team+"Towers"].Count; towers != nil {
		out["towers"] = *towers
	}
	return out
}
