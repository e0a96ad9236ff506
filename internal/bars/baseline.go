package bars

import (
	"fmt"
	"strings"

	"riftscope/internal/timeline"
)

// BaselinePolicy decides which detected bar counts as 100% width for a side.
type BaselinePolicy struct {
	role *timeline.Role
}

// BaselineMax treats the widest detected bar as full.
var BaselineMax = BaselinePolicy{}

// BaselineRole treats the bar seated at a role as full. The broadcast blue
// panel keeps the jungle bar at full width, hence the default asymmetry
// between sides.
func BaselineRole(role timeline.Role) BaselinePolicy {
	return BaselinePolicy{role: &role}
}

// ParseBaseline reads the config spellings "max" and "role:<ROLE>".
func ParseBaseline(s string) (BaselinePolicy, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "max") {
		return BaselineMax, nil
	}
	if name, ok := strings.CutPrefix(strings.ToLower(s), "role:"); ok {
		role, valid := timeline.ParseRole(name)
		if !valid {
			return BaselinePolicy{}, fmt.Errorf("bars: unknown baseline role %q", name)
		}
		return BaselineRole(role), nil
	}
	return BaselinePolicy{}, fmt.Errorf("bars: invalid baseline %q", s)
}

func (p BaselinePolicy) String() string {
	if p.role == nil {
		return "max"
	}
	return "role:" + string(*p.role)
}

// width picks the baseline width from the top-to-bottom bar rows. A missing
// role bar falls back to the widest bar so one occluded player does not null
// the whole side.
func (p BaselinePolicy) width(rows []barRect) float64 {
	maxW := 0
	for _, r := range rows {
		maxW = max(maxW, r.box.Dx())
	}
	if p.role != nil {
		for i, role := range timeline.Roles {
			if role == *p.role && i < len(rows) {
				return float64(rows[i].box.Dx())
			}
		}
	}
	return float64(maxW)
}
