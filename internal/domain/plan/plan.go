// Package plan provides the subscription plans and their reward and capability rules.
package plan

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Plan is a subscription plan.
type Plan int

const (
	Free        Plan = iota // Default plan, random playlists only
	PremiumBase             // Library and playlist creation
	PremiumTop              // PremiumBase plus favorite generation
)

// PremiumTopEntryPoints is the point balance a user is set to on entering PremiumTop.
const PremiumTopEntryPoints = 100

// ErrUnknownPlan is returned when a plan name cannot be parsed.
var ErrUnknownPlan = errors.New("unknown plan")

// All returns every plan in upgrade order.
func All() []Plan {
	return []Plan{Free, PremiumBase, PremiumTop}
}

// Parse parses a plan name, case-insensitively and ignoring separators.
func Parse(name string) (Plan, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(n)
	switch n {
	case "free":
		return Free, nil
	case "premiumbase":
		return PremiumBase, nil
	case "premiumtop":
		return PremiumTop, nil
	default:
		return Free, errors.Mark(errors.Newf("unknown plan %q", name), ErrUnknownPlan)
	}
}

// Name returns the display name of the plan.
func (p Plan) Name() string {
	switch p {
	case Free:
		return "Free"
	case PremiumBase:
		return "PremiumBase"
	case PremiumTop:
		return "PremiumTop"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer.
func (p Plan) String() string {
	return p.Name()
}

// PointsForPlay returns the points awarded for a single play.
// current is the user's balance before the play, alreadyHeard whether the user
// played this track before.
func (p Plan) PointsForPlay(current int, alreadyHeard bool) int {
	switch p {
	case Free:
		return 5
	case PremiumBase:
		return 10
	case PremiumTop:
		if alreadyHeard {
			return 0
		}
		if current <= 0 {
			return 0
		}
		// floor(2.5% of current), kept in integers to avoid float drift.
		return current * 25 / 1000
	default:
		return 0
	}
}

// CanCreatePlaylists reports whether the plan allows building playlists
// and keeping a library.
func (p Plan) CanCreatePlaylists() bool {
	switch p {
	case PremiumBase, PremiumTop:
		return true
	case Free:
		return false
	default:
		return false
	}
}

// CanAccessFavorites reports whether the plan allows favorite playlist generation.
func (p Plan) CanAccessFavorites() bool {
	switch p {
	case PremiumTop:
		return true
	case Free, PremiumBase:
		return false
	default:
		return false
	}
}

// IsPremium reports whether the plan is a paid plan.
func (p Plan) IsPremium() bool {
	return p.CanCreatePlaylists()
}

// Next returns the plan an upgrade leads to. PremiumTop upgrades to itself.
func (p Plan) Next() Plan {
	switch p {
	case Free:
		return PremiumBase
	case PremiumBase, PremiumTop:
		return PremiumTop
	default:
		return Free
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Plan) MarshalText() ([]byte, error) {
	switch p {
	case Free, PremiumBase, PremiumTop:
		return []byte(p.Name()), nil
	default:
		return nil, errors.Mark(errors.Newf("unknown plan %d", int(p)), ErrUnknownPlan)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Plan) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
