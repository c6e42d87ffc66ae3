package cleanup

import (
	"time"

	"github.com/devguild/devlin/common"
	"github.com/diamondburned/arikawa/v3/discord"
)

// Policy decides which leaderboard members are removed.
type Policy struct {
	// LevelThreshold is the level a member must have reached to be kept.
	LevelThreshold int
	// Cutoff exempts members who joined at or after it.
	Cutoff time.Time
	// ExcludedRoles exempts members holding any of these roles.
	ExcludedRoles *common.Set[discord.RoleID]
}

// NewPolicy returns a Policy. Role order does not matter.
func NewPolicy(threshold int, cutoff time.Time, excluded []discord.RoleID) Policy {
	return Policy{
		LevelThreshold: threshold,
		Cutoff:         cutoff.UTC(),
		ExcludedRoles:  common.NewSet(excluded...),
	}
}

// Eligible returns true if a member at the given level should be removed.
// If not, reason names the first condition that kept them.
func (p Policy) Eligible(level int, m discord.Member) (ok bool, reason string) {
	switch {
	case level >= p.LevelThreshold:
		return false, "level"
	case !m.Joined.IsValid():
		return false, "unknown join date"
	case !m.Joined.Time().Before(p.Cutoff):
		return false, "join date"
	case m.User.Bot:
		return false, "bot"
	}

	if p.ExcludedRoles != nil {
		if id, ok := p.ExcludedRoles.Any(m.RoleIDs...); ok {
			return false, "excluded role " + id.String()
		}
	}
	return true, ""
}
