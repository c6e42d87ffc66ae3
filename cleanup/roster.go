package cleanup

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

// Errors returned by a Roster's member lookups.
const (
	ErrMemberNotFound = errors.Sentinel("member not found")
	ErrForbidden      = errors.Sentinel("missing permissions")
)

// Roster is the guild being cleaned up.
type Roster interface {
	// FetchMember looks a member up over the network.
	// It returns ErrMemberNotFound or ErrForbidden (possibly wrapped) for those conditions.
	FetchMember(ctx context.Context, id discord.UserID) (*discord.Member, error)
	// Member returns a member from the local cache, without a network round trip.
	Member(id discord.UserID) (*discord.Member, bool)
	// SendDM sends a direct message to a member.
	SendDM(ctx context.Context, id discord.UserID, content string) error
	// Kick removes a member from the guild.
	Kick(ctx context.Context, id discord.UserID, reason string) error
}
