// Package roster implements cleanup.Roster on top of Discord's REST API and the gateway state cache.
package roster

import (
	"context"
	"net/http"

	"emperror.dev/errors"
	"github.com/devguild/devlin/cleanup"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
)

var _ cleanup.Roster = (*Guild)(nil)

// MemberCache is the part of the gateway state's cabinet that Guild reads from.
type MemberCache interface {
	Member(discord.GuildID, discord.UserID) (*discord.Member, error)
}

// Guild is a single guild's member list.
type Guild struct {
	client *api.Client
	// cache is nil when running without a gateway connection
	cache MemberCache
	id    discord.GuildID
}

// New returns a Guild. cache may be nil, in which case every lookup goes over the network.
func New(client *api.Client, cache MemberCache, guildID discord.GuildID) *Guild {
	return &Guild{
		client: client,
		cache:  cache,
		id:     guildID,
	}
}

// ID returns the guild's ID.
func (g *Guild) ID() discord.GuildID { return g.id }

func (g *Guild) FetchMember(ctx context.Context, id discord.UserID) (*discord.Member, error) {
	m, err := g.client.WithContext(ctx).Member(g.id, id)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

func (g *Guild) Member(id discord.UserID) (*discord.Member, bool) {
	if g.cache == nil {
		return nil, false
	}

	m, err := g.cache.Member(g.id, id)
	if err != nil {
		return nil, false
	}
	return m, true
}

func (g *Guild) SendDM(ctx context.Context, id discord.UserID, content string) error {
	c := g.client.WithContext(ctx)

	ch, err := c.CreatePrivateChannel(id)
	if err != nil {
		return errors.Wrap(err, "creating DM channel")
	}

	_, err = c.SendMessage(ch.ID, content)
	return errors.Wrap(err, "sending DM")
}

func (g *Guild) Kick(ctx context.Context, id discord.UserID, reason string) error {
	err := g.client.WithContext(ctx).Kick(g.id, id, api.AuditLogReason(reason))
	if err != nil {
		return classify(err)
	}
	return nil
}

// Discord's JSON error code for a member that isn't in the guild.
const unknownMember httputil.ErrorCode = 10007

// classify maps HTTP errors onto the cleanup package's sentinel errors.
func classify(err error) error {
	var httpErr *httputil.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	switch {
	case httpErr.Status == http.StatusNotFound, httpErr.Code == unknownMember:
		return errors.WithMessage(cleanup.ErrMemberNotFound, httpErr.Error())
	case httpErr.Status == http.StatusForbidden:
		return errors.WithMessage(cleanup.ErrForbidden, httpErr.Error())
	}
	return err
}
