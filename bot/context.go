package bot

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
)

// CommandContext is the context for a single slash command invocation.
type CommandContext struct {
	context.Context

	State   *state.State
	Event   *gateway.InteractionCreateEvent
	Command *discord.CommandInteraction

	User    discord.User
	GuildID discord.GuildID

	// Responded is true once the interaction has an initial response, deferred or not.
	// After that, replies edit the original response.
	Responded bool
}

func newCommandContext(ctx context.Context, s *state.State, ev *gateway.InteractionCreateEvent, data *discord.CommandInteraction) *CommandContext {
	cctx := &CommandContext{
		Context: ctx,
		State:   s,
		Event:   ev,
		Command: data,
		GuildID: ev.GuildID,
	}

	if u := ev.Sender(); u != nil {
		cctx.User = *u
	}
	return cctx
}

// AppID returns the application the interaction was sent to.
func (ctx *CommandContext) AppID() discord.AppID { return ctx.Event.AppID }

// Token returns the interaction token.
func (ctx *CommandContext) Token() string { return ctx.Event.Token }

// Defer acknowledges the interaction without a visible response.
func (ctx *CommandContext) Defer(ephemeral bool) error {
	var flags discord.MessageFlags
	if ephemeral {
		flags = discord.EphemeralMessage
	}

	err := ctx.State.RespondInteraction(ctx.Event.ID, ctx.Event.Token, api.InteractionResponse{
		Type: api.DeferredMessageInteractionWithSource,
		Data: &api.InteractionResponseData{Flags: flags},
	})
	if err != nil {
		return errors.Wrap(err, "deferring response")
	}

	ctx.Responded = true
	return nil
}

// Reply sends a visible response.
func (ctx *CommandContext) Reply(content string, embeds ...discord.Embed) error {
	return ctx.reply(content, embeds, 0)
}

// ReplyEphemeral sends a response only the invoking user can see.
// If the response was already deferred, it is edited instead, keeping its visibility.
func (ctx *CommandContext) ReplyEphemeral(content string, embeds ...discord.Embed) error {
	return ctx.reply(content, embeds, discord.EphemeralMessage)
}

func (ctx *CommandContext) reply(content string, embeds []discord.Embed, flags discord.MessageFlags) error {
	if ctx.Responded {
		data := api.EditInteractionResponseData{
			Content: option.NewNullableString(content),
		}
		if len(embeds) > 0 {
			data.Embeds = &embeds
		}
		return ctx.EditOriginal(data)
	}

	data := &api.InteractionResponseData{
		Content: option.NewNullableString(content),
		Flags:   flags,
	}
	if len(embeds) > 0 {
		data.Embeds = &embeds
	}

	err := ctx.State.RespondInteraction(ctx.Event.ID, ctx.Event.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: data,
	})
	if err != nil {
		return errors.Wrap(err, "sending response")
	}

	ctx.Responded = true
	return nil
}

// EditOriginal edits the original interaction response.
func (ctx *CommandContext) EditOriginal(data api.EditInteractionResponseData) error {
	_, err := ctx.State.EditInteractionResponse(ctx.AppID(), ctx.Event.Token, data)
	return errors.Wrap(err, "editing response")
}
