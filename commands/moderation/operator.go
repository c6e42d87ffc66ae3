package moderation

import (
	"context"

	"emperror.dev/errors"
	"github.com/devguild/devlin/bot"
	"github.com/devguild/devlin/cleanup"
	"github.com/devguild/devlin/common"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/json/option"
)

// responder is the part of the Discord API the operator answers interactions with.
type responder interface {
	RespondInteraction(id discord.InteractionID, token string, resp api.InteractionResponse) error
	EditInteractionResponse(appID discord.AppID, token string, data api.EditInteractionResponseData) (*discord.Message, error)
}

// operator drives a cleanup through a slash command's interaction.
// The prompt is the command's own ephemeral response. Button presses are interactions of their own.
type operator struct {
	events common.EventHandler
	client responder

	invoker discord.UserID
	appID   discord.AppID
	id      discord.InteractionID
	token   string

	// deferred is called once the command's interaction is acknowledged.
	deferred func()

	// presses is open from the moment a view is shown until the prompt is closed,
	// so no press goes unanswered while the gate is up.
	presses <-chan *gateway.InteractionCreateEvent
	stop    func()
}

var _ cleanup.Operator = (*operator)(nil)

func newOperator(ctx *bot.CommandContext) *operator {
	return &operator{
		events:   ctx.State,
		client:   ctx.State,
		invoker:  ctx.User.ID,
		appID:    ctx.AppID(),
		id:       ctx.Event.ID,
		token:    ctx.Token(),
		deferred: func() { ctx.Responded = true },
	}
}

func (o *operator) Invoker() discord.UserID { return o.invoker }

func (o *operator) Defer() error {
	err := o.client.RespondInteraction(o.id, o.token, api.InteractionResponse{
		Type: api.DeferredMessageInteractionWithSource,
		Data: &api.InteractionResponseData{Flags: discord.EphemeralMessage},
	})
	if err != nil {
		return errors.Wrap(err, "deferring response")
	}

	if o.deferred != nil {
		o.deferred()
	}
	return nil
}

func (o *operator) Show(content string, view *cleanup.ConfirmView) error {
	if view == nil {
		o.close()
	} else {
		// listen before the buttons exist
		o.listen(view)
	}

	embeds, components := viewData(view)
	_, err := o.client.EditInteractionResponse(o.appID, o.token, api.EditInteractionResponseData{
		Content:    option.NewNullableString(content),
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		o.close()
		return errors.Wrap(err, "editing response")
	}
	return nil
}

func (o *operator) listen(view *cleanup.ConfirmView) {
	o.close()

	o.presses, o.stop = common.Subscribe(o.events, func(ev *gateway.InteractionCreateEvent) bool {
		data, ok := ev.Data.(*discord.ButtonInteraction)
		if !ok {
			return false
		}
		_, ok = view.ParseCustomID(data.CustomID)
		return ok
	})
}

// close stops listening for presses. It is safe to call more than once.
func (o *operator) close() {
	if o.stop != nil {
		o.stop()
		o.stop = nil
		o.presses = nil
	}
}

func (o *operator) WaitPress(ctx context.Context, view *cleanup.ConfirmView) (*cleanup.Press, bool) {
	if o.presses == nil {
		o.listen(view)
	}

	ev, ok := common.WaitFor(ctx, o.presses)
	if !ok {
		return nil, false
	}

	data, ok := ev.Data.(*discord.ButtonInteraction)
	if !ok {
		return nil, false
	}
	action, _ := view.ParseCustomID(data.CustomID)

	return &cleanup.Press{
		InteractionID: ev.ID,
		Token:         ev.Token,
		User:          ev.SenderID(),
		Action:        action,
	}, true
}

func (o *operator) Reject(p *cleanup.Press, content string) error {
	err := o.client.RespondInteraction(p.InteractionID, p.Token, api.InteractionResponse{
		Type: api.MessageInteractionWithSource,
		Data: &api.InteractionResponseData{
			Content: option.NewNullableString(content),
			Flags:   discord.EphemeralMessage,
		},
	})
	return errors.Wrap(err, "rejecting button press")
}

func (o *operator) Close(p *cleanup.Press, content string) error {
	o.close()
	embeds, components := viewData(nil)

	err := o.client.RespondInteraction(p.InteractionID, p.Token, api.InteractionResponse{
		Type: api.UpdateMessage,
		Data: &api.InteractionResponseData{
			Content:    option.NewNullableString(content),
			Embeds:     &embeds,
			Components: &components,
		},
	})
	return errors.Wrap(err, "updating prompt")
}

func (o *operator) Hold(p *cleanup.Press) error {
	o.close()

	err := o.client.RespondInteraction(p.InteractionID, p.Token, api.InteractionResponse{
		Type: api.DeferredMessageUpdate,
	})
	return errors.Wrap(err, "acknowledging button press")
}

func (o *operator) Finish(p *cleanup.Press, content string) error {
	o.close()
	embeds, components := viewData(nil)

	_, err := o.client.EditInteractionResponse(o.appID, p.Token, api.EditInteractionResponseData{
		Content:    option.NewNullableString(content),
		Embeds:     &embeds,
		Components: &components,
	})
	return errors.Wrap(err, "sending outcome")
}

// viewData returns the embeds and components for view.
// A nil view clears both.
func viewData(view *cleanup.ConfirmView) ([]discord.Embed, discord.ContainerComponents) {
	if view == nil {
		return []discord.Embed{}, discord.ContainerComponents{}
	}
	return []discord.Embed{view.Embed()}, view.Components()
}
