package cleanup

import (
	"context"
	"fmt"
	"strings"

	"github.com/devguild/devlin/common"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/google/uuid"
)

// Decision is how a confirmation gate was resolved.
type Decision int

const (
	Expired Decision = iota
	Confirmed
	Cancelled
)

func (d Decision) String() string {
	switch d {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "expired"
	}
}

// Action is the button a Press was for.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// Press is a click on one of a ConfirmView's buttons.
type Press struct {
	InteractionID discord.InteractionID
	Token         string
	User          discord.UserID
	Action        Action
}

// Operator is the moderator who invoked a cleanup, as seen through their interaction.
type Operator interface {
	// Invoker is the user allowed to resolve the confirmation.
	Invoker() discord.UserID
	// Defer acknowledges the command ephemerally so the slow part can follow.
	Defer() error
	// Show replaces the deferred response. A nil view removes any buttons.
	Show(content string, view *ConfirmView) error
	// WaitPress blocks until one of view's buttons is pressed, or ctx expires.
	WaitPress(ctx context.Context, view *ConfirmView) (*Press, bool)
	// Reject tells the presser, and only them, that they can't use the buttons.
	Reject(p *Press, content string) error
	// Close answers a press by replacing the prompt with content and removing the buttons.
	Close(p *Press, content string) error
	// Hold acknowledges a press without changing the prompt yet.
	Hold(p *Press) error
	// Finish replaces a held prompt with content and removes the buttons.
	Finish(p *Press, content string) error
}

const customIDPrefix = "cleanup:"

// ConfirmView is the prompt shown before a cleanup is executed.
type ConfirmView struct {
	Candidates []Candidate
	Invoker    discord.UserID

	nonce       string
	previewSize int
}

// NewConfirmView returns a view for the given candidates, to be resolved by invoker.
func NewConfirmView(candidates []Candidate, invoker discord.UserID, previewSize int) *ConfirmView {
	if previewSize <= 0 {
		previewSize = 10
	}

	return &ConfirmView{
		Candidates:  candidates,
		Invoker:     invoker,
		nonce:       uuid.New().String(),
		previewSize: previewSize,
	}
}

// CustomID returns the component ID for the given action's button.
func (v *ConfirmView) CustomID(a Action) discord.ComponentID {
	return discord.ComponentID(customIDPrefix + string(a) + ":" + v.nonce)
}

// ParseCustomID returns the action for a component ID, if it belongs to this view.
func (v *ConfirmView) ParseCustomID(id discord.ComponentID) (Action, bool) {
	switch id {
	case v.CustomID(ActionConfirm):
		return ActionConfirm, true
	case v.CustomID(ActionCancel):
		return ActionCancel, true
	}
	return "", false
}

// Embed returns the preview embed. Only the first previewSize candidates are listed.
func (v *ConfirmView) Embed() discord.Embed {
	e := discord.Embed{
		Title:       "Member Cleanup Confirmation",
		Description: fmt.Sprintf("Found %v members to kick", len(v.Candidates)),
		Color:       common.ColourRed,
	}

	if len(v.Candidates) == 0 {
		return e
	}

	preview := v.Candidates
	if len(preview) > v.previewSize {
		preview = preview[:v.previewSize]
	}

	lines := make([]string, 0, len(preview))
	for _, c := range preview {
		lines = append(lines, fmt.Sprintf("%v (ID: %v)", c.DisplayName, c.ID))
	}

	e.Fields = []discord.EmbedField{{
		Name:  "Sample Users",
		Value: strings.Join(lines, "\n"),
	}}

	if rest := len(v.Candidates) - len(preview); rest > 0 {
		e.Footer = &discord.EmbedFooter{Text: fmt.Sprintf("... and %v more", rest)}
	}
	return e
}

// Components returns the confirm and cancel buttons.
func (v *ConfirmView) Components() discord.ContainerComponents {
	return discord.ContainerComponents{
		&discord.ActionRowComponent{
			&discord.ButtonComponent{
				Label:    "Confirm Cleanup",
				CustomID: v.CustomID(ActionConfirm),
				Style:    discord.DangerButtonStyle(),
			},
			&discord.ButtonComponent{
				Label:    "Cancel",
				CustomID: v.CustomID(ActionCancel),
				Style:    discord.SecondaryButtonStyle(),
			},
		},
	}
}

// Await waits until the invoker confirms or cancels, or ctx expires.
// Presses by anyone else are rejected and do not resolve the view.
func (v *ConfirmView) Await(ctx context.Context, op Operator) (Decision, *Press) {
	for {
		p, ok := op.WaitPress(ctx, v)
		if !ok {
			return Expired, nil
		}

		if p.User != v.Invoker {
			// a failed rejection is not fatal, the invoker can still press
			_ = op.Reject(p, fmt.Sprintf("Only %v can confirm or cancel this cleanup.", v.Invoker.Mention()))
			continue
		}

		switch p.Action {
		case ActionConfirm:
			return Confirmed, p
		case ActionCancel:
			return Cancelled, p
		}
	}
}
