package bot

import (
	"fmt"
	"time"

	"github.com/devguild/devlin/common"
	"github.com/devguild/devlin/common/log"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// logCommandError logs err with its stack trace.
func logCommandError(logger *zap.SugaredLogger, command, code string, err error) {
	if code == "" {
		logger.Errorf("error in command %v: %+v", command, err)
		return
	}
	logger.Errorf("error in command %v (code %v): %+v", command, code, err)
}

// ReportError logs err, sends it to Sentry if configured, and tells the user something went wrong.
func (bot *Bot) ReportError(ctx *CommandContext, err error) error {
	if bot.Config.Auth.Sentry == "" {
		logCommandError(log.SugaredLogger, ctx.Command.Name, "", err)

		embed := discord.Embed{
			Title:       "Internal error occurred",
			Description: "An internal error has occurred. If this issue persists, please contact a server administrator.",
			Color:       common.ColourRed,
			Timestamp:   discord.NowTimestamp(),
		}

		return ctx.ReplyEphemeral("", embed)
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if ctx.User.ID.IsValid() {
			scope.SetUser(sentry.User{ID: ctx.User.ID.String(), Username: ctx.User.Username})
		}
		scope.SetTag("command", ctx.Command.Name)
		if ctx.GuildID.IsValid() {
			scope.SetTag("guild", ctx.GuildID.String())
		}
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data: map[string]any{
			"user":    ctx.User.ID,
			"command": ctx.Command.Name,
		},
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	id := hub.CaptureException(err)
	if id == nil {
		uid := uuid.New().String()
		id = (*sentry.EventID)(&uid)
	}

	logCommandError(log.SugaredLogger, ctx.Command.Name, string(*id), err)

	return ctx.ReplyEphemeral(fmt.Sprintf("Error code: ``%v``", string(*id)),
		discord.Embed{
			Title: "Internal error occurred",
			Description: "An internal error has occurred. " +
				"If this issue persists, please contact a server administrator with the error code above.",
			Color:     common.ColourRed,
			Timestamp: discord.NowTimestamp(),
			Footer: &discord.EmbedFooter{
				Text: string(*id),
			},
		})
}
