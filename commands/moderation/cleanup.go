package moderation

import (
	"emperror.dev/errors"
	"github.com/devguild/devlin/bot"
	"github.com/devguild/devlin/common/log"
	"github.com/devguild/devlin/roster"
)

func (bot *Bot) cleanup(ctx *bot.CommandContext) (err error) {
	log.Infof("Cleanup command invoked by %v (%v) in %v", ctx.User.Tag(), ctx.User.ID, ctx.GuildID)

	guild := roster.New(ctx.State.Client, ctx.State.Cabinet, ctx.GuildID)

	op := newOperator(ctx)
	defer op.close()

	outcome, err := bot.Cleanup.Run(ctx, op, guild)
	if err != nil {
		return errors.Wrap(err, "running cleanup")
	}

	if outcome != nil {
		log.Infof("Cleanup in %v finished: %v kicked, %v failed, %v already gone",
			ctx.GuildID, outcome.Succeeded, outcome.Failed, outcome.Skipped)

		if bot.Metrics != nil {
			bot.Metrics.ObserveCleanup(outcome.Succeeded, outcome.Failed, outcome.Skipped)
		}
	}
	return nil
}
