// Package moderation contains the /cleanup command.
package moderation

import (
	"github.com/devguild/devlin/bot"
	"github.com/devguild/devlin/cleanup"
	"github.com/devguild/devlin/common/log"
	"github.com/devguild/devlin/leaderboard"
)

type Bot struct {
	*bot.Bot

	Cleanup *cleanup.Service
}

func Setup(root *bot.Bot) {
	log.Debug("Adding moderation commands")

	var rec leaderboard.Recorder
	if root.Metrics != nil {
		rec = root.Metrics
	}

	bot := &Bot{
		Bot:     root,
		Cleanup: NewService(root.Config, rec),
	}

	bot.Router.Command("cleanup").GuildOnly().Exec(bot.cleanup)
}

// NewService builds a cleanup service from the bot's configuration.
// rec may be nil.
func NewService(c bot.Config, rec leaderboard.Recorder) *cleanup.Service {
	lb := leaderboard.New(leaderboard.Config{
		BaseURL:     c.Leaderboard.BaseURL,
		CommunityID: c.Leaderboard.CommunityID,
		Token:       c.Auth.Leaderboard,
		Referer:     c.Leaderboard.Referer,
		UserAgent:   c.Leaderboard.UserAgent,
		Timeout:     c.Leaderboard.Timeout.Duration(),
	}, log.Named("leaderboard"))
	lb.Recorder = rec

	policy := cleanup.NewPolicy(c.Cleanup.LevelThreshold, c.Cleanup.Cutoff, c.Cleanup.ExcludedRoles)

	return cleanup.New(policy, cleanup.Options{
		Notice:          c.Cleanup.Notice,
		Reason:          c.Cleanup.Reason,
		ConfirmTimeout:  c.Cleanup.ConfirmTimeout.Duration(),
		PreviewSize:     c.Cleanup.PreviewSize,
		MaxErrorDetails: c.Cleanup.MaxErrorDetails,
	}, lb, log.Named("cleanup"))
}
