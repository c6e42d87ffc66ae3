package meta

import (
	"github.com/devguild/devlin/bot"
	"github.com/devguild/devlin/common/log"
)

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	log.Debug("Adding meta commands")

	bot := &Bot{Bot: root}

	bot.Router.Command("ping").Exec(bot.ping)
}
