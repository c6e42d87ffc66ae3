package bot

import (
	"github.com/devguild/devlin/common/log"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (bot *Bot) interactionCreate(ev *gateway.InteractionCreateEvent) {
	// commands block on button presses, which arrive through this same handler
	go func() {
		err := bot.Router.Execute(bot.ctx, ev)
		if err != nil {
			// handler errors have already been reported
			log.Debugf("handling interaction %v: %v", ev.ID, err)
		}
	}()
}
