package bot

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/devguild/devlin/common"
	"github.com/devguild/devlin/common/log"
	"github.com/devguild/devlin/metrics"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/ws"
)

// Intents are the gateway intents the bot needs. Guild members is privileged,
// and is required to keep the member cache warm.
const Intents = gateway.IntentGuilds | gateway.IntentGuildMembers

type Bot struct {
	State   *state.State
	Router  *Router
	Metrics *metrics.Metrics

	Config Config
	Start  time.Time

	// ctx is the context passed to Open, used as the parent for command contexts.
	ctx context.Context
}

// New creates a new Bot.
func New(c Config, m *metrics.Metrics) *Bot {
	// set up debug logging
	ws.WSDebug = log.Debug
	ws.WSError = func(err error) {
		log.SugaredLogger.Error("ws error: ", err)
	}

	s := state.New("Bot " + c.Auth.Discord)
	s.AddIntents(Intents)

	bot := &Bot{
		State:   s,
		Router:  NewRouter(s, log.Named("router")),
		Metrics: m,
		Config:  c,
		Start:   time.Now(),
		ctx:     context.Background(),
	}

	bot.Router.OnError = func(ctx *CommandContext, err error) {
		if rerr := bot.ReportError(ctx, err); rerr != nil {
			log.Errorf("reporting error for interaction %v: %v", ctx.Event.ID, rerr)
		}
	}
	if m != nil {
		bot.Router.Recorder = m
		m.SetLatencyFunc(bot.Latency)
	}

	s.AddHandler(bot.ready)
	s.AddHandler(bot.interactionCreate)
	return bot
}

// Open connects to the gateway, then sets the bot's presence and syncs commands.
// ctx is used as the parent context of all commands.
func (bot *Bot) Open(ctx context.Context) error {
	bot.ctx = ctx

	if missing := bot.Router.Missing(common.Commands); len(missing) > 0 {
		return errors.Errorf("commands without a handler: %v", missing)
	}

	log.Debug("opening gateway connection")
	err := bot.State.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway")
	}

	if bot.Config.Bot.Activity != "" {
		err = bot.State.Gateway().Send(ctx, &gateway.UpdatePresenceCommand{
			Status: discord.OnlineStatus,
			Activities: []discord.Activity{{
				Name: bot.Config.Bot.Activity,
				Type: discord.WatchingActivity,
			}},
		})
		if err != nil {
			log.Errorf("updating presence: %v", err)
		}
	}

	if bot.Config.Bot.NoSyncCommands {
		log.Info("Not syncing slash commands")
		return nil
	}
	return bot.SyncCommands()
}

// SyncCommands overwrites the bot's slash commands, either in the configured commands guild or globally.
func (bot *Bot) SyncCommands() error {
	me, err := bot.State.Me()
	if err != nil {
		return errors.Wrap(err, "getting current user")
	}
	appID := discord.AppID(me.ID)

	if guildID := bot.Config.Bot.CommandsGuildID; guildID.IsValid() {
		_, err = bot.State.BulkOverwriteGuildCommands(appID, guildID, common.Commands)
		if err != nil {
			return errors.Wrap(err, "syncing guild commands")
		}
		log.Infof("Synced %v slash commands in %v", len(common.Commands), guildID)
		return nil
	}

	_, err = bot.State.BulkOverwriteCommands(appID, common.Commands)
	if err != nil {
		return errors.Wrap(err, "syncing global commands")
	}
	log.Infof("Synced %v global slash commands", len(common.Commands))
	return nil
}

func (bot *Bot) Close() error {
	return bot.State.Close()
}

// Latency returns the gateway heartbeat latency, or 0 if the gateway isn't open yet.
func (bot *Bot) Latency() time.Duration {
	g := bot.State.Gateway()
	if g == nil {
		return 0
	}
	return g.Latency()
}

func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	log.Infof("Logged in as %v (%v), in %v guilds", ev.User.Tag(), ev.User.ID, len(ev.Guilds))
}
