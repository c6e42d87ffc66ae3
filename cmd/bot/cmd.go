package bot

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/devguild/devlin/bot"
	metacommands "github.com/devguild/devlin/commands/meta"
	"github.com/devguild/devlin/commands/moderation"
	"github.com/devguild/devlin/common"
	"github.com/devguild/devlin/common/log"
	"github.com/devguild/devlin/metrics"
	"github.com/devguild/devlin/web/server"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			Value:   "config.toml",
			EnvVars: []string{"DEVLIN_CONFIG"},
		},
	},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	err = log.Init(log.Options{Debug: conf.Bot.Debug, File: conf.Bot.LogFile})
	if err != nil {
		return errors.Wrap(err, "setting up logging")
	}
	defer log.Sync()

	err = conf.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if conf.Auth.Leaderboard == "" {
		log.Error("ARCANE_BOT_AUTH_TOKEN is not set, /cleanup will not find any members")
	}

	// set up sentry
	if conf.Auth.Sentry != "" {
		log.Debug("setting up sentry")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			log.Fatalf("setting up sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)

		log.Debug("set up sentry")
	} else {
		log.Debugf("sentry DSN was not provided, not setting it up")
	}

	m := metrics.New()
	b := bot.New(conf, m)

	// set up modules
	metacommands.Setup(b) // ping
	moderation.Setup(b)   // cleanup

	// actually run bot!
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if conf.Bot.HTTPListen != "" {
		srv := server.New(b, m.Registry, common.Version(), b.Start, log.Named("http"))
		go func() {
			err := srv.ListenAndServe(ctx, conf.Bot.HTTPListen)
			if err != nil {
				log.Errorf("status server: %v", err)
			}
		}()
	}

	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	defer func() {
		err = b.Close()
		if err != nil {
			log.Errorf("closing gateway connection: %v", err)
		}
	}()

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	<-ctx.Done()
	log.Info("Interrupt signal received. Shutting down...")
	return nil
}
