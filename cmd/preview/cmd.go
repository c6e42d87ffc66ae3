package preview

import (
	"fmt"
	"os"
	"text/tabwriter"

	"emperror.dev/errors"
	"github.com/devguild/devlin/bot"
	"github.com/devguild/devlin/commands/moderation"
	"github.com/devguild/devlin/common/log"
	"github.com/devguild/devlin/roster"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "preview",
	Usage:  "Show which members a cleanup would kick, without kicking anyone",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			Value:   "config.toml",
			EnvVars: []string{"DEVLIN_CONFIG"},
		},
		&cli.Uint64Flag{
			Name:  "guild",
			Usage: "The guild to check (defaults to the commands guild)",
		},
	},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	err = log.Init(log.Options{Debug: conf.Bot.Debug})
	if err != nil {
		return errors.Wrap(err, "setting up logging")
	}
	defer log.Sync()

	err = conf.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid config")
	}

	guildID := conf.Bot.CommandsGuildID
	if c.IsSet("guild") {
		guildID = discord.GuildID(c.Uint64("guild"))
	}
	if !guildID.IsValid() {
		return cli.Exit("No guild given and no commands guild configured", 1)
	}

	svc := moderation.NewService(conf, nil)
	client := api.NewClient("Bot " + conf.Auth.Discord)

	// no gateway connection, so no member cache
	guild := roster.New(client, nil, guildID)

	entries := svc.Leaderboard.Fetch(c.Context)
	candidates := svc.Filter(c.Context, entries, guild)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tDISPLAY NAME")
	for _, cand := range candidates {
		fmt.Fprintf(tw, "%v\t%v\t%v\n", cand.ID, cand.Username, cand.DisplayName)
	}
	err = tw.Flush()
	if err != nil {
		return err
	}

	fmt.Printf("\n%v of %v leaderboard entries in %v would be kicked.\n",
		humanize.Comma(int64(len(candidates))), humanize.Comma(int64(len(entries))), guildID)
	return nil
}
