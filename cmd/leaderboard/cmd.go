package leaderboard

import (
	"fmt"
	"os"
	"text/tabwriter"

	"emperror.dev/errors"
	"github.com/devguild/devlin/bot"
	"github.com/devguild/devlin/common/log"
	"github.com/devguild/devlin/leaderboard"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "leaderboard",
	Usage:  "Fetch and print the leveling leaderboard",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			Value:   "config.toml",
			EnvVars: []string{"DEVLIN_CONFIG"},
		},
		&cli.IntFlag{
			Name:  "below",
			Usage: "Only print entries below this level (0 prints every entry)",
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

	client := leaderboard.New(leaderboard.Config{
		BaseURL:     conf.Leaderboard.BaseURL,
		CommunityID: conf.Leaderboard.CommunityID,
		Token:       conf.Auth.Leaderboard,
		Referer:     conf.Leaderboard.Referer,
		UserAgent:   conf.Leaderboard.UserAgent,
		Timeout:     conf.Leaderboard.Timeout.Duration(),
	}, log.Named("leaderboard"))

	entries := client.Fetch(c.Context)
	below := c.Int("below")

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLEVEL")

	var printed int
	for _, e := range entries {
		if below > 0 && (e.Level == nil || *e.Level >= below) {
			continue
		}

		level := "-"
		if e.Level != nil {
			level = fmt.Sprint(*e.Level)
		}
		fmt.Fprintf(tw, "%v\t%v\n", e.ID, level)
		printed++
	}

	err = tw.Flush()
	if err != nil {
		return err
	}

	fmt.Printf("\nFetched %v entries from %v, printed %v.\n",
		humanize.Comma(int64(len(entries))), client.URL(), humanize.Comma(int64(printed)))
	return nil
}
